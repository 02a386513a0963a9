package backend

import (
	"fmt"
	"strconv"
)

// ElementSpec describes one element of a collection.
type ElementSpec struct {
	// Collection is the type of the collection holding the element.
	Collection TypeID
	// Type is the element type.
	Type  TypeInfo
	Index int
	Len   func(coll any) int
	Get   func(coll any, index int) (any, error)
	Set   func(coll any, index int, value any) (any, error)
}

// CollectionElement is the element at a fixed flattened index of a collection.
// Writes never grow the collection: callers resize first.
type CollectionElement struct {
	base
	index int
	len   func(coll any) int
	get   func(coll any, index int) (any, error)
	set   func(coll any, index int, value any) (any, error)
}

// NewCollectionElement creates a CollectionElement backend.
func NewCollectionElement(spec ElementSpec) *CollectionElement {
	return &CollectionElement{
		base: base{
			name:      "[" + strconv.Itoa(spec.Index) + "]",
			declaring: spec.Collection,
			declared:  spec.Type,
		},
		index: spec.Index,
		len:   spec.Len,
		get:   spec.Get,
		set:   spec.Set,
	}
}

func (e *CollectionElement) Kind() Kind                      { return KindCollectionElement }
func (e *CollectionElement) CanRead() bool                   { return e.get != nil }
func (e *CollectionElement) CanWrite() bool                  { return e.set != nil }
func (e *CollectionElement) CanReadWithoutSideEffects() bool { return e.get != nil }

// Index returns the flattened element index.
func (e *CollectionElement) Index() int {
	return e.index
}

func (e *CollectionElement) GetValue(owner any) (any, error) {
	if e.get == nil {
		return e.read(owner, nil)
	}

	return e.read(owner, func(coll any) (any, error) {
		if err := e.checkRange(coll); err != nil {
			return nil, err
		}

		return e.get(coll, e.index)
	})
}

func (e *CollectionElement) SetValue(owner, value any) (any, error) {
	if e.set == nil {
		return e.write(owner, value, nil)
	}

	return e.write(owner, value, func(coll, value any) (any, error) {
		if err := e.checkRange(coll); err != nil {
			return nil, err
		}

		return e.set(coll, e.index, value)
	})
}

func (e *CollectionElement) Descriptor() Descriptor {
	return Descriptor{Kind: KindCollectionElement, Type: e.declaring, Index: e.index}
}

func (e *CollectionElement) checkRange(coll any) error {
	if e.index < 0 {
		return &IndexError{Member: e.path(), Index: e.index}
	}

	if e.len == nil {
		return nil
	}

	if n := e.len(coll); e.index >= n {
		return &IndexError{Member: e.path(), Index: e.index, Len: n}
	}

	return nil
}

// ResizerSpec describes the size of a collection as a member.
type ResizerSpec struct {
	Collection TypeID
	// Size is the size descriptor type: int for linear collections,
	// Size2D or Size3D for multi-dimensional ones.
	Size TypeInfo
	Get  func(coll any) (any, error)
	// Resize returns the collection resized to size.
	Resize func(coll any, size any) (any, error)
	// Count returns the number of elements in a collection.
	Count func(coll any) int
	// Expected returns the number of elements a size descriptor implies.
	Expected func(size any) int
}

// CollectionResizer represents the size of a collection, not an element.
// Writing it resizes the collection and yields a new collection value.
type CollectionResizer struct {
	base
	get      func(coll any) (any, error)
	resize   func(coll any, size any) (any, error)
	count    func(coll any) int
	expected func(size any) int
}

// NewCollectionResizer creates a CollectionResizer backend.
func NewCollectionResizer(spec ResizerSpec) *CollectionResizer {
	return &CollectionResizer{
		base: base{
			name:       "Size",
			declaring:  spec.Collection,
			declared:   spec.Size,
			nilOwnerOK: true,
		},
		get:      spec.Get,
		resize:   spec.Resize,
		count:    spec.Count,
		expected: spec.Expected,
	}
}

func (r *CollectionResizer) Kind() Kind                      { return KindCollectionResizer }
func (r *CollectionResizer) CanRead() bool                   { return r.get != nil }
func (r *CollectionResizer) CanWrite() bool                  { return r.resize != nil }
func (r *CollectionResizer) CanReadWithoutSideEffects() bool { return r.get != nil }

func (r *CollectionResizer) GetValue(owner any) (any, error) {
	return r.read(owner, r.get)
}

func (r *CollectionResizer) SetValue(owner, value any) (any, error) {
	if r.resize == nil {
		return r.write(owner, value, nil)
	}

	return r.write(owner, value, func(coll, size any) (any, error) {
		resized, err := r.resize(coll, size)
		if err != nil {
			return nil, err
		}

		if r.count != nil && r.expected != nil {
			if got, want := r.count(resized), r.expected(size); got != want {
				return nil, fmt.Errorf("%w: have %d elements, want %d", ErrSizeMismatch, got, want)
			}
		}

		return resized, nil
	})
}

func (r *CollectionResizer) Descriptor() Descriptor {
	return Descriptor{Kind: KindCollectionResizer, Type: r.declaring, Member: r.name}
}

// SliceElement returns the element backend of index in a []T.
// The write goes into the slice's backing array, so it is visible through the owner.
func SliceElement[T any](index int) *CollectionElement {
	return NewCollectionElement(ElementSpec{
		Collection: TypeOf[[]T]().ID,
		Type:       TypeOf[T](),
		Index:      index,
		Len: func(coll any) int {
			s, _ := coll.([]T)
			return len(s)
		},
		Get: func(coll any, i int) (any, error) {
			return coll.([]T)[i], nil
		},
		Set: func(coll any, i int, value any) (any, error) {
			s := coll.([]T)
			s[i] = value.(T)

			return s, nil
		},
	})
}

// SliceResizer returns the resizer backend of a []T. Resizing copies into a new
// slice; elements beyond the old length are zero values.
func SliceResizer[T any]() *CollectionResizer {
	return NewCollectionResizer(ResizerSpec{
		Collection: TypeOf[[]T]().ID,
		Size:       TypeOf[int](),
		Get: func(coll any) (any, error) {
			s, _ := coll.([]T)
			return len(s), nil
		},
		Resize: func(coll any, size any) (any, error) {
			n := size.(int)
			if n < 0 {
				return nil, ErrNegativeSize
			}

			s, _ := coll.([]T)
			out := make([]T, n)
			copy(out, s)

			return out, nil
		},
		Count: func(coll any) int {
			s, _ := coll.([]T)
			return len(s)
		},
		Expected: func(size any) int {
			return size.(int)
		},
	})
}
