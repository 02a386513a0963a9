package bind

import (
	"errors"
	"fmt"
	"reflect"

	"memberlink/backend"
)

var (
	ErrNotStruct     = errors.New("type has no fields")
	ErrUnknownField  = errors.New("no exported field with that name")
	ErrNotCollection = errors.New("type is not a slice or array")
	ErrNotMap        = errors.New("type is not a map with string-like keys")
	ErrFixedSize     = errors.New("arrays cannot be resized")
)

// Field returns a backend for the exported field name of owner, which may be
// a struct or a pointer to one. For struct owners the write goes into a copy
// that is returned as the new owner.
func Field(owner reflect.Type, name string) (*backend.Field, error) {
	st := owner
	byPointer := st.Kind() == reflect.Pointer
	if byPointer {
		st = st.Elem()
	}

	if st.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, owner)
	}

	sf, ok := st.FieldByName(name)
	if !ok || !sf.IsExported() {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, st, name)
	}

	ft := sf.Type
	index := sf.Index

	get := func(o any) (any, error) {
		rv, err := structValue(o, byPointer)
		if err != nil {
			return nil, err
		}

		return rv.FieldByIndex(index).Interface(), nil
	}

	set := func(o, value any) (any, error) {
		rv, err := structValue(o, byPointer)
		if err != nil {
			return nil, err
		}

		if byPointer {
			rv.FieldByIndex(index).Set(valueOf(value, ft))
			return o, nil
		}

		cp := reflect.New(st).Elem()
		cp.Set(rv)
		cp.FieldByIndex(index).Set(valueOf(value, ft))

		return cp.Interface(), nil
	}

	return backend.NewField(backend.FieldSpec{
		Name:  name,
		Owner: backend.IDOf(st),
		Type:  backend.TypeFromReflect(ft),
		Get:   get,
		Set:   set,
	}), nil
}

// Element returns a backend for element i of a slice or array type. Slice
// elements are written in place; arrays are written into a copy.
func Element(coll reflect.Type, i int) (*backend.CollectionElement, error) {
	if coll.Kind() != reflect.Slice && coll.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: %s", ErrNotCollection, coll)
	}

	et := coll.Elem()

	return backend.NewCollectionElement(backend.ElementSpec{
		Collection: backend.IDOf(coll),
		Type:       backend.TypeFromReflect(et),
		Index:      i,
		Len: func(c any) int {
			return reflect.ValueOf(c).Len()
		},
		Get: func(c any, i int) (any, error) {
			return reflect.ValueOf(c).Index(i).Interface(), nil
		},
		Set: func(c any, i int, value any) (any, error) {
			rv := reflect.ValueOf(c)
			if coll.Kind() == reflect.Slice {
				rv.Index(i).Set(valueOf(value, et))
				return c, nil
			}

			cp := reflect.New(coll).Elem()
			cp.Set(rv)
			cp.Index(i).Set(valueOf(value, et))

			return cp.Interface(), nil
		},
	}), nil
}

// Resizer returns the size backend of a slice type. Resizing copies into a
// new slice of the requested length.
func Resizer(coll reflect.Type) (*backend.CollectionResizer, error) {
	switch coll.Kind() {
	case reflect.Slice:
	case reflect.Array:
		return nil, fmt.Errorf("%w: %s", ErrFixedSize, coll)
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotCollection, coll)
	}

	length := func(c any) int {
		if c == nil {
			return 0
		}

		return reflect.ValueOf(c).Len()
	}

	return backend.NewCollectionResizer(backend.ResizerSpec{
		Collection: backend.IDOf(coll),
		Size:       backend.TypeOf[int](),
		Get: func(c any) (any, error) {
			return length(c), nil
		},
		Resize: func(c any, size any) (any, error) {
			n := size.(int)
			if n < 0 {
				return nil, backend.ErrNegativeSize
			}

			out := reflect.MakeSlice(coll, n, n)
			if c != nil {
				reflect.Copy(out, reflect.ValueOf(c))
			}

			return out.Interface(), nil
		},
		Count:    length,
		Expected: func(size any) int { return size.(int) },
	}), nil
}

// MapKey returns an indexer for the value of key in a map type with
// string-like keys. Missing keys read as the element zero value.
func MapKey(m reflect.Type, key string) (*backend.Indexer, error) {
	if m.Kind() != reflect.Map || m.Key().Kind() != reflect.String {
		return nil, fmt.Errorf("%w: %s", ErrNotMap, m)
	}

	kv := reflect.ValueOf(key).Convert(m.Key())
	et := m.Elem()

	return backend.NewIndexer(backend.IndexerSpec{
		Owner: backend.IDOf(m),
		Type:  backend.TypeFromReflect(et),
		Args:  []any{key},
		Pure:  true,
		Get: func(owner any, _ []any) (any, error) {
			v := reflect.ValueOf(owner).MapIndex(kv)
			if !v.IsValid() {
				return reflect.Zero(et).Interface(), nil
			}

			return v.Interface(), nil
		},
		Set: func(owner any, _ []any, value any) (any, error) {
			rv := reflect.ValueOf(owner)
			if rv.IsNil() {
				return nil, fmt.Errorf("assignment to entry in nil map %s", m)
			}

			rv.SetMapIndex(kv, valueOf(value, et))

			return owner, nil
		},
	}), nil
}

func structValue(o any, byPointer bool) (reflect.Value, error) {
	rv := reflect.ValueOf(o)
	if !byPointer {
		return rv, nil
	}

	if rv.IsNil() {
		return reflect.Value{}, backend.ErrNilOwner
	}

	return rv.Elem(), nil
}

// valueOf returns v as a value assignable to t. Nil becomes the zero value.
func valueOf(v any, t reflect.Type) reflect.Value {
	if v == nil {
		return reflect.Zero(t)
	}

	return reflect.ValueOf(v)
}
