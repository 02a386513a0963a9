package backend

import (
	"fmt"
	"slices"
)

// IndexerSpec describes an indexed accessor bound to fixed index arguments,
// such as a map key or a this[row, col] accessor.
type IndexerSpec struct {
	Name  string
	Owner TypeID
	Type  TypeInfo
	Args  []any
	Get   func(owner any, args []any) (any, error)
	Set   func(owner any, args []any, value any) (any, error)
	// Pure declares that Get has no side effects.
	Pure       bool
	Attributes []any
}

// Indexer is a member reached through an indexed accessor.
type Indexer struct {
	base
	args []any
	get  func(owner any, args []any) (any, error)
	set  func(owner any, args []any, value any) (any, error)
	pure bool
}

// NewIndexer creates an Indexer backend.
func NewIndexer(spec IndexerSpec) *Indexer {
	name := spec.Name
	if name == "" {
		name = "Item"
	}

	return &Indexer{
		base: base{
			name:      name,
			declaring: spec.Owner,
			declared:  spec.Type,
			attrs:     spec.Attributes,
		},
		args: slices.Clone(spec.Args),
		get:  spec.Get,
		set:  spec.Set,
		pure: spec.Pure,
	}
}

func (x *Indexer) Kind() Kind                      { return KindIndexer }
func (x *Indexer) CanRead() bool                   { return x.get != nil }
func (x *Indexer) CanWrite() bool                  { return x.set != nil }
func (x *Indexer) CanReadWithoutSideEffects() bool { return x.get != nil && x.pure }

// Args returns the bound index arguments.
func (x *Indexer) Args() []any {
	return slices.Clone(x.args)
}

func (x *Indexer) GetValue(owner any) (any, error) {
	if x.get == nil {
		return x.read(owner, nil)
	}

	return x.read(owner, func(owner any) (any, error) { return x.get(owner, x.args) })
}

func (x *Indexer) SetValue(owner, value any) (any, error) {
	if x.set == nil {
		return x.write(owner, value, nil)
	}

	return x.write(owner, value, func(owner, value any) (any, error) { return x.set(owner, x.args, value) })
}

func (x *Indexer) Descriptor() Descriptor {
	return Descriptor{Kind: KindIndexer, Type: x.declaring, Member: x.name, Args: formatArgs(x.args)}
}

func formatArgs(args []any) []string {
	if len(args) == 0 {
		return nil
	}

	out := make([]string, len(args))
	for i, a := range args {
		out[i] = fmt.Sprintf("%v", a)
	}

	return out
}
