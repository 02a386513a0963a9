package backend

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Backend reads and writes one member of an owner instance.
type Backend interface {
	Kind() Kind
	// Name is the member name ("Count", "[3]", "T", ...).
	Name() string
	// DeclaringType is the type the member belongs to.
	DeclaringType() TypeID
	// DeclaredType is the type of the member value.
	DeclaredType() TypeInfo

	IsStatic() bool
	HasOwner() bool
	OwnerCanBeNull() bool
	CanRead() bool
	CanWrite() bool
	CanReadWithoutSideEffects() bool
	Attributes() []any

	// GetValue returns the member value of owner, or the declared-type default and an error.
	GetValue(owner any) (any, error)
	// SetValue writes value into owner and returns the owner after the write.
	SetValue(owner, value any) (any, error)

	Descriptor() Descriptor
	// Release drops per-instance caches.
	Release()

	sealed()
}

// Descriptor is the reconstructable description of a backend.
type Descriptor struct {
	Kind   Kind     `yaml:"kind"`
	Type   TypeID   `yaml:"type"`
	Member string   `yaml:"member,omitempty"`
	Index  int      `yaml:"index,omitempty"`
	Args   []string `yaml:"args,omitempty"`
}

// Key returns the canonical identity of the described member.
// Declared types are not part of the key.
func (d Descriptor) Key() string {
	var sb strings.Builder
	sb.WriteString(d.Kind.String())
	sb.WriteByte('|')
	sb.WriteString(d.Type.String())
	sb.WriteByte('|')
	sb.WriteString(d.Member)
	sb.WriteByte('|')
	sb.WriteString(strconv.Itoa(d.Index))
	if len(d.Args) > 0 {
		sb.WriteByte('|')
		sb.WriteString(strings.Join(d.Args, ","))
	}

	return sb.String()
}

// Key returns the descriptor key of b.
func Key(b Backend) string {
	return b.Descriptor().Key()
}

// Equal reports whether two backends access the same member.
func Equal(a, b Backend) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return Key(a) == Key(b)
}

// base holds the metadata shared by every kind.
type base struct {
	name       string
	declaring  TypeID
	declared   TypeInfo
	attrs      []any
	static     bool
	nilOwnerOK bool
}

func (b *base) Name() string           { return b.name }
func (b *base) DeclaringType() TypeID  { return b.declaring }
func (b *base) DeclaredType() TypeInfo { return b.declared }
func (b *base) IsStatic() bool         { return b.static }
func (b *base) HasOwner() bool         { return !b.static }
func (b *base) OwnerCanBeNull() bool   { return b.static || b.nilOwnerOK }
func (b *base) Attributes() []any      { return slices.Clone(b.attrs) }
func (b *base) Release()               {}
func (b *base) sealed()                {}

func (b *base) path() string {
	if b.declaring.IsZero() {
		return b.name
	}

	if strings.HasPrefix(b.name, "[") {
		return b.declaring.Short() + b.name
	}

	return b.declaring.Short() + "." + b.name
}

func (b *base) read(owner any, get func(owner any) (any, error)) (any, error) {
	if get == nil {
		return b.declared.Zero, &InvocationError{Member: b.path(), Op: "get", Err: ErrNotReadable}
	}

	if owner == nil && !b.OwnerCanBeNull() {
		return b.declared.Zero, &InvocationError{Member: b.path(), Op: "get", Err: ErrNilOwner}
	}

	v, err := invoke(func() (any, error) { return get(owner) })
	if err != nil {
		return b.declared.Zero, b.wrap("get", err)
	}

	return v, nil
}

func (b *base) write(owner, value any, set func(owner, value any) (any, error)) (any, error) {
	if set == nil {
		return owner, &InvocationError{Member: b.path(), Op: "set", Err: ErrNotWritable}
	}

	if owner == nil && !b.OwnerCanBeNull() {
		return owner, &InvocationError{Member: b.path(), Op: "set", Err: ErrNilOwner}
	}

	v, err := b.coerce(value)
	if err != nil {
		return owner, err
	}

	updated, err := invoke(func() (any, error) { return set(owner, v) })
	if err != nil {
		return owner, b.wrap("set", err)
	}

	return updated, nil
}

func (b *base) coerce(value any) (any, error) {
	v, ok := b.declared.Coerce(value)
	if !ok {
		return nil, &CastError{Member: b.path(), Want: b.declared.ID, Got: fmt.Sprintf("%T", value)}
	}

	return v, nil
}

func (b *base) wrap(op string, err error) error {
	switch err.(type) {
	case *InvocationError, *CastError, *IndexError:
		return err
	default:
		return &InvocationError{Member: b.path(), Op: op, Err: err}
	}
}
