package backend

import "fmt"

// MethodSpec describes a method whose result is exposed as a member value.
type MethodSpec struct {
	Name  string
	Owner TypeID
	// Type is the return type. Ignored when Void is set.
	Type    TypeInfo
	Void    bool
	Params  int
	Generic bool
	Static  bool
	Call    func(owner any, args []any) (any, error)
	// Setter is a distinct method that accepts a value, e.g. SetName for Name.
	Setter     func(owner, value any) (any, error)
	Attributes []any
}

// Method exposes the result of calling a method. Only parameterless,
// non-generic methods with a result can be read; reading always invokes the
// method and is therefore never considered free of side effects.
type Method struct {
	base
	call    func(owner any, args []any) (any, error)
	setter  func(owner, value any) (any, error)
	void    bool
	params  int
	generic bool
}

// NewMethod creates a Method backend.
func NewMethod(spec MethodSpec) *Method {
	declared := spec.Type
	if spec.Void {
		declared = AnyType()
	}

	return &Method{
		base: base{
			name:      spec.Name,
			declaring: spec.Owner,
			declared:  declared,
			attrs:     spec.Attributes,
			static:    spec.Static,
		},
		call:    spec.Call,
		setter:  spec.Setter,
		void:    spec.Void,
		params:  spec.Params,
		generic: spec.Generic,
	}
}

func (m *Method) Kind() Kind                      { return KindMethod }
func (m *Method) CanRead() bool                   { return m.call != nil && !m.void && m.params == 0 && !m.generic }
func (m *Method) CanWrite() bool                  { return m.setter != nil }
func (m *Method) CanReadWithoutSideEffects() bool { return false }

// Params returns the number of parameters the method declares.
func (m *Method) Params() int {
	return m.params
}

func (m *Method) GetValue(owner any) (any, error) {
	if !m.CanRead() {
		return m.declared.Zero, &InvocationError{Member: m.path(), Op: "get", Err: ErrNotReadable}
	}

	return m.read(owner, func(owner any) (any, error) { return m.call(owner, nil) })
}

func (m *Method) SetValue(owner, value any) (any, error) {
	return m.write(owner, value, m.setter)
}

// Invoke calls the method with explicit arguments. Void methods return nil.
func (m *Method) Invoke(owner any, args ...any) (any, error) {
	if m.call == nil {
		return nil, &InvocationError{Member: m.path(), Op: "call", Err: ErrNotReadable}
	}

	if len(args) != m.params {
		return nil, &InvocationError{
			Member: m.path(),
			Op:     "call",
			Err:    fmt.Errorf("want %d arguments, got %d", m.params, len(args)),
		}
	}

	if owner == nil && !m.OwnerCanBeNull() {
		return nil, &InvocationError{Member: m.path(), Op: "call", Err: ErrNilOwner}
	}

	v, err := invoke(func() (any, error) { return m.call(owner, args) })
	if err != nil {
		return nil, m.wrap("call", err)
	}

	return v, nil
}

func (m *Method) Descriptor() Descriptor {
	return Descriptor{Kind: KindMethod, Type: m.declaring, Member: m.name, Index: m.params}
}
