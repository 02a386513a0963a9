package backend

import "strconv"

// ParameterSpec describes one parameter of a method.
type ParameterSpec struct {
	Owner    TypeID
	Method   string
	Name     string
	Position int
	Type     TypeInfo
	// Default is the value used until one is assigned. Nil means the type's zero value.
	Default any
}

// Parameter holds the argument value a caller prepares for a method call.
// The value lives in the backend itself, not in any target.
type Parameter struct {
	base
	method   string
	position int
	def      any
	value    any
	assigned bool
}

// NewParameter creates a Parameter backend.
func NewParameter(spec ParameterSpec) *Parameter {
	def := spec.Default
	if def == nil {
		def = spec.Type.Zero
	}

	return &Parameter{
		base: base{
			name:      spec.Name,
			declaring: spec.Owner,
			declared:  spec.Type,
			static:    true,
		},
		method:   spec.Method,
		position: spec.Position,
		def:      def,
	}
}

func (p *Parameter) Kind() Kind                      { return KindParameter }
func (p *Parameter) CanRead() bool                   { return true }
func (p *Parameter) CanWrite() bool                  { return true }
func (p *Parameter) CanReadWithoutSideEffects() bool { return true }

// Position returns the zero-based position of the parameter.
func (p *Parameter) Position() int {
	return p.position
}

func (p *Parameter) GetValue(_ any) (any, error) {
	if p.assigned {
		return p.value, nil
	}

	return p.def, nil
}

func (p *Parameter) SetValue(owner, value any) (any, error) {
	v, err := p.coerce(value)
	if err != nil {
		return owner, err
	}

	p.value = v
	p.assigned = true

	return owner, nil
}

// Release forgets the assigned value.
func (p *Parameter) Release() {
	p.value = nil
	p.assigned = false
}

func (p *Parameter) Descriptor() Descriptor {
	return Descriptor{
		Kind:   KindParameter,
		Type:   p.declaring,
		Member: p.method + "#" + strconv.Itoa(p.position),
		Index:  p.position,
	}
}
