package backend

// PropertySpec describes a computed member with accessor functions.
type PropertySpec struct {
	Name   string
	Owner  TypeID
	Type   TypeInfo
	Static bool
	Get    func(owner any) (any, error)
	Set    func(owner, value any) (any, error)
	// Pure declares that Get has no side effects, which allows comparing the
	// value across targets.
	Pure       bool
	Attributes []any
}

// Property is a member backed by getter and setter functions.
type Property struct {
	base
	get  func(owner any) (any, error)
	set  func(owner, value any) (any, error)
	pure bool
}

// NewProperty creates a Property backend.
func NewProperty(spec PropertySpec) *Property {
	return &Property{
		base: base{
			name:      spec.Name,
			declaring: spec.Owner,
			declared:  spec.Type,
			attrs:     spec.Attributes,
			static:    spec.Static,
		},
		get:  spec.Get,
		set:  spec.Set,
		pure: spec.Pure,
	}
}

func (p *Property) Kind() Kind                      { return KindProperty }
func (p *Property) CanRead() bool                   { return p.get != nil }
func (p *Property) CanWrite() bool                  { return p.set != nil }
func (p *Property) CanReadWithoutSideEffects() bool { return p.get != nil && p.pure }

func (p *Property) GetValue(owner any) (any, error) {
	return p.read(owner, p.get)
}

func (p *Property) SetValue(owner, value any) (any, error) {
	return p.write(owner, value, p.set)
}

func (p *Property) Descriptor() Descriptor {
	return Descriptor{Kind: KindProperty, Type: p.declaring, Member: p.name}
}
