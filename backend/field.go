package backend

// FieldSpec describes a field member.
type FieldSpec struct {
	Name       string
	Owner      TypeID
	Type       TypeInfo
	Static     bool
	Get        func(owner any) (any, error)
	Set        func(owner, value any) (any, error)
	Attributes []any
}

// Field is a plain data member. Reading a field never has side effects.
type Field struct {
	base
	get func(owner any) (any, error)
	set func(owner, value any) (any, error)
}

// NewField creates a Field backend.
func NewField(spec FieldSpec) *Field {
	return &Field{
		base: base{
			name:      spec.Name,
			declaring: spec.Owner,
			declared:  spec.Type,
			attrs:     spec.Attributes,
			static:    spec.Static,
		},
		get: spec.Get,
		set: spec.Set,
	}
}

func (f *Field) Kind() Kind                      { return KindField }
func (f *Field) CanRead() bool                   { return f.get != nil }
func (f *Field) CanWrite() bool                  { return f.set != nil }
func (f *Field) CanReadWithoutSideEffects() bool { return f.get != nil }

func (f *Field) GetValue(owner any) (any, error) {
	return f.read(owner, f.get)
}

func (f *Field) SetValue(owner, value any) (any, error) {
	return f.write(owner, value, f.set)
}

func (f *Field) Descriptor() Descriptor {
	return Descriptor{Kind: KindField, Type: f.declaring, Member: f.name}
}
