package backend

type genericKey struct {
	Type     TypeID
	Position int
}

// GenericArgs stores the chosen type argument per (generic type, argument position).
// One table is shared by every target set of a context.
type GenericArgs struct {
	values map[genericKey]TypeID
}

// NewGenericArgs creates an empty table.
func NewGenericArgs() *GenericArgs {
	return &GenericArgs{values: make(map[genericKey]TypeID)}
}

// Get returns the stored argument.
func (g *GenericArgs) Get(generic TypeID, position int) (TypeID, bool) {
	v, ok := g.values[genericKey{Type: generic, Position: position}]
	return v, ok
}

// Set stores an argument.
func (g *GenericArgs) Set(generic TypeID, position int, arg TypeID) {
	g.values[genericKey{Type: generic, Position: position}] = arg
}

// Len returns the number of stored arguments.
func (g *GenericArgs) Len() int {
	return len(g.values)
}

// Reset drops every stored argument.
func (g *GenericArgs) Reset() {
	clear(g.values)
}

// GenericArgSpec describes one type parameter of a generic type.
type GenericArgSpec struct {
	// Generic is the generic type declaring the parameter.
	Generic  TypeID
	Name     string
	Position int
	// Default is returned until an argument is chosen.
	Default TypeID
}

// GenericTypeArgument is the type chosen for a type parameter. Its value is a
// TypeID kept in a shared GenericArgs table rather than in any target.
type GenericTypeArgument struct {
	base
	table    *GenericArgs
	position int
	def      TypeID
}

// NewGenericTypeArgument creates a GenericTypeArgument backend over table.
func NewGenericTypeArgument(table *GenericArgs, spec GenericArgSpec) *GenericTypeArgument {
	if table == nil {
		panic("backend: generic type argument requires a GenericArgs table")
	}

	return &GenericTypeArgument{
		base: base{
			name:      spec.Name,
			declaring: spec.Generic,
			declared:  TypeOf[TypeID](),
			static:    true,
		},
		table:    table,
		position: spec.Position,
		def:      spec.Default,
	}
}

func (g *GenericTypeArgument) Kind() Kind                      { return KindGenericTypeArgument }
func (g *GenericTypeArgument) CanRead() bool                   { return true }
func (g *GenericTypeArgument) CanWrite() bool                  { return true }
func (g *GenericTypeArgument) CanReadWithoutSideEffects() bool { return true }

// Position returns the position of the type parameter.
func (g *GenericTypeArgument) Position() int {
	return g.position
}

func (g *GenericTypeArgument) GetValue(_ any) (any, error) {
	if v, ok := g.table.Get(g.declaring, g.position); ok {
		return v, nil
	}

	return g.def, nil
}

func (g *GenericTypeArgument) SetValue(owner, value any) (any, error) {
	v, err := g.coerce(value)
	if err != nil {
		return owner, err
	}

	g.table.Set(g.declaring, g.position, v.(TypeID))

	return owner, nil
}

func (g *GenericTypeArgument) Descriptor() Descriptor {
	return Descriptor{Kind: KindGenericTypeArgument, Type: g.declaring, Member: g.name, Index: g.position}
}
