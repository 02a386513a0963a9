package member

import "memberlink/backend"

// NoParent is the parent of root handles.
var NoParent = Handle{}

// Handle refers to one member handle of a hierarchy. Handles are values and
// hold no strong reference to their hierarchy; a handle of a disposed
// hierarchy is invalid and reads as a broken chain. The declared type of the
// member stays known, so such reads return its default.
//
// The zero Handle is NoParent. Calling its accessors is a programmer error
// and panics.
type Handle struct {
	ctx  *Context
	decl *backend.TypeInfo
	hid  int
	idx  int
}

// IsZero reports whether hd is NoParent.
func (hd Handle) IsZero() bool {
	return hd.ctx == nil
}

// Valid reports whether hd refers to a live handle.
func (hd Handle) Valid() bool {
	_, rec := hd.lookup()
	return rec != nil
}

// Hierarchy returns the hierarchy of hd, or nil once the hierarchy is disposed.
func (hd Handle) Hierarchy() *Hierarchy {
	h, _ := hd.lookup()
	return h
}

// Parent returns the parent handle, or NoParent for roots.
func (hd Handle) Parent() Handle {
	h, rec := hd.lookup()
	if rec == nil || rec.parent < 0 {
		return NoParent
	}

	return h.handle(rec.parent)
}

// Backend returns the backend of hd, or nil when hd is invalid.
func (hd Handle) Backend() backend.Backend {
	_, rec := hd.lookup()
	if rec == nil {
		return nil
	}

	return rec.backend
}

// Kind returns the backend kind.
func (hd Handle) Kind() backend.Kind {
	if b := hd.Backend(); b != nil {
		return b.Kind()
	}

	return 0
}

// Name returns the member name.
func (hd Handle) Name() string {
	if b := hd.Backend(); b != nil {
		return b.Name()
	}

	return ""
}

// DeclaredType returns the declared type of the member.
func (hd Handle) DeclaredType() backend.TypeInfo {
	if b := hd.Backend(); b != nil {
		return b.DeclaredType()
	}

	if hd.decl != nil {
		return *hd.decl
	}

	return backend.AnyType()
}

// zero returns the declared-type default of hd.
func (hd Handle) zero() any {
	if hd.decl == nil {
		return nil
	}

	return hd.decl.Zero
}

// OwnerKind returns the owner-chain status. Invalid handles are broken.
func (hd Handle) OwnerKind() OwnerKind {
	_, rec := hd.lookup()
	if rec == nil {
		return OwnerBroken
	}

	return rec.owner
}

func (hd Handle) CanRead() bool {
	_, rec := hd.lookup()
	return rec != nil && rec.canRead
}

func (hd Handle) CanWrite() bool {
	_, rec := hd.lookup()
	return rec != nil && rec.canWrite
}

func (hd Handle) CanReadWithoutSideEffects() bool {
	_, rec := hd.lookup()
	return rec != nil && rec.canReadPure
}

// IsExternallyPersisted reports whether hd mirrors into an external store property.
func (hd Handle) IsExternallyPersisted() bool {
	return hd.StoreProperty() != nil
}

// StoreProperty returns the external store property of hd, or nil.
func (hd Handle) StoreProperty() StoreProperty {
	_, rec := hd.lookup()
	if rec == nil {
		return nil
	}

	return rec.storeProp
}

func (hd Handle) IsStatic() bool {
	b := hd.Backend()
	return b != nil && b.IsStatic()
}

func (hd Handle) HasOwner() bool {
	b := hd.Backend()
	return b != nil && b.HasOwner()
}

func (hd Handle) OwnerCanBeNull() bool {
	b := hd.Backend()
	return b != nil && b.OwnerCanBeNull()
}

// IsUndoable reports whether writes through hd are recorded in history.
func (hd Handle) IsUndoable() bool {
	return hd.Kind().IsUndoable()
}

// Owner returns the resolved owner of hd for target i.
func (hd Handle) Owner(i int) (any, bool) {
	h, rec := hd.lookup()
	if rec == nil {
		return nil, false
	}

	owner, err := h.ownerAt(rec, i)

	return owner, err == nil
}

// GetValue returns the value for target i.
func (hd Handle) GetValue(i int) any {
	h, rec := hd.lookup()
	if rec == nil {
		return hd.zero()
	}

	return h.GetValue(hd, i)
}

// GetValues returns one value per target. Once the hierarchy is disposed the
// target count is unknown and a single default is returned.
func (hd Handle) GetValues() []any {
	h, _ := hd.lookup()
	if h == nil {
		return []any{hd.zero()}
	}

	return h.GetValues(hd)
}

// SetValue writes value into every target and reports whether any changed.
func (hd Handle) SetValue(value any) bool {
	h, rec := hd.lookup()
	if rec == nil {
		return false
	}

	return h.SetValue(hd, value)
}

// SetValues writes one value per target and reports whether any changed.
func (hd Handle) SetValues(values []any) bool {
	h, rec := hd.lookup()
	if rec == nil {
		return false
	}

	return h.SetValues(hd, values)
}

// MixedContent returns the cached mixed-content state.
func (hd Handle) MixedContent() bool {
	h, rec := hd.lookup()
	if rec == nil {
		return false
	}

	return h.MixedContent(hd)
}

// RecomputeMixedContent recomputes the mixed-content state now.
func (hd Handle) RecomputeMixedContent() bool {
	h, rec := hd.lookup()
	if rec == nil {
		return false
	}

	return h.ComputeMixedContent(hd)
}

// Dispose releases hd. Its descendants become broken.
func (hd Handle) Dispose() {
	if h, _ := hd.lookup(); h != nil {
		h.DisposeHandle(hd)
	}
}

// Equal reports whether hd and other access the same member through equal parents.
// Target sets are not compared.
func (hd Handle) Equal(other Handle) bool {
	if hd.IsZero() || other.IsZero() {
		return hd.IsZero() && other.IsZero()
	}

	a, b := hd.Backend(), other.Backend()
	if a == nil || b == nil || !backend.Equal(a, b) {
		return false
	}

	return hd.Parent().Equal(other.Parent())
}

// String returns the member path, e.g. "Order.Items[2]".
func (hd Handle) String() string {
	if hd.IsZero() {
		return "<no parent>"
	}

	h, rec := hd.lookup()
	if rec == nil {
		return "<disposed>"
	}

	return h.pathOf(rec)
}

func (hd Handle) lookup() (*Hierarchy, *record) {
	if hd.IsZero() {
		panic("member: operation on the zero Handle")
	}

	h, ok := hd.ctx.hierarchy(hd.hid)
	if !ok {
		return nil, nil
	}

	return h, h.record(hd)
}
