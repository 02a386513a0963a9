package member

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"memberlink/backend"
	"memberlink/internal/common"
	"memberlink/internal/diagnostic"
)

type cacheKey struct {
	parent int
	key    string
}

// record is one slot of the hierarchy arena.
type record struct {
	backend backend.Backend
	// decl is shared with every Handle of the record and outlives it.
	decl *backend.TypeInfo
	// parent is the arena index of the parent record, -1 for roots.
	parent int
	owner  OwnerKind
	// static is set when the chain root needs no owner.
	static bool

	canRead     bool
	canReadPure bool
	canWrite    bool
	// writeBack is set when a write produces a new owner that has to be
	// stored into the parent.
	writeBack bool

	storePath string
	storeProp StoreProperty

	mixed      bool
	mixedAt    time.Time
	mixedValid bool
}

func (r *record) markBroken() {
	r.owner = OwnerBroken
	r.canRead = false
	r.canReadPure = false
	r.canWrite = false
	r.writeBack = false
}

// Hierarchy is the registry of member handles over one target set.
type Hierarchy struct {
	ctx      *Context
	id       int
	key      string
	targets  []any
	records  []*record
	cache    map[cacheKey]int
	store    Store
	disposed bool
}

// GetOption configures Hierarchy.Get.
type GetOption func(*getOptions)

type getOptions struct {
	storePath string
}

// WithStorePath mirrors the handle into the external store property at path.
// A missing store or an unresolvable path leaves the handle not persisted.
func WithStorePath(path string) GetOption {
	return func(o *getOptions) {
		o.storePath = path
	}
}

// ID returns the context-unique id of the hierarchy.
func (h *Hierarchy) ID() int { return h.id }

// Context returns the owning context.
func (h *Hierarchy) Context() *Context { return h.ctx }

// Targets returns a copy of the target set.
func (h *Hierarchy) Targets() []any { return slices.Clone(h.targets) }

// Len returns the number of targets.
func (h *Hierarchy) Len() int { return len(h.targets) }

// IsMultiple reports whether the hierarchy edits more than one target.
func (h *Hierarchy) IsMultiple() bool { return common.IsMultiple(h.targets) }

// Store returns the external store, or nil.
func (h *Hierarchy) Store() Store { return h.store }

// Disposed reports whether Dispose was called.
func (h *Hierarchy) Disposed() bool { return h.disposed }

// Root returns the handle of a member of the targets themselves.
func (h *Hierarchy) Root(b backend.Backend, opts ...GetOption) Handle {
	return h.Get(NoParent, b, opts...)
}

// Get returns the handle of member b of the value of parent, creating it on
// first use. A parent from another hierarchy yields a broken handle.
func (h *Hierarchy) Get(parent Handle, b backend.Backend, opts ...GetOption) Handle {
	if b == nil {
		panic("member: Get called with a nil backend")
	}

	if h.disposed {
		panic("member: Get called on a disposed hierarchy")
	}

	var o getOptions
	for _, opt := range opts {
		opt(&o)
	}

	h.ctx.catalog.Register(b)

	foreign := !parent.IsZero() && (parent.ctx != h.ctx || parent.hid != h.id)
	key := cacheKey{parent: -1, key: backend.Key(b)}
	if !parent.IsZero() && !foreign {
		key.parent = parent.idx
	}

	if !foreign {
		if idx, ok := h.cache[key]; ok {
			rec := h.records[idx]
			if rec != nil && rec.owner != OwnerBroken {
				return h.handle(idx)
			}

			h.release(idx)
		}
	}

	rec := h.newRecord(key.parent, foreign, b, o)
	idx := len(h.records)
	h.records = append(h.records, rec)

	if !foreign {
		h.cache[key] = idx
	}

	hd := h.handle(idx)
	if rec.owner == OwnerBroken && h.ctx.cfg.ReportBrokenChains {
		h.ctx.diag.Warn(diagnostic.CodeBrokenChain, "handle created with a broken owner chain", h.pathOf(rec), "")
	}

	return hd
}

// Handles returns every live handle in creation order.
func (h *Hierarchy) Handles() []Handle {
	out := make([]Handle, 0, len(h.records))
	for idx, rec := range h.records {
		if rec != nil {
			out = append(out, h.handle(idx))
		}
	}

	return out
}

// Dispose releases every handle and removes the hierarchy from its context.
func (h *Hierarchy) Dispose() {
	if h.disposed {
		return
	}

	h.disposed = true
	for _, rec := range h.records {
		if rec != nil {
			rec.backend.Release()
		}
	}

	h.records = nil
	h.cache = nil
	h.ctx.remove(h)
}

// DisposeHandle releases one handle. Its descendants become broken.
func (h *Hierarchy) DisposeHandle(hd Handle) {
	if h.disposed || hd.ctx != h.ctx || hd.hid != h.id {
		return
	}

	h.release(hd.idx)
}

func (h *Hierarchy) release(idx int) {
	if !common.HasIndex(h.records, idx) || h.records[idx] == nil {
		return
	}

	rec := h.records[idx]
	rec.backend.Release()
	h.records[idx] = nil

	for k, v := range h.cache {
		if v == idx {
			delete(h.cache, k)
		}
	}
}

func (h *Hierarchy) newRecord(parent int, foreign bool, b backend.Backend, o getOptions) *record {
	decl := b.DeclaredType()
	rec := &record{backend: b, decl: &decl, parent: parent, storePath: o.storePath}

	var prec *record
	if parent >= 0 {
		prec = h.records[parent]
	}

	switch {
	case foreign:
		rec.parent = -1
		rec.owner = OwnerBroken
	case parent >= 0 && (prec == nil || prec.owner == OwnerBroken):
		rec.owner = OwnerBroken
	case b.IsStatic():
		rec.owner = OwnerRootOnStatic
		rec.static = true
	case parent >= 0:
		rec.owner = OwnerChained
		rec.static = prec.static
	case common.IsEmpty(h.targets):
		rec.owner = OwnerBroken
	default:
		rec.owner = OwnerRootOnInstance
	}

	switch rec.owner {
	case OwnerBroken:
		return rec
	case OwnerRootOnInstance, OwnerRootOnStatic:
		rec.canRead = b.CanRead()
		rec.canReadPure = b.CanReadWithoutSideEffects()
		rec.canWrite = b.CanWrite()
	case OwnerChained:
		rec.canRead = prec.canRead && b.CanRead()
		rec.canReadPure = prec.canReadPure && b.CanReadWithoutSideEffects()
		rec.writeBack = prec.backend.DeclaredType().ValueSemantics || b.Kind().ReplacesOwner()
		rec.canWrite = b.CanWrite() && prec.canRead && (!rec.writeBack || prec.canWrite)
	}

	if o.storePath != "" && h.store != nil && len(h.targets) > 0 {
		rec.storeProp = h.findProperty(o.storePath)
	}

	return rec
}

func (h *Hierarchy) findProperty(path string) (prop StoreProperty) {
	defer func() {
		if r := recover(); r != nil {
			h.ctx.diag.Info(diagnostic.CodeStoreUnavailable, fmt.Sprintf("store lookup of %q panicked: %v", path, r), path, "")
			prop = nil
		}
	}()

	p, err := h.store.FindProperty(path)
	if err != nil {
		h.ctx.diag.Info(diagnostic.CodeStoreUnavailable, err.Error(), path, "")
		return nil
	}

	return p
}

// handle returns the Handle of the record at idx.
func (h *Hierarchy) handle(idx int) Handle {
	hd := Handle{ctx: h.ctx, hid: h.id, idx: idx}
	if common.HasIndex(h.records, idx) && h.records[idx] != nil {
		hd.decl = h.records[idx].decl
	}

	return hd
}

// record returns the arena record of hd, or nil when hd is stale.
func (h *Hierarchy) record(hd Handle) *record {
	if h.disposed || hd.ctx != h.ctx || hd.hid != h.id {
		return nil
	}

	if hd.idx < 0 || hd.idx >= len(h.records) {
		return nil
	}

	return h.records[hd.idx]
}

func (h *Hierarchy) parentOf(rec *record) *record {
	if rec.parent < 0 || rec.parent >= len(h.records) {
		return nil
	}

	return h.records[rec.parent]
}

// slots returns how many owners a record resolves: one for static chains,
// one per target otherwise.
func (h *Hierarchy) slots(rec *record) int {
	if rec.static {
		return 1
	}

	return len(h.targets)
}

// ownerAt resolves the owner of rec for target i by walking the chain from its root.
func (h *Hierarchy) ownerAt(rec *record, i int) (any, error) {
	switch rec.owner {
	case OwnerRootOnStatic:
		return nil, nil
	case OwnerRootOnInstance:
		if !common.HasIndex(h.targets, i) {
			return nil, &backend.IndexError{Member: h.pathOf(rec), Index: i, Len: len(h.targets)}
		}

		return h.targets[i], nil
	case OwnerChained:
		prec := h.parentOf(rec)
		if prec == nil || prec.owner == OwnerBroken {
			rec.markBroken()
			return nil, ErrBrokenChain
		}

		owner, err := h.valueAt(prec, i)
		if errors.Is(err, ErrBrokenChain) {
			rec.markBroken()
		}

		return owner, err
	default:
		return nil, ErrBrokenChain
	}
}

// valueAt returns the member value of rec for target i.
func (h *Hierarchy) valueAt(rec *record, i int) (any, error) {
	zero := rec.backend.DeclaredType().Zero
	if rec.owner == OwnerBroken {
		return zero, ErrBrokenChain
	}

	owner, err := h.ownerAt(rec, i)
	if err != nil {
		return zero, err
	}

	return rec.backend.GetValue(owner)
}

// read returns the value of rec for target i and reports failures.
func (h *Hierarchy) read(rec *record, i int) (any, bool) {
	v, err := h.valueAt(rec, i)
	if err != nil {
		h.report(rec, i, err)
		return v, false
	}

	return v, true
}

func (h *Hierarchy) report(rec *record, i int, err error) {
	member := h.pathOf(rec)
	target := ""
	if !rec.static {
		target = targetLabel(h.targets, i)
	}

	var (
		idxErr  *backend.IndexError
		castErr *backend.CastError
	)

	switch {
	case errors.Is(err, ErrBrokenChain):
		if h.ctx.cfg.ReportBrokenChains {
			h.ctx.diag.Warn(diagnostic.CodeBrokenChain, err.Error(), member, target)
		}
	case errors.Is(err, backend.ErrNilOwner):
	case errors.As(err, &idxErr):
		h.ctx.diag.Warn(diagnostic.CodeIndexOutOfRange, err.Error(), member, target)
	case errors.As(err, &castErr):
		h.ctx.diag.Warn(diagnostic.CodeCastFailure, err.Error(), member, target)
	case errors.Is(err, backend.ErrNotWritable):
		h.ctx.diag.Warn(diagnostic.CodeNotWritable, err.Error(), member, target)
	default:
		h.ctx.diag.Error(diagnostic.CodeBackendInvocation, err.Error(), member, target)
	}
}

// pathOf renders the member path of rec, e.g. "Order.Items[2]".
func (h *Hierarchy) pathOf(rec *record) string {
	var names []string
	for r := rec; r != nil; r = h.parentOf(r) {
		names = append(names, r.backend.Name())
		if r.parent < 0 {
			if t := r.backend.DeclaringType(); !t.IsZero() {
				names = append(names, t.Short())
			}

			break
		}
	}

	slices.Reverse(names)

	var sb strings.Builder
	for i, n := range names {
		if i > 0 && !strings.HasPrefix(n, "[") {
			sb.WriteByte('.')
		}

		sb.WriteString(n)
	}

	return sb.String()
}
