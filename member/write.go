package member

import (
	"fmt"

	"memberlink/backend"
	"memberlink/internal/common"
	"memberlink/internal/diagnostic"
)

// GetValue returns the value of hd for target i, or the declared-type
// default when the chain cannot be resolved.
func (h *Hierarchy) GetValue(hd Handle, i int) any {
	rec := h.mustRecord(hd)
	if rec == nil {
		return hd.zero()
	}

	v, _ := h.read(rec, i)

	return v
}

// GetValues returns one value per target, or a single value for static members.
// A disposed handle reads the declared-type default for every target.
func (h *Hierarchy) GetValues(hd Handle) []any {
	rec := h.mustRecord(hd)
	if rec == nil {
		return common.Repeat(hd.zero(), max(len(h.targets), 1))
	}

	n := max(h.slots(rec), 1)
	out := make([]any, n)
	for i := range out {
		out[i], _ = h.read(rec, i)
	}

	return out
}

// SetValue writes value into every target.
func (h *Hierarchy) SetValue(hd Handle, value any) bool {
	return h.SetValues(hd, []any{value})
}

// SetValues writes one value per target. A single value is written into every
// target. It reports whether any target changed.
func (h *Hierarchy) SetValues(hd Handle, values []any) bool {
	rec := h.mustRecord(hd)
	if rec == nil {
		return false
	}

	if rec.owner == OwnerBroken {
		h.report(rec, 0, ErrBrokenChain)
		return false
	}

	if !rec.canWrite {
		h.ctx.diag.Warn(diagnostic.CodeNotWritable, "member is not writable", h.pathOf(rec), "")
		return false
	}

	n := h.slots(rec)
	if n == 0 {
		return false
	}

	switch {
	case len(values) == 1 && n > 1:
		values = common.Repeat(values[0], n)
	case len(values) != n:
		msg := fmt.Sprintf("got %d values for %d targets", len(values), n)
		h.ctx.diag.Warn(diagnostic.CodeValueCount, msg, h.pathOf(rec), "")

		return false
	}

	changed := h.write(hd.idx, rec, values, nil)
	if changed {
		h.recomputeMixed(rec)
	}

	return changed
}

// write applies values to the slots selected by only (all when nil).
func (h *Hierarchy) write(idx int, rec *record, values []any, only []bool) bool {
	if rec.writeBack {
		return h.writeBack(rec, values, only)
	}

	return h.writeDirect(idx, rec, values, only)
}

// writeBack writes into copies of the parent values and stores the copies
// through the parent handle.
func (h *Hierarchy) writeBack(rec *record, values []any, only []bool) bool {
	prec := h.parentOf(rec)
	if prec == nil || prec.owner == OwnerBroken {
		rec.markBroken()
		return false
	}

	n := h.slots(rec)
	next := make([]any, n)
	mask := make([]bool, n)
	changed := false

	for i := range n {
		if only != nil && !only[i] {
			continue
		}

		owner, err := h.valueAt(prec, i)
		if err != nil {
			h.report(rec, i, err)
			continue
		}

		if !h.accepts(rec, i, values[i]) {
			continue
		}

		if rec.backend.CanRead() {
			if cur, err := rec.backend.GetValue(owner); err == nil && holds(rec.backend, cur, values[i]) {
				continue
			}
		}

		updated, err := rec.backend.SetValue(owner, values[i])
		if err != nil {
			h.report(rec, i, err)
			continue
		}

		next[i] = updated
		mask[i] = true
		changed = true
	}

	if !changed {
		return false
	}

	return h.write(rec.parent, prec, next, mask)
}

// writeDirect writes into the resolved owners, recording the write first.
func (h *Hierarchy) writeDirect(idx int, rec *record, values []any, only []bool) bool {
	n := h.slots(rec)
	owners := make([]any, n)
	changing := make([]int, 0, n)

	for i := range n {
		if only != nil && !only[i] {
			continue
		}

		owner, err := h.ownerAt(rec, i)
		if err != nil {
			h.report(rec, i, err)
			continue
		}

		if !h.accepts(rec, i, values[i]) {
			continue
		}

		if rec.backend.CanRead() {
			if cur, err := rec.backend.GetValue(owner); err == nil && holds(rec.backend, cur, values[i]) {
				continue
			}
		}

		owners[i] = owner
		changing = append(changing, i)
	}

	if len(changing) == 0 {
		return false
	}

	hd := h.handle(idx)
	w := Write{
		Handle:      hd,
		Description: "Set " + h.pathOf(rec),
	}

	if rec.static {
		w.Targets = h.Targets()
		w.To = []any{values[0]}
	} else {
		w.Targets = common.Pick(h.targets, changing)
		w.Indexes = changing
		w.To = common.Pick(values, changing)
	}

	modified := h.ctx.registerWrite(w)

	written := make([]int, 0, len(changing))
	for _, i := range changing {
		updated, err := rec.backend.SetValue(owners[i], values[i])
		if err != nil {
			h.report(rec, i, err)
			continue
		}

		if rec.owner == OwnerRootOnInstance && !isReference(h.targets[i]) && updated != nil {
			h.targets[i] = updated
		}

		written = append(written, i)
	}

	if rec.static {
		return len(written) > 0
	}

	for _, i := range written {
		if modified {
			h.ctx.markModified(h.targets[i])
		}

		h.ctx.notifyChanged(h.targets[i])
	}

	return len(written) > 0
}

// accepts reports a value that cannot be converted to the member type, so
// that it is dropped before anything is recorded.
func (h *Hierarchy) accepts(rec *record, i int, v any) bool {
	t := rec.backend.DeclaredType()
	if _, ok := t.Coerce(v); ok {
		return true
	}

	h.report(rec, i, &backend.CastError{Member: h.pathOf(rec), Want: t.ID, Got: fmt.Sprintf("%T", v)})

	return false
}

// holds reports whether cur already equals v once v is converted to the member type.
func holds(b backend.Backend, cur, v any) bool {
	if c, ok := b.DeclaredType().Coerce(v); ok {
		v = c
	}

	return Equal(cur, v)
}

// mustRecord returns the record of hd. It panics on the zero handle and on
// handles of another hierarchy, and returns nil for disposed handles.
func (h *Hierarchy) mustRecord(hd Handle) *record {
	if hd.IsZero() {
		panic("member: operation on the zero Handle")
	}

	if hd.ctx != h.ctx || hd.hid != h.id {
		panic(fmt.Sprintf("member: handle of hierarchy %d used with hierarchy %d", hd.hid, h.id))
	}

	return h.record(hd)
}
