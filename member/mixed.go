package member

// ComputeMixedContent reports whether the targets disagree on the value of hd
// and refreshes the cached state.
func (h *Hierarchy) ComputeMixedContent(hd Handle) bool {
	rec := h.mustRecord(hd)
	if rec == nil {
		return false
	}

	return h.recomputeMixed(rec)
}

// MixedContent returns the cached mixed-content state of hd, recomputing it
// once the configured interval has elapsed.
func (h *Hierarchy) MixedContent(hd Handle) bool {
	rec := h.mustRecord(hd)
	if rec == nil {
		return false
	}

	if rec.mixedValid && h.ctx.now().Sub(rec.mixedAt) < h.ctx.cfg.MixedContentInterval {
		return rec.mixed
	}

	return h.recomputeMixed(rec)
}

func (h *Hierarchy) recomputeMixed(rec *record) bool {
	rec.mixed = h.computeMixed(rec)
	rec.mixedAt = h.ctx.now()
	rec.mixedValid = true

	return rec.mixed
}

// computeMixed compares every target against the first. A target that fails
// to resolve differs from one that resolves.
func (h *Hierarchy) computeMixed(rec *record) bool {
	if rec.static || !h.IsMultiple() || !rec.canReadPure {
		return false
	}

	first, firstErr := h.valueAt(rec, 0)
	for i := 1; i < len(h.targets); i++ {
		v, err := h.valueAt(rec, i)
		if (firstErr == nil) != (err == nil) {
			return true
		}

		if err == nil && !Equal(first, v) {
			return true
		}
	}

	return false
}
