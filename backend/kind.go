package backend

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind identifies the backend variant of a member.
type Kind int

const (
	_ Kind = iota // skip zero value, use it as a default (invalid) value for Kind

	KindField
	KindProperty
	KindMethod
	KindIndexer
	KindCollectionElement
	KindCollectionResizer
	KindParameter
	KindGenericTypeArgument

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// IsValid reports whether k is one of the defined kinds.
func (k Kind) IsValid() bool {
	return k > 0 && int(k) < KindTotal
}

// IsUndoable reports whether writes through members of this kind are recorded in history.
// Method results, parameters and generic arguments do not own persistent target state.
func (k Kind) IsUndoable() bool {
	switch k {
	default:
		return false
	case KindField, KindProperty, KindIndexer, KindCollectionElement, KindCollectionResizer:
		return true
	case KindMethod, KindParameter, KindGenericTypeArgument:
		return false
	}
}

// ReplacesOwner reports whether a write through this kind produces a new owner value
// that has to be stored back into the parent, regardless of the owner's semantics.
func (k Kind) ReplacesOwner() bool {
	return k == KindCollectionResizer
}
