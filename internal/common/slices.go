package common

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// IsMultiple returns true if the slice has more than one element.
func IsMultiple[S ~[]E, E any](s S) bool {
	return len(s) > 1
}

// First returns the first element of the slice and true, or the zero value and false if empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// Pick returns the elements of s at the given indexes, in the order of indexes.
// Indexes outside of s are skipped.
func Pick[S ~[]E, E any](s S, indexes []int) S {
	out := make(S, 0, len(indexes))
	for _, i := range indexes {
		if !HasIndex(s, i) {
			continue
		}

		out = append(out, s[i])
	}

	return out
}

// Repeat returns a slice of n copies of v.
func Repeat[E any](v E, n int) []E {
	out := make([]E, n)
	for i := range out {
		out[i] = v
	}

	return out
}
