package common

type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// IsInRange checks if a value is within the specified range, both inclusive.
func IsInRange[T number](lo, value, hi T) bool {
	return lo <= value && value <= hi
}

// HasIndex reports whether i addresses an element of s.
func HasIndex[S ~[]E, E any](s S, i int) bool {
	return IsInRange(0, i, len(s)-1)
}
