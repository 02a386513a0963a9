package member

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
)

var compareAll = cmp.Exporter(func(reflect.Type) bool { return true })

// Equal reports whether two member values are equal. Values are compared
// structurally, unexported fields included, so that pointers to equal data
// are equal and distinct copies of one struct compare equal.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return cmp.Equal(a, b, compareAll)
}
