package member

import (
	"fmt"
	"reflect"
	"strings"

	"memberlink/internal/common"
)

// identityOf returns the identity key of a target. Reference targets are
// identified by address, value targets by type and value.
func identityOf(target any) string {
	if target == nil {
		return "nil"
	}

	rv := reflect.ValueOf(target)
	if isReference(target) {
		return fmt.Sprintf("%s@%x", rv.Type(), rv.Pointer())
	}

	return fmt.Sprintf("%s=%#v", rv.Type(), target)
}

// isReference reports whether writes through target are visible to every holder of it.
func isReference(target any) bool {
	if target == nil {
		return false
	}

	switch reflect.TypeOf(target).Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

// normalizeTargets drops nil targets and duplicates, keeping the first occurrence.
func normalizeTargets(targets []any) []any {
	seen := make(map[string]struct{}, len(targets))
	out := make([]any, 0, len(targets))

	for _, t := range targets {
		if t == nil {
			continue
		}

		id := identityOf(t)
		if _, dup := seen[id]; dup {
			continue
		}

		seen[id] = struct{}{}
		out = append(out, t)
	}

	return out
}

// targetSetKey returns the cache key of a normalized target set.
func targetSetKey(targets []any) string {
	ids := make([]string, len(targets))
	for i, t := range targets {
		ids[i] = identityOf(t)
	}

	return strings.Join(ids, "\x00")
}

// sameConcreteType reports whether all targets share one dynamic type.
func sameConcreteType(targets []any) bool {
	if len(targets) == 0 {
		return false
	}

	first := reflect.TypeOf(targets[0])
	for _, t := range targets[1:] {
		if reflect.TypeOf(t) != first {
			return false
		}
	}

	return true
}

func targetLabel(targets []any, i int) string {
	if !common.HasIndex(targets, i) {
		return ""
	}

	return fmt.Sprintf("%d:%T", i, targets[i])
}
