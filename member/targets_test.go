package member

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type box struct{ N int }

func TestNormalizeTargets(t *testing.T) {
	t.Parallel()

	a, b := &box{N: 1}, &box{N: 1}

	got := normalizeTargets([]any{a, nil, b, a, box{N: 2}, box{N: 2}})
	assert.Equal(t, []any{a, b, box{N: 2}}, got)
	assert.Same(t, a, got[0])
	assert.Same(t, b, got[1])
}

func TestIdentityOf(t *testing.T) {
	t.Parallel()

	a, b := &box{N: 1}, &box{N: 1}

	assert.NotEqual(t, identityOf(a), identityOf(b), "pointers are identified by address")
	assert.Equal(t, identityOf(box{N: 1}), identityOf(box{N: 1}), "values are identified by value")
	assert.NotEqual(t, identityOf(box{N: 1}), identityOf(box{N: 2}))
	assert.Equal(t, "nil", identityOf(nil))
}

func TestSameConcreteType(t *testing.T) {
	t.Parallel()

	assert.False(t, sameConcreteType(nil))
	assert.True(t, sameConcreteType([]any{&box{}, &box{}}))
	assert.False(t, sameConcreteType([]any{&box{}, box{}}))
}

func TestEqual(t *testing.T) {
	t.Parallel()

	type inner struct{ secret []int }

	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(nil, 0))
	assert.True(t, Equal(3, 3))
	assert.False(t, Equal(3, int64(3)))
	assert.True(t, Equal(&box{N: 1}, &box{N: 1}))
	assert.True(t, Equal(inner{secret: []int{1}}, inner{secret: []int{1}}))
	assert.False(t, Equal(inner{secret: []int{1}}, inner{secret: []int{2}}))
}

func TestOwnerKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "broken", OwnerBroken.String())
	assert.Equal(t, "chained", OwnerChained.String())
	assert.Equal(t, "unknown", OwnerKind(42).String())
}
