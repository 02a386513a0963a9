package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliceHelpers(t *testing.T) {
	t.Parallel()

	assert.True(t, IsEmpty([]int(nil)))
	assert.False(t, IsMultiple([]int{1}))
	assert.True(t, IsMultiple([]int{1, 2}))

	first, ok := First([]string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, "a", first)

	_, ok = First([]string{})
	assert.False(t, ok)

	assert.Equal(t, []int{30, 10}, Pick([]int{10, 20, 30}, []int{2, 0, 7}))
	assert.Equal(t, []any{1, 1, 1}, Repeat[any](1, 3))
	assert.Equal(t, "store", PkgAlias("example.com/x/store"))
	assert.Empty(t, PkgAlias(""))
}

func TestIsInRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value float64
		want  bool
	}{
		{"below", -0.5, false},
		{"low edge", 0, true},
		{"inside", 1.5, true},
		{"high edge", 2, true},
		{"above", 2.1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsInRange(0, tt.value, 2))
		})
	}

	assert.True(t, HasIndex([]int{1, 2}, 1))
	assert.False(t, HasIndex([]int{1, 2}, 2))
	assert.False(t, HasIndex([]int(nil), 0))
}
