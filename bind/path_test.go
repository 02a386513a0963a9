package bind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected Path
		wantErr  bool
	}{
		{
			input:    "Name",
			expected: Path{Segments: []Segment{{Name: "Name"}}},
		},
		{
			input: "Address.Street",
			expected: Path{Segments: []Segment{
				{Name: "Address"},
				{Name: "Street"},
			}},
		},
		{
			input:    "Items[2]",
			expected: Path{Segments: []Segment{{Name: "Items", Kind: SegmentIndex, Index: 2}}},
		},
		{
			input:    "Items[#]",
			expected: Path{Segments: []Segment{{Name: "Items", Kind: SegmentSize}}},
		},
		{
			input: "Items[0].Name",
			expected: Path{Segments: []Segment{
				{Name: "Items", Kind: SegmentIndex},
				{Name: "Name"},
			}},
		},
		{
			input:    "Attrs[speed]",
			expected: Path{Segments: []Segment{{Name: "Attrs", Kind: SegmentKey, Key: "speed"}}},
		},
		{input: "", wantErr: true},
		{input: ".", wantErr: true},
		{input: "Field.", wantErr: true},
		{input: ".Field", wantErr: true},
		{input: "[2]", wantErr: true},
		{input: "Items[]", wantErr: true},
		{input: "Items[2", wantErr: true},
		{input: "Items[-1]", wantErr: true},
		{input: "Items[[1]]", wantErr: true},
		{input: "Items[#].Name", wantErr: true},
		{input: "123Invalid", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			result, err := ParsePath(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
			assert.Equal(t, tt.input, result.String())
		})
	}
}

func TestPathIsSimple(t *testing.T) {
	t.Parallel()

	simple, err := ParsePath("Name")
	require.NoError(t, err)
	assert.True(t, simple.IsSimple())

	nested, err := ParsePath("Address.Street")
	require.NoError(t, err)
	assert.False(t, nested.IsSimple())

	indexed, err := ParsePath("Items[1]")
	require.NoError(t, err)
	assert.False(t, indexed.IsSimple())
}
