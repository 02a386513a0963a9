package scenario

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_CountScenario(t *testing.T) {
	t.Parallel()

	s, err := LoadFile("testdata/count.yaml")
	require.NoError(t, err)

	report, err := NewRunner(nil).Run(s)
	require.NoError(t, err)

	assert.Equal(t, "count sync", report.Name)
	assert.Zero(t, report.Failures, spew.Sdump(report.Results))
	require.Len(t, report.Results, len(s.Steps))
	assert.Equal(t, 2, report.UndoEntries)

	assert.Equal(t, "set", report.Results[5].Action)
	assert.Equal(t, "count changed=true", report.Results[5].Detail)
	assert.Equal(t, "count changed=false", report.Results[7].Detail)
	assert.Equal(t, "moved=true position=0", report.Results[8].Detail)
	assert.Equal(t, "position=1 replayed=true", report.Results[14].Detail)
	assert.Equal(t, "disposed=0 replayed=false", report.Results[16].Detail)
}

func TestRunner_ReportsFailedExpectations(t *testing.T) {
	t.Parallel()

	s, err := Parse([]byte(`
name: failing
targets:
  - name: A
    values: {count: 1}
  - name: B
    values: {count: 2}
steps:
  - expect: {member: count, values: [1, 1], mixed: false}
  - expect: {member: count, targets: [A], values: [1], mixed: false}
`))
	require.NoError(t, err)

	report, err := NewRunner(nil).Run(s)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Failures)
	assert.False(t, report.Results[0].OK)
	assert.Equal(t, "values: want [1 1], got [1 2]; mixed: want false, got true", report.Results[0].Message)
	assert.True(t, report.Results[1].OK)
}

func TestRunner_SetValuesPerTarget(t *testing.T) {
	t.Parallel()

	s, err := Parse([]byte(`
targets:
  - name: A
  - name: B
steps:
  - set: {member: size, values: [1, 2]}
  - expect: {member: size, values: [1, 2]}
  - set: {member: size, values: [1, 2, 3]}
`))
	require.NoError(t, err)

	report, err := NewRunner(nil).Run(s)
	require.NoError(t, err)

	assert.Zero(t, report.Failures)
	assert.Equal(t, "size changed=false", report.Results[2].Detail)
	assert.True(t, report.Diagnostics.Has("VALUE_COUNT"))
}

func TestRunner_LogsSteps(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s, err := Parse([]byte(`
targets: [{name: A}]
steps: [{tick: true}]
`))
	require.NoError(t, err)

	_, err = NewRunner(logger).Run(s)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "scenario step")
	assert.Contains(t, buf.String(), "action=tick")
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
		err  error
	}{
		{
			name: "no targets",
			yaml: `steps: [{tick: true}]`,
			err:  ErrNoTargets,
		},
		{
			name: "duplicate target",
			yaml: `targets: [{name: A}, {name: A}]`,
			err:  ErrDuplicate,
		},
		{
			name: "unknown target",
			yaml: `
targets: [{name: A}]
steps: [{poke: {target: B, member: x, value: 1}}]`,
			err: ErrUnknownTarget,
		},
		{
			name: "two actions",
			yaml: `
targets: [{name: A}]
steps: [{undo: true, redo: true}]`,
			err: ErrStepAction,
		},
		{
			name: "no action",
			yaml: `
targets: [{name: A}]
steps: [{}]`,
			err: ErrStepAction,
		},
		{
			name: "no member",
			yaml: `
targets: [{name: A}]
steps: [{expect: {values: [1]}}]`,
			err: ErrNoMember,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, tt.err)
		})
	}

	_, err := Parse([]byte("targets: ["))
	assert.Error(t, err)
}

func TestParse_Config(t *testing.T) {
	t.Parallel()

	s, err := Parse([]byte(`
config:
  undo_capacity: 3
targets: [{name: A}]
`))
	require.NoError(t, err)

	assert.Equal(t, 3, s.Config.UndoCapacity)
	assert.Equal(t, "warn", s.Config.LogLevel)
}
