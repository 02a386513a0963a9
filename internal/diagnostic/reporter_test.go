package diagnostic

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporter_CollectsAndLogs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := NewReporter(logger, 0)

	r.Error(CodeBackendInvocation, "getter failed", "Order.Total", "0")
	r.Warn(CodeCastFailure, "string is not int", "Order.Count", "")
	r.Info(CodeUndoReplay, "nothing to replay", "", "")

	snap := r.Snapshot()
	assert.Len(t, snap.Errors, 1)
	assert.Len(t, snap.Warnings, 1)
	assert.Len(t, snap.Infos, 1)
	assert.Equal(t, 3, snap.Count())
	assert.True(t, snap.Has(CodeCastFailure))
	assert.False(t, snap.Has(CodeStaleTarget))
	assert.False(t, snap.IsValid())
	require.Error(t, snap.Error())
	assert.Contains(t, snap.Error().Error(), "[BACKEND_INVOCATION] getter failed")

	out := buf.String()
	assert.Contains(t, out, "code=BACKEND_INVOCATION")
	assert.Contains(t, out, "member=Order.Total")

	r.Reset()
	empty := r.Snapshot()
	assert.Zero(t, empty.Count())
}

func TestReporter_Bounded(t *testing.T) {
	t.Parallel()

	r := NewReporter(nil, 2)
	r.Warn("A", "first", "", "")
	r.Warn("B", "second", "", "")
	r.Warn("C", "third", "", "")

	snap := r.Snapshot()
	require.Len(t, snap.Warnings, 2)
	assert.Equal(t, "B", snap.Warnings[0].Code)
	assert.Equal(t, "C", snap.Warnings[1].Code)
}

func TestDiagnostic_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		diag Diagnostic
		want string
	}{
		{"message only", Diagnostic{Message: "m"}, "m"},
		{"code", Diagnostic{Code: "X", Message: "m"}, "[X] m"},
		{"member and target", Diagnostic{Code: "X", Message: "m", Member: "A.B", Target: "1"}, "[1] A.B: [X] m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.diag.String())
		})
	}

	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(42).String())
}
