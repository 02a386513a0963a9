package diagnostic

import (
	"context"
	"io"
	"log/slog"
)

// DefaultLimit is the number of diagnostics kept per severity when no limit is given.
const DefaultLimit = 256

// Reporter collects diagnostics and mirrors them into a structured logger.
// Each severity keeps at most limit entries; the oldest are dropped first.
type Reporter struct {
	logger *slog.Logger
	limit  int
	diags  Diagnostics
}

// NewReporter creates a Reporter. A nil logger discards log output.
func NewReporter(logger *slog.Logger, limit int) *Reporter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if limit <= 0 {
		limit = DefaultLimit
	}

	return &Reporter{logger: logger, limit: limit}
}

// Error records an error diagnostic.
func (r *Reporter) Error(code, message, member, target string) {
	r.diags.AddError(code, message, member, target)
	r.diags.Errors = trim(r.diags.Errors, r.limit)
	r.log(slog.LevelError, code, message, member, target)
}

// Warn records a warning diagnostic.
func (r *Reporter) Warn(code, message, member, target string) {
	r.diags.AddWarning(code, message, member, target)
	r.diags.Warnings = trim(r.diags.Warnings, r.limit)
	r.log(slog.LevelWarn, code, message, member, target)
}

// Info records an info diagnostic.
func (r *Reporter) Info(code, message, member, target string) {
	r.diags.AddInfo(code, message, member, target)
	r.diags.Infos = trim(r.diags.Infos, r.limit)
	r.log(slog.LevelInfo, code, message, member, target)
}

// Snapshot returns a copy of the collected diagnostics.
func (r *Reporter) Snapshot() Diagnostics {
	var out Diagnostics
	out.Merge(r.diags)

	return out
}

// Reset drops every collected diagnostic.
func (r *Reporter) Reset() {
	r.diags = Diagnostics{}
}

// Logger returns the logger diagnostics are mirrored into.
func (r *Reporter) Logger() *slog.Logger {
	return r.logger
}

func (r *Reporter) log(level slog.Level, code, message, member, target string) {
	attrs := []slog.Attr{slog.String("code", code)}
	if member != "" {
		attrs = append(attrs, slog.String("member", member))
	}

	if target != "" {
		attrs = append(attrs, slog.String("target", target))
	}

	r.logger.LogAttrs(context.Background(), level, message, attrs...)
}

func trim(list []Diagnostic, limit int) []Diagnostic {
	if len(list) <= limit {
		return list
	}

	return append(list[:0:0], list[len(list)-limit:]...)
}
