// Package diagnostic provides structured warnings and errors raised while
// resolving member handles, invoking backends and replaying history.
//
// Key capabilities:
//   - Stable codes for every failure class (broken chains, backend failures,
//     conversion failures, stale targets, serialization failures)
//   - A bounded collector that keeps the most recent diagnostics per severity
//   - A slog sink so every diagnostic is also emitted as a structured record
//
// Nothing in this package returns errors to the caller: diagnostics are the
// degraded-path record of operations that completed with a default value.
package diagnostic
