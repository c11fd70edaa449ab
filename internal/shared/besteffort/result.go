// Package besteffort describes the outcome of a persistence attempt whose failure
// must never abort the caller's larger operation.
package besteffort

import (
	"context"
	"errors"
	"log/slog"
)

// ErrStoreUnavailable is reported when the process runs without a database.
var ErrStoreUnavailable = errors.New("store unavailable")

// Status is the outcome class of a write.
type Status int

const (
	StatusOK Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is returned by every best-effort write.
type Result struct {
	Op     string
	Symbol string
	Status Status
	Rows   int
	Err    error
}

// Done reports a successful write of rows records.
func Done(op, symbol string, rows int) Result {
	return Result{Op: op, Symbol: symbol, Status: StatusOK, Rows: rows}
}

// Skip reports a write that was not attempted. reason may be nil.
func Skip(op, symbol string, reason error) Result {
	return Result{Op: op, Symbol: symbol, Status: StatusSkipped, Err: reason}
}

// Fail reports a write that was attempted and failed.
func Fail(op, symbol string, err error) Result {
	return Result{Op: op, Symbol: symbol, Status: StatusFailed, Err: err}
}

// OK reports whether the write reached the store.
func (r Result) OK() bool { return r.Status == StatusOK }

// Failed reports whether the write was attempted and failed.
func (r Result) Failed() bool { return r.Status == StatusFailed }

// Log writes the result to the default logger. Failures are errors, skips are debug noise.
func (r Result) Log(ctx context.Context) {
	attrs := []any{"op", r.Op, "symbol", r.Symbol, "status", r.Status.String()}
	switch r.Status {
	case StatusFailed:
		slog.ErrorContext(ctx, "best-effort write failed", append(attrs, "error", r.Err)...)
	case StatusSkipped:
		if r.Err != nil {
			attrs = append(attrs, "reason", r.Err)
		}
		slog.DebugContext(ctx, "best-effort write skipped", attrs...)
	default:
		slog.DebugContext(ctx, "best-effort write done", append(attrs, "rows", r.Rows)...)
	}
}
