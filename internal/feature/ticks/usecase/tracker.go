package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"stock_tracker/internal/shared/besteffort"
	"stock_tracker/internal/shared/market"
)

const (
	// CyclesPerMinute is the number of polling cycles per requested minute.
	CyclesPerMinute = 12
	// Cadence is the fixed delay between the starts of two polling cycles.
	Cadence = 5 * time.Second
	// StopToken ends a tracking session when entered at the prompt (case-insensitive).
	StopToken = "q"
)

// ErrTrackerStopped is returned when Run is called on a tracker that already stopped.
var ErrTrackerStopped = errors.New("tracker already stopped")

// State is the phase of a tracking session.
type State int

const (
	StatePolling State = iota
	StateAwaitingUserDecision
	StateStopped
)

func (s State) String() string {
	switch s {
	case StatePolling:
		return "polling"
	case StateAwaitingUserDecision:
		return "awaiting_user_decision"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// StopReason tells why a session ended.
type StopReason string

const (
	ReasonOperator    StopReason = "stopped by operator"
	ReasonBudget      StopReason = "duration elapsed"
	ReasonInterrupted StopReason = "interrupted"
	ReasonInputClosed StopReason = "input closed"
)

// QuoteFetcher fetches the current quote of a symbol.
type QuoteFetcher interface {
	FetchQuote(ctx context.Context, code string) (market.Quote, error)
}

// TickRecorder persists one observation per cycle.
type TickRecorder interface {
	RecordTick(ctx context.Context, code string, price, changePercent *float64) besteffort.Result
}

// LineReader blocks until the operator enters a line. It returns io.EOF when input is closed
// and the context error when ctx is done.
type LineReader interface {
	ReadLine(ctx context.Context) (string, error)
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Summary reports how a session ended.
type Summary struct {
	Code     string
	Cycles   int
	Recorded int
	Reason   StopReason
}

// Tracker is a single-use live tracking session: Polling → AwaitingUserDecision → (Polling | Stopped).
// Once stopped it cannot be resumed; create a new Tracker for a new session.
type Tracker struct {
	quotes   QuoteFetcher
	recorder TickRecorder
	input    LineReader
	out      io.Writer
	now      func() time.Time
	sleep    Sleeper
	state    State
}

// Option customizes a Tracker.
type Option func(*Tracker)

// WithClock replaces the wall clock used for display and cadence.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithSleeper replaces the inter-cycle delay.
func WithSleeper(s Sleeper) Option {
	return func(t *Tracker) { t.sleep = s }
}

// NewTracker creates a Tracker in the Polling state.
func NewTracker(quotes QuoteFetcher, recorder TickRecorder, input LineReader, out io.Writer, opts ...Option) *Tracker {
	t := &Tracker{
		quotes:   quotes,
		recorder: recorder,
		input:    input,
		out:      out,
		now:      time.Now,
		sleep:    SleepContext,
		state:    StatePolling,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// State returns the current phase.
func (t *Tracker) State() State { return t.state }

// Run polls code every Cadence for at most minutes×CyclesPerMinute cycles.
// Fetch failures and write failures never end the session.
func (t *Tracker) Run(ctx context.Context, code string, minutes int) (Summary, error) {
	if t.state == StateStopped {
		return Summary{Code: code}, ErrTrackerStopped
	}
	sum := Summary{Code: code}
	budget := minutes * CyclesPerMinute

	fmt.Fprintf(t.out, "%s live tracking (enter %q to stop)\n", code, StopToken)
	for cycle := 0; cycle < budget; cycle++ {
		if ctx.Err() != nil {
			return t.stop(sum, ReasonInterrupted), nil
		}
		start := t.now()
		sum.Cycles++

		q, err := t.quotes.FetchQuote(ctx, code)
		fetched := err == nil
		if fetched {
			fmt.Fprintf(t.out, "[%s] %s: %s (%s)\n", start.Format(time.TimeOnly), code, q.FormatPrice(), q.FormatChange())
		} else {
			slog.WarnContext(ctx, "live quote fetch failed", "symbol", code, "cycle", sum.Cycles, "error", err)
			fmt.Fprintf(t.out, "[%s] %s: no data\n", start.Format(time.TimeOnly), code)
		}

		t.state = StateAwaitingUserDecision
		fmt.Fprintf(t.out, "Enter %q to stop, Enter to continue.\n", StopToken)
		answer, err := t.input.ReadLine(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return t.stop(sum, ReasonInputClosed), nil
			}
			return t.stop(sum, ReasonInterrupted), nil
		}
		if IsStopToken(answer) {
			return t.stop(sum, ReasonOperator), nil
		}
		t.state = StatePolling

		if fetched {
			res := t.recorder.RecordTick(ctx, code, q.Price, q.ChangePercent)
			res.Log(ctx)
			if res.OK() {
				sum.Recorded++
			}
		}

		if cycle == budget-1 {
			break
		}
		if wait := Cadence - t.now().Sub(start); wait > 0 {
			if err := t.sleep(ctx, wait); err != nil {
				return t.stop(sum, ReasonInterrupted), nil
			}
		}
	}
	return t.stop(sum, ReasonBudget), nil
}

func (t *Tracker) stop(sum Summary, reason StopReason) Summary {
	t.state = StateStopped
	sum.Reason = reason
	fmt.Fprintf(t.out, "Tracking ended: %s (%d cycles, %d ticks recorded)\n", reason, sum.Cycles, sum.Recorded)
	return sum
}

// IsStopToken reports whether answer asks to stop tracking.
func IsStopToken(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), StopToken)
}

// SleepContext waits for d or until ctx is done.
func SleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
