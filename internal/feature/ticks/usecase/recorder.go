// Package usecase implements live tick recording and the interactive polling loop.
package usecase

import (
	"context"
	"time"

	"stock_tracker/internal/feature/ticks/domain/entity"
	"stock_tracker/internal/shared/besteffort"
	"stock_tracker/internal/shared/market"

	"github.com/google/uuid"
)

const opRecordTick = "record_tick"

// recordTimeout bounds a single tick write so a slow store delays at most one cycle.
const recordTimeout = 3 * time.Second

// TickRepository abstracts the append-only tick store.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type TickRepository interface {
	Insert(ctx context.Context, t entity.Tick) error
	Find(ctx context.Context, symbol, session string, limit int) ([]entity.Tick, error)
}

// Recorder persists live ticks stamped with the capture-time wall clock.
type Recorder struct {
	repo    TickRepository
	now     func() time.Time
	session string
}

// NewRecorder creates a Recorder bound to a fresh session id.
// repo may be nil when the store is unavailable; now defaults to time.Now.
func NewRecorder(repo TickRepository, now func() time.Time) *Recorder {
	if now == nil {
		now = time.Now
	}
	return &Recorder{repo: repo, now: now, session: uuid.NewString()}
}

// WithSession returns a copy of r that tags ticks with id.
func (r *Recorder) WithSession(id string) *Recorder {
	c := *r
	c.session = id
	return &c
}

// Session returns the session id ticks are tagged with.
func (r *Recorder) Session() string { return r.session }

// RecordTick appends one observation of code. The write is attempted once.
func (r *Recorder) RecordTick(ctx context.Context, code string, price, changePercent *float64) besteffort.Result {
	if r.repo == nil {
		return besteffort.Skip(opRecordTick, code, besteffort.ErrStoreUnavailable)
	}
	ctx, cancel := context.WithTimeout(ctx, recordTimeout)
	defer cancel()

	err := r.repo.Insert(ctx, entity.Tick{
		Symbol:        code,
		Time:          market.Naive(r.now()),
		Price:         price,
		ChangePercent: changePercent,
		SessionID:     r.session,
	})
	if err != nil {
		return besteffort.Fail(opRecordTick, code, err)
	}
	return besteffort.Done(opRecordTick, code, 1)
}
