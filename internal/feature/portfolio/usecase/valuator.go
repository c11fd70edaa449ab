// Package usecase implements portfolio valuation and snapshot queries.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"stock_tracker/internal/feature/portfolio/domain/entity"
	"stock_tracker/internal/shared/besteffort"
	"stock_tracker/internal/shared/market"

	"github.com/shopspring/decimal"
)

const opSaveSnapshot = "save_portfolio_snapshot"

// QuoteLookup fetches a quote and catalogs the symbol as a side effect.
type QuoteLookup interface {
	Lookup(ctx context.Context, code string) (market.Quote, bool)
}

// SnapshotRepository stores snapshots together with their lines.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SnapshotRepository interface {
	// Save writes the snapshot and all of its lines atomically and sets s.ID.
	Save(ctx context.Context, s *entity.Snapshot) error
	List(ctx context.Context, limit int) ([]entity.Snapshot, error)
	Get(ctx context.Context, id uint64) (entity.Snapshot, error)
}

// Valuation is the in-memory outcome of Valuate, independent of whether it was persisted.
type Valuation struct {
	Snapshot   entity.Snapshot
	Unresolved []string
	Write      besteffort.Result
}

// Valuator prices holdings and records each valuation as a snapshot.
type Valuator struct {
	quotes QuoteLookup
	repo   SnapshotRepository
	now    func() time.Time
}

// NewValuator creates a Valuator. repo may be nil when the store is unavailable.
func NewValuator(quotes QuoteLookup, repo SnapshotRepository, now func() time.Time) *Valuator {
	if now == nil {
		now = time.Now
	}
	return &Valuator{quotes: quotes, repo: repo, now: now}
}

// Valuate prices every holding in order. Holdings without a price or with a lot
// below one are reported as unresolved and left out of the total. Prices are
// rounded to entity.AmountScale before multiplying, so Total is the exact sum of
// the line values as stored. No snapshot is written when nothing resolved.
func (v *Valuator) Valuate(ctx context.Context, holdings []entity.Holding) Valuation {
	val := Valuation{Snapshot: entity.Snapshot{Total: decimal.Zero}}
	for _, h := range holdings {
		if h.Lot <= 0 {
			slog.WarnContext(ctx, "holding unresolved", "symbol", h.Code, "lot", h.Lot, "reason", "lot must be positive")
			val.Unresolved = append(val.Unresolved, h.Code)
			continue
		}
		q, ok := v.quotes.Lookup(ctx, h.Code)
		if !ok || !q.HasPrice() {
			slog.WarnContext(ctx, "holding unresolved", "symbol", h.Code, "lot", h.Lot)
			val.Unresolved = append(val.Unresolved, h.Code)
			continue
		}
		price := decimal.NewFromFloat(*q.Price).Round(entity.AmountScale)
		if !price.IsPositive() {
			slog.WarnContext(ctx, "holding unresolved", "symbol", h.Code, "lot", h.Lot, "reason", "price rounds to zero")
			val.Unresolved = append(val.Unresolved, h.Code)
			continue
		}
		line := entity.Line{
			Symbol: h.Code,
			Lot:    h.Lot,
			Price:  price,
			Value:  price.Mul(decimal.NewFromInt(h.Lot)),
		}
		val.Snapshot.Lines = append(val.Snapshot.Lines, line)
		val.Snapshot.Total = val.Snapshot.Total.Add(line.Value)
	}
	val.Snapshot.CreatedAt = market.Naive(v.now())
	val.Write = v.save(ctx, &val.Snapshot)
	return val
}

func (v *Valuator) save(ctx context.Context, s *entity.Snapshot) besteffort.Result {
	if len(s.Lines) == 0 {
		return besteffort.Skip(opSaveSnapshot, "", ErrNothingResolved)
	}
	if v.repo == nil {
		return besteffort.Skip(opSaveSnapshot, "", besteffort.ErrStoreUnavailable)
	}
	if err := v.repo.Save(ctx, s); err != nil {
		return besteffort.Fail(opSaveSnapshot, "", err)
	}
	return besteffort.Done(opSaveSnapshot, "", len(s.Lines))
}
