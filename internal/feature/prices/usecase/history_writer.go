// Package usecase はOHLCV履歴の取得・永続化・参照のビジネスロジックを実装します。
package usecase

import (
	"context"

	"stock_tracker/internal/feature/prices/domain/entity"
	"stock_tracker/internal/shared/besteffort"
	"stock_tracker/internal/shared/market"
)

const opAppendPriceHistory = "append_price_history"

// PriceRepository abstracts the append-only price history store.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type PriceRepository interface {
	InsertBatch(ctx context.Context, bars []entity.PriceBar) error
	Find(ctx context.Context, symbol string, limit int) ([]entity.PriceBar, error)
}

// HistoryWriter normalizes and bulk-persists OHLCV series.
type HistoryWriter struct {
	repo PriceRepository
}

// NewHistoryWriter creates a HistoryWriter. repo may be nil when the store is unavailable.
func NewHistoryWriter(repo PriceRepository) *HistoryWriter {
	return &HistoryWriter{repo: repo}
}

// AppendPriceHistory stores one row per bar of series for code.
// Timestamps are stored as naive wall clock; missing fields stay null; an empty series is a no-op.
func (w *HistoryWriter) AppendPriceHistory(ctx context.Context, code string, series []market.Bar) besteffort.Result {
	if len(series) == 0 {
		return besteffort.Skip(opAppendPriceHistory, code, nil)
	}
	if w.repo == nil {
		return besteffort.Skip(opAppendPriceHistory, code, besteffort.ErrStoreUnavailable)
	}
	if err := w.repo.InsertBatch(ctx, Normalize(code, series)); err != nil {
		return besteffort.Fail(opAppendPriceHistory, code, err)
	}
	return besteffort.Done(opAppendPriceHistory, code, len(series))
}

// Normalize converts provider bars into rows for code, preserving order.
func Normalize(code string, series []market.Bar) []entity.PriceBar {
	out := make([]entity.PriceBar, 0, len(series))
	for _, b := range series {
		out = append(out, entity.PriceBar{
			Symbol: code,
			Time:   market.Naive(b.Time),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		})
	}
	return out
}
