package usecase

import (
	"context"

	"stock_tracker/internal/shared/market"
)

// HistoryProvider fetches an OHLCV series from the market data provider.
type HistoryProvider interface {
	FetchHistory(ctx context.Context, code string, period market.Period) ([]market.Bar, error)
}

// HistoryUsecase fetches a series and persists it before handing it to the caller.
type HistoryUsecase struct {
	market HistoryProvider
	writer *HistoryWriter
}

// NewHistoryUsecase は新しい HistoryUsecase を作成します。
func NewHistoryUsecase(market HistoryProvider, writer *HistoryWriter) *HistoryUsecase {
	return &HistoryUsecase{market: market, writer: writer}
}

// FetchAndStore returns the series of code over period. Provider errors are returned
// so the caller can report "no data"; the persistence outcome is only logged.
func (u *HistoryUsecase) FetchAndStore(ctx context.Context, code string, period market.Period) ([]market.Bar, error) {
	series, err := u.market.FetchHistory(ctx, code, period)
	if err != nil {
		return nil, err
	}
	u.writer.AppendPriceHistory(ctx, code, series).Log(ctx)
	return series, nil
}
