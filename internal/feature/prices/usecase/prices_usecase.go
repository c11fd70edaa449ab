package usecase

import (
	"context"
	"slices"

	"stock_tracker/internal/feature/prices/domain/entity"
	"stock_tracker/internal/shared/besteffort"
)

const (
	// DefaultLimit は履歴クエリのデフォルト返却件数です。
	DefaultLimit = 250
	// MaxLimit は履歴クエリの最大返却件数です。
	MaxLimit = 5000
)

// PricesUsecase は保存済みの価格履歴を参照するユースケースです。
type PricesUsecase struct {
	repo PriceRepository
}

// NewPricesUsecase creates a PricesUsecase. repo may be nil when the store is unavailable.
func NewPricesUsecase(repo PriceRepository) *PricesUsecase {
	return &PricesUsecase{repo: repo}
}

// GetPrices returns the newest stored bars of symbol, newest first.
func (u *PricesUsecase) GetPrices(ctx context.Context, symbol string, limit int) ([]entity.PriceBar, error) {
	if u.repo == nil {
		return nil, besteffort.ErrStoreUnavailable
	}
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}
	return u.repo.Find(ctx, symbol, limit)
}

// ExportPrices returns every stored bar of symbol, oldest first. Unlike GetPrices
// it is not capped by MaxLimit.
func (u *PricesUsecase) ExportPrices(ctx context.Context, symbol string) ([]entity.PriceBar, error) {
	if u.repo == nil {
		return nil, besteffort.ErrStoreUnavailable
	}
	bars, err := u.repo.Find(ctx, symbol, 0)
	if err != nil {
		return nil, err
	}
	slices.Reverse(bars)
	return bars, nil
}
