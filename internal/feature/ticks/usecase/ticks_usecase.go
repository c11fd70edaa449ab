package usecase

import (
	"context"
	"slices"

	"stock_tracker/internal/feature/ticks/domain/entity"
	"stock_tracker/internal/shared/besteffort"
)

const (
	// DefaultLimit はtickクエリのデフォルト返却件数です。
	DefaultLimit = 500
	// MaxLimit はtickクエリの最大返却件数です。
	MaxLimit = 10000
)

// TicksUsecase は保存済みのtickを参照するユースケースです。
type TicksUsecase struct {
	repo TickRepository
}

// NewTicksUsecase creates a TicksUsecase. repo may be nil when the store is unavailable.
func NewTicksUsecase(repo TickRepository) *TicksUsecase {
	return &TicksUsecase{repo: repo}
}

// GetTicks returns the newest ticks of symbol, optionally for one session only.
func (u *TicksUsecase) GetTicks(ctx context.Context, symbol, session string, limit int) ([]entity.Tick, error) {
	if u.repo == nil {
		return nil, besteffort.ErrStoreUnavailable
	}
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}
	return u.repo.Find(ctx, symbol, session, limit)
}

// ExportTicks returns every stored tick of symbol, oldest first, optionally for one
// session only. Unlike GetTicks it is not capped by MaxLimit.
func (u *TicksUsecase) ExportTicks(ctx context.Context, symbol, session string) ([]entity.Tick, error) {
	if u.repo == nil {
		return nil, besteffort.ErrStoreUnavailable
	}
	ticks, err := u.repo.Find(ctx, symbol, session, 0)
	if err != nil {
		return nil, err
	}
	slices.Reverse(ticks)
	return ticks, nil
}
