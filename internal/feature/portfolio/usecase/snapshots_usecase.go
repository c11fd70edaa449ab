package usecase

import (
	"context"

	"stock_tracker/internal/feature/portfolio/domain/entity"
	"stock_tracker/internal/shared/besteffort"
)

// DefaultLimit はスナップショット一覧のデフォルト返却件数です。
const DefaultLimit = 50

// SnapshotsUsecase は保存済みスナップショットを参照するユースケースです。
type SnapshotsUsecase struct {
	repo SnapshotRepository
}

// NewSnapshotsUsecase creates a SnapshotsUsecase. repo may be nil when the store is unavailable.
func NewSnapshotsUsecase(repo SnapshotRepository) *SnapshotsUsecase {
	return &SnapshotsUsecase{repo: repo}
}

// ListSnapshots returns the newest snapshots first, with their lines.
func (u *SnapshotsUsecase) ListSnapshots(ctx context.Context, limit int) ([]entity.Snapshot, error) {
	if u.repo == nil {
		return nil, besteffort.ErrStoreUnavailable
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return u.repo.List(ctx, limit)
}

// GetSnapshot returns one snapshot with its lines or ErrSnapshotNotFound.
func (u *SnapshotsUsecase) GetSnapshot(ctx context.Context, id uint64) (entity.Snapshot, error) {
	if u.repo == nil {
		return entity.Snapshot{}, besteffort.ErrStoreUnavailable
	}
	return u.repo.Get(ctx, id)
}
