// Package handler はportfolioフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"stock_tracker/internal/feature/portfolio/domain/entity"
	"stock_tracker/internal/feature/portfolio/transport/http/dto"
	"stock_tracker/internal/feature/portfolio/usecase"
	"stock_tracker/internal/shared/besteffort"

	"github.com/gin-gonic/gin"
)

// SnapshotsUsecase は保存済みスナップショット参照のユースケースインターフェースを定義します。
type SnapshotsUsecase interface {
	ListSnapshots(ctx context.Context, limit int) ([]entity.Snapshot, error)
	GetSnapshot(ctx context.Context, id uint64) (entity.Snapshot, error)
}

// SnapshotHandler はポートフォリオスナップショットのHTTPリクエストを処理します。
type SnapshotHandler struct {
	uc SnapshotsUsecase
}

// NewSnapshotHandler は新しい SnapshotHandler を作成します。
func NewSnapshotHandler(uc SnapshotsUsecase) *SnapshotHandler {
	return &SnapshotHandler{uc: uc}
}

// List は新しい順にスナップショットを返します。
//
// エンドポイント例:
// GET /portfolios?limit=20
func (h *SnapshotHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	snaps, err := h.uc.ListSnapshots(c.Request.Context(), limit)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.SnapshotItem, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, toItem(s))
	}
	c.JSON(http.StatusOK, out)
}

// Get は指定IDのスナップショットを明細付きで返します。
//
// エンドポイント例:
// GET /portfolios/:id
func (h *SnapshotHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid snapshot id"})
		return
	}
	s, err := h.uc.GetSnapshot(c.Request.Context(), id)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toItem(s))
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, usecase.ErrSnapshotNotFound):
		return http.StatusNotFound
	case errors.Is(err, besteffort.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func toItem(s entity.Snapshot) dto.SnapshotItem {
	item := dto.SnapshotItem{
		ID:         s.ID,
		CreatedAt:  s.CreatedAt.Format(time.DateTime),
		TotalValue: s.Total,
		Lines:      make([]dto.LineItem, 0, len(s.Lines)),
	}
	for _, l := range s.Lines {
		item.Lines = append(item.Lines, dto.LineItem{
			Symbol: l.Symbol,
			Lot:    l.Lot,
			Price:  l.Price,
			Value:  l.Value,
		})
	}
	return item
}
