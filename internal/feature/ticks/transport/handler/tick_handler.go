// Package handler はticksフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"stock_tracker/internal/feature/ticks/domain/entity"
	"stock_tracker/internal/feature/ticks/transport/http/dto"
	"stock_tracker/internal/shared/besteffort"

	"github.com/gin-gonic/gin"
)

// TicksUsecase は保存済みtickを参照するユースケースインターフェースを定義します。
type TicksUsecase interface {
	GetTicks(ctx context.Context, symbol, session string, limit int) ([]entity.Tick, error)
}

// TickHandler はtickのHTTPリクエストを処理します。
type TickHandler struct {
	uc TicksUsecase
}

// NewTickHandler は新しい TickHandler を作成します。
func NewTickHandler(uc TicksUsecase) *TickHandler {
	return &TickHandler{uc: uc}
}

// GetTicks は銘柄コードを受け取り、記録済みtickを新しい順にJSONで返します。
//
// エンドポイント例:
// GET /ticks/:code?session=<uuid>&limit=100
func (h *TickHandler) GetTicks(c *gin.Context) {
	code := c.Param("code")
	session := c.Query("session")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	ticks, err := h.uc.GetTicks(c.Request.Context(), code, session, limit)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, besteffort.ErrStoreUnavailable) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.TickItem, 0, len(ticks))
	for _, t := range ticks {
		out = append(out, dto.TickItem{
			Time:          t.Time.Format(time.DateTime),
			Price:         t.Price,
			ChangePercent: t.ChangePercent,
			SessionID:     t.SessionID,
		})
	}
	c.JSON(http.StatusOK, out)
}
