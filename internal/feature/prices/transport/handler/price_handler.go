// Package handler はpricesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"stock_tracker/internal/feature/prices/domain/entity"
	"stock_tracker/internal/feature/prices/transport/http/dto"
	"stock_tracker/internal/shared/besteffort"

	"github.com/gin-gonic/gin"
)

// PricesUsecase は保存済み価格履歴を参照するユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type PricesUsecase interface {
	GetPrices(ctx context.Context, symbol string, limit int) ([]entity.PriceBar, error)
}

// PriceHandler は価格履歴のHTTPリクエストを処理します。
type PriceHandler struct {
	uc PricesUsecase
}

// NewPriceHandler は指定されたusecaseでPriceHandlerの新しいインスタンスを生成します。
func NewPriceHandler(uc PricesUsecase) *PriceHandler {
	return &PriceHandler{uc: uc}
}

// GetPrices は銘柄コードを受け取り、保存済みのOHLCVを新しい順にJSONで返します。
//
// エンドポイント例:
// GET /prices/:code?limit=100
func (h *PriceHandler) GetPrices(c *gin.Context) {
	code := c.Param("code")
	// 不正な値は0扱いとし、usecase側でデフォルトに丸める
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	bars, err := h.uc.GetPrices(c.Request.Context(), code, limit)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, besteffort.ErrStoreUnavailable) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.PriceItem, 0, len(bars))
	for _, b := range bars {
		out = append(out, dto.PriceItem{
			Time:   b.Time.Format(time.DateTime),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		})
	}
	c.JSON(http.StatusOK, out)
}
