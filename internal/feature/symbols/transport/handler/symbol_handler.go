package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"stock_tracker/internal/feature/symbols/domain/entity"
	"stock_tracker/internal/feature/symbols/transport/http/dto"
	"stock_tracker/internal/shared/besteffort"

	"github.com/gin-gonic/gin"
)

// SymbolLister は銘柄一覧を返すユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SymbolLister interface {
	ListSymbols(ctx context.Context) ([]entity.Symbol, error)
}

// SymbolHandler は銘柄情報に関するHTTPリクエストを処理します。
type SymbolHandler struct {
	uc SymbolLister
}

// NewSymbolHandler は新しい SymbolHandler を作成します。
func NewSymbolHandler(uc SymbolLister) *SymbolHandler {
	return &SymbolHandler{uc: uc}
}

// List returns the cataloged symbols.
// 503 when the process runs without a store, 500 on any other failure.
func (h *SymbolHandler) List(c *gin.Context) {
	symbols, err := h.uc.ListSymbols(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, besteffort.ErrStoreUnavailable) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.SymbolItem, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, dto.SymbolItem{
			Code:      s.Code,
			Name:      s.Name,
			Sector:    s.Sector,
			MarketCap: s.MarketCap,
			UpdatedAt: s.UpdatedAt.Format(time.DateTime),
		})
	}
	c.JSON(http.StatusOK, out)
}
