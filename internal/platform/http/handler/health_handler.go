// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// pingTimeout はストア疎通確認の最大待ち時間です。
const pingTimeout = time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler は /healthz を処理します。ストアが無い（縮退モード）場合もプロセス自体は正常とみなします。
type HealthHandler struct {
	store Pinger
}

// NewHealthHandler creates a HealthHandler. store may be nil in degraded mode.
func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// HTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
		return
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
		return
	}

	status, store := "ok", "up"
	if h.store == nil {
		status, store = "degraded", "disabled"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()
		if err := h.store.PingContext(ctx); err != nil {
			status, store = "degraded", "down"
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "store": store})
}
