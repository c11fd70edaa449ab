// Package router は読み取り専用APIのルーティングを定義します。
package router

import (
	portfoliohandler "stock_tracker/internal/feature/portfolio/transport/handler"
	priceshandler "stock_tracker/internal/feature/prices/transport/handler"
	symbolshandler "stock_tracker/internal/feature/symbols/transport/handler"
	tickshandler "stock_tracker/internal/feature/ticks/transport/handler"
	platformhandler "stock_tracker/internal/platform/http/handler"

	"github.com/gin-gonic/gin"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Health    *platformhandler.HealthHandler
	Symbols   *symbolshandler.SymbolHandler
	Prices    *priceshandler.PriceHandler
	Ticks     *tickshandler.TickHandler
	Snapshots *portfoliohandler.SnapshotHandler
}

// NewRouter は保存済みデータを参照するルートを登録した gin.Engine を返します。
// 書き込み系のエンドポイントは持たない（書き込みはCLIからのみ）。
func NewRouter(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.OPTIONS("/healthz", h.Health.Health)

	// 銘柄カタログ
	r.GET("/symbols", h.Symbols.List)
	// 日足履歴
	r.GET("/prices/:code", h.Prices.GetPrices)
	// ライブ追跡のティック（?session= で1セッションに絞り込み）
	r.GET("/ticks/:code", h.Ticks.GetTicks)

	// ポートフォリオ評価スナップショット
	portfolios := r.Group("/portfolios")
	{
		portfolios.GET("", h.Snapshots.List)
		portfolios.GET("/:id", h.Snapshots.Get)
	}

	return r
}
