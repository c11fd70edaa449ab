// Package di provides dependency injection factories for creating application components.
package di

import (
	"stock_tracker/internal/platform/cache"
	"stock_tracker/internal/platform/externalapi/yahoo"
	infrahttp "stock_tracker/internal/platform/http"

	"github.com/redis/go-redis/v9"
)

// historyNamespace is the Redis key prefix of cached price history.
const historyNamespace = "history"

// NewMarket creates the Yahoo provider wrapped in the history cache.
// With a nil rdb the cache is a passthrough.
func NewMarket(rdb *redis.Client) *cache.CachingMarket {
	cfg := yahoo.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return cache.NewCachingMarket(rdb, 0, yahoo.NewYahooMarket(cfg, httpClient), historyNamespace)
}
