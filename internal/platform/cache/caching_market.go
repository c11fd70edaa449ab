// Package cache provides caching decorators for the market data provider.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_tracker/internal/shared/market"
)

// MarketProvider is the provider surface the decorator wraps.
type MarketProvider interface {
	FetchHistory(ctx context.Context, code string, period market.Period) ([]market.Bar, error)
	FetchQuote(ctx context.Context, code string) (market.Quote, error)
}

// CachingMarket decorates a MarketProvider with a Redis cache for daily history.
// Quotes are live and always pass through.
type CachingMarket struct {
	inner     MarketProvider
	rdb       *redis.Client
	ttl       func() time.Duration
	namespace string
}

var _ MarketProvider = (*CachingMarket)(nil)

// NewCachingMarket decorates inner with Redis caching.
// If ttl is 0, entries live until the next market open. If namespace is empty, it uses "history".
// A nil rdb turns the decorator into a passthrough.
func NewCachingMarket(rdb *redis.Client, ttl time.Duration, inner MarketProvider, namespace string) *CachingMarket {
	ttlFn := TimeUntilNextOpen
	if ttl > 0 {
		ttlFn = func() time.Duration { return ttl }
	}
	if namespace == "" {
		namespace = "history"
	}
	return &CachingMarket{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttlFn,
		namespace: namespace,
	}
}

// FetchHistory returns the cached series when present, otherwise asks the provider
// and caches a non-empty answer.
func (c *CachingMarket) FetchHistory(ctx context.Context, code string, period market.Period) ([]market.Bar, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FetchHistory(ctx, code, period)
	}

	key := c.cacheKey(code, period)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []market.Bar
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to provider
	out, err := c.inner.FetchHistory(ctx, code, period)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort); empty answers are not cached
	if len(out) > 0 {
		if b, err := json.Marshal(out); err == nil {
			_ = c.rdb.Set(ctx, key, b, c.ttl()).Err()
		}
	}
	return out, nil
}

// FetchQuote always asks the provider.
func (c *CachingMarket) FetchQuote(ctx context.Context, code string) (market.Quote, error) {
	return c.inner.FetchQuote(ctx, code)
}

// Invalidate drops every cached period of code.
func (c *CachingMarket) Invalidate(ctx context.Context, code string) error {
	if c.rdb == nil {
		return nil
	}
	return c.deleteByPattern(ctx, c.cacheKeyPrefix(code)+"*")
}

// cacheKey generates a cache key for a specific query.
func (c *CachingMarket) cacheKey(code string, period market.Period) string {
	return fmt.Sprintf("%s:%s:%s", c.namespace, safe(code), safe(string(period)))
}

// cacheKeyPrefix generates a prefix for invalidating related cache entries.
func (c *CachingMarket) cacheKeyPrefix(code string) string {
	return fmt.Sprintf("%s:%s:", c.namespace, safe(code))
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingMarket) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
