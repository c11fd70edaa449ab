// Package ratelimiter throttles calls to the market data provider.
package ratelimiter

import (
	"log/slog"
	"sync"
	"time"
)

// RateLimiterInterface は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type RateLimiterInterface interface {
	WaitIfNeeded()
}

// RateLimiter は、interval あたり limit 回まで呼び出しを許可する固定ウィンドウ方式のリミッターです。
type RateLimiter struct {
	mu        sync.Mutex
	limit     int           // interval あたりの上限
	interval  time.Duration // どの単位でリセットするか
	count     int
	lastReset time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
// limit <= 0 disables throttling.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return newRateLimiter(limit, interval, time.Now, time.Sleep)
}

func newRateLimiter(limit int, interval time.Duration, now func() time.Time, sleep func(time.Duration)) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: now(),
		now:       now,
		sleep:     sleep,
	}
}

// WaitIfNeeded はレートリミットの上限に達しているかを確認し、必要であれば待機します。
func (rl *RateLimiter) WaitIfNeeded() {
	if rl.limit <= 0 {
		return
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	// interval を過ぎたらカウントリセット
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}

	rl.count++
	if rl.count > rl.limit {
		wait := rl.interval - now.Sub(rl.lastReset)
		if wait > 0 {
			slog.Info("provider rate limit reached", "limit", rl.limit, "sleep", wait)
			rl.sleep(wait)
		}
		rl.count = 1
		rl.lastReset = rl.now()
	}
}
