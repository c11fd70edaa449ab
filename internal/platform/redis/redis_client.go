// Package redis はオプションのRedis接続を提供します。
package redis

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// pingTimeout は接続確認の最大待ち時間です。
const pingTimeout = 2 * time.Second

// Config はRedis接続の設定を保持します。Host が空の場合はキャッシュを使用しません。
type Config struct {
	Host     string
	Port     string
	Password string
}

// LoadConfig は環境変数からRedisの設定を読み込みます。
func LoadConfig() Config {
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}
	return Config{
		Host:     os.Getenv("REDIS_HOST"),
		Port:     port,
		Password: os.Getenv("REDIS_PASSWORD"),
	}
}

// Enabled reports whether a Redis host is configured.
func (c Config) Enabled() bool { return c.Host != "" }

// Addr returns host:port.
func (c Config) Addr() string { return c.Host + ":" + c.Port }

// NewRedisClient connects to Redis. It returns (nil, nil) when Redis is not configured.
func NewRedisClient(cfg Config) (*redis.Client, error) {
	if !cfg.Enabled() {
		slog.Debug("Redis not configured, history cache disabled")
		return nil, nil
	}
	addr := cfg.Addr()

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       0,
	})

	// 接続確認
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
