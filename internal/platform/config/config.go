// Package config はアプリケーション全体の設定（環境変数・.env・ウォッチリスト）を読み込みます。
package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultCurrency  = "TRY"
	defaultHTTPAddr  = ":8080"
	defaultRateLimit = 30 // calls per minute
	defaultLogLevel  = "info"
)

// App holds the settings that are not owned by a single adapter.
// DB, Redis and provider settings are loaded by their own packages.
type App struct {
	Currency      string
	HTTPAddr      string
	RateLimit     int
	LogLevel      string
	WatchlistFile string
}

// LoadDotEnv loads path into the process environment. Existing variables win.
// A missing file is not an error: the system environment is used as is.
func LoadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug(".env not found; using system environment variables", "path", path)
			return
		}
		slog.Warn("failed to load .env", "path", path, "error", err)
	}
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// Load reads App from the environment.
func Load() App {
	cfg := App{
		Currency:      strings.ToUpper(getEnv("CURRENCY", defaultCurrency)),
		HTTPAddr:      getEnv("HTTP_ADDR", defaultHTTPAddr),
		RateLimit:     defaultRateLimit,
		LogLevel:      getEnv("LOG_LEVEL", defaultLogLevel),
		WatchlistFile: os.Getenv("WATCHLIST_FILE"),
	}
	if v := os.Getenv("PROVIDER_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			slog.Warn("invalid PROVIDER_RATE_LIMIT, using default", "value", v, "default", defaultRateLimit)
		} else {
			cfg.RateLimit = n
		}
	}
	return cfg
}
