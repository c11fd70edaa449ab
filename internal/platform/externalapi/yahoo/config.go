// Package yahoo はYahoo Finance公開エンドポイントのクライアントを提供します。
package yahoo

import (
	"log/slog"
	"os"
	"time"
)

const (
	defaultBaseURL   = "https://query1.finance.yahoo.com"
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "Mozilla/5.0 (compatible; stock-tracker/1.0)"
)

// Config はYahoo Financeクライアントの設定を保持します。
type Config struct {
	BaseURL   string        // APIのベースURL（例: "https://query1.finance.yahoo.com"）
	Timeout   time.Duration // HTTPリクエストタイムアウト
	UserAgent string        // User-Agentヘッダーが無いとリクエストが拒否される
}

// LoadConfig は環境変数からYahoo Financeの設定を読み込みます。
func LoadConfig() Config {
	cfg := Config{
		BaseURL:   os.Getenv("YAHOO_BASE_URL"),
		Timeout:   defaultTimeout,
		UserAgent: defaultUserAgent,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if v := os.Getenv("MARKET_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid MARKET_TIMEOUT, using default", "value", v, "error", err)
		} else {
			cfg.Timeout = d
		}
	}
	return cfg
}
