// Package db opens the relational store and provisions its schema.
package db

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	portfolioadapters "stock_tracker/internal/feature/portfolio/adapters"
	priceadapters "stock_tracker/internal/feature/prices/adapters"
	symboladapters "stock_tracker/internal/feature/symbols/adapters"
	tickadapters "stock_tracker/internal/feature/ticks/adapters"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// retryInterval は接続リトライの間隔です。
var retryInterval = 3 * time.Second

// Config holds the connection parameters. Every field has a default so a missing
// variable never prevents startup.
type Config struct {
	Driver       string
	User         string
	Password     string
	Name         string
	Host         string
	Port         string
	InstanceName string
	// Path is the database file for the sqlite driver.
	Path           string
	ConnectTimeout time.Duration
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() Config {
	driver := getEnv("DB_DRIVER", DriverMySQL)
	defaultPort := "3306"
	if driver == DriverPostgres {
		defaultPort = "5432"
	}
	timeout, err := time.ParseDuration(getEnv("DB_CONNECT_TIMEOUT", "5s"))
	if err != nil {
		slog.Warn("invalid DB_CONNECT_TIMEOUT, using default", "error", err)
		timeout = 5 * time.Second
	}
	return Config{
		Driver:         driver,
		User:           getEnv("DB_USER", "root"),
		Password:       os.Getenv("DB_PASSWORD"),
		Name:           getEnv("DB_NAME", "borsa"),
		Host:           getEnv("DB_HOST", "127.0.0.1"),
		Port:           getEnv("DB_PORT", defaultPort),
		InstanceName:   os.Getenv("INSTANCE_CONNECTION_NAME"),
		Path:           getEnv("DB_PATH", "stock.db"),
		ConnectTimeout: timeout,
	}
}

// BuildDSN はMySQL用のDSN文字列を組み立てます。InstanceName が設定されている場合はCloud SQLのUnixソケットを優先します。
// loc=UTC: 時刻はタイムゾーンなしの壁時計として保存するため、ドライバに変換させない。
func BuildDSN(cfg Config) string {
	if cfg.InstanceName != "" {
		return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
			cfg.User, cfg.Password, cfg.InstanceName, cfg.Name)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
}

// BuildPostgresDSN はPostgreSQL用のDSN文字列を組み立てます。
func BuildPostgresDSN(cfg Config) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port)
}

// Dialector returns the gorm dialector for cfg.Driver.
func Dialector(cfg Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverMySQL, "":
		return gmysql.Open(BuildDSN(cfg)), nil
	case DriverPostgres:
		return postgres.Open(BuildPostgresDSN(cfg)), nil
	case DriverSQLite:
		return sqlite.Open(cfg.Path), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

// ConnectWithRetry は opener を繰り返し呼び出し、timeout 以内に接続できなければエラーを返します。
func ConnectWithRetry(dsn string, timeout time.Duration, opener func(dsn string) (*gorm.DB, error)) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "interval", retryInterval)
		time.Sleep(retryInterval)
	}
}

// OpenDB connects using cfg. gorm's own logger is silenced; failures are
// reported to the caller, who decides whether to continue without a store.
func OpenDB(cfg Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	opener := func(string) (*gorm.DB, error) {
		db, err := gorm.Open(dialector, gcfg)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		if err := sqlDB.Ping(); err != nil {
			return nil, err
		}
		return db, nil
	}
	return ConnectWithRetry(cfg.Driver, cfg.ConnectTimeout, opener)
}

// Models lists every persisted record type.
func Models() []any {
	return []any{
		&symboladapters.SymbolModel{},
		&priceadapters.PriceModel{},
		&tickadapters.TickModel{},
		&portfolioadapters.SnapshotModel{},
		&portfolioadapters.LineModel{},
	}
}

// Provision creates missing tables and indexes. It is safe to run on every startup.
func Provision(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Connect opens and provisions the store. On any failure it logs and returns nil,
// which puts the caller in degraded mode.
func Connect(cfg Config) *gorm.DB {
	db, err := OpenDB(cfg)
	if err != nil {
		slog.Error("database unavailable, continuing without persistence", "driver", cfg.Driver, "error", err)
		return nil
	}
	if err := Provision(db); err != nil {
		slog.Error("schema provisioning failed, continuing without persistence", "driver", cfg.Driver, "error", err)
		return nil
	}
	slog.Info("database ready", "driver", cfg.Driver)
	return db
}
