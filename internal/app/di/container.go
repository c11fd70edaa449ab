package di

import (
	"log/slog"
	"time"

	"stock_tracker/internal/app/router"
	portfolioadapters "stock_tracker/internal/feature/portfolio/adapters"
	portfoliohandler "stock_tracker/internal/feature/portfolio/transport/handler"
	portfoliousecase "stock_tracker/internal/feature/portfolio/usecase"
	pricesadapters "stock_tracker/internal/feature/prices/adapters"
	priceshandler "stock_tracker/internal/feature/prices/transport/handler"
	pricesusecase "stock_tracker/internal/feature/prices/usecase"
	symbolsadapters "stock_tracker/internal/feature/symbols/adapters"
	symbolshandler "stock_tracker/internal/feature/symbols/transport/handler"
	symbolsusecase "stock_tracker/internal/feature/symbols/usecase"
	ticksadapters "stock_tracker/internal/feature/ticks/adapters"
	tickshandler "stock_tracker/internal/feature/ticks/transport/handler"
	ticksusecase "stock_tracker/internal/feature/ticks/usecase"
	"stock_tracker/internal/platform/cache"
	"stock_tracker/internal/platform/config"
	infradb "stock_tracker/internal/platform/db"
	platformhandler "stock_tracker/internal/platform/http/handler"
	infraredis "stock_tracker/internal/platform/redis"
	"stock_tracker/internal/shared/ratelimiter"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Container holds the wired application. DB is nil in degraded mode and Redis is
// nil when no cache is configured.
type Container struct {
	Config    config.App
	Watchlist config.Watchlist

	DB     *gorm.DB
	Redis  *redis.Client
	Market *cache.CachingMarket

	Catalog  *symbolsusecase.Catalog
	History  *pricesusecase.HistoryUsecase
	Ingest   *pricesusecase.IngestUsecase
	Recorder *ticksusecase.Recorder
	Valuator *portfoliousecase.Valuator

	Prices    *pricesusecase.PricesUsecase
	Ticks     *ticksusecase.TicksUsecase
	Snapshots *portfoliousecase.SnapshotsUsecase
}

// Repositories are interfaces, so a nil store must reach the usecases as an
// untyped nil; otherwise the degraded-mode checks would not fire.
type repositories struct {
	symbols   symbolsusecase.SymbolRepository
	prices    pricesusecase.PriceRepository
	ticks     ticksusecase.TickRepository
	snapshots portfoliousecase.SnapshotRepository
}

func newRepositories(db *gorm.DB) repositories {
	if db == nil {
		return repositories{}
	}
	return repositories{
		symbols:   symbolsadapters.NewSymbolRepository(db),
		prices:    pricesadapters.NewPriceRepository(db),
		ticks:     ticksadapters.NewTickRepository(db),
		snapshots: portfolioadapters.NewSnapshotRepository(db),
	}
}

// New connects the store and the cache and builds every usecase.
// Neither a store nor a cache failure is fatal.
func New(cfg config.App, wl config.Watchlist, dbCfg infradb.Config, redisCfg infraredis.Config) *Container {
	db := infradb.Connect(dbCfg)

	rdb, err := infraredis.NewRedisClient(redisCfg)
	if err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
		rdb = nil
	}

	return build(cfg, wl, db, rdb, NewMarket(rdb))
}

func build(cfg config.App, wl config.Watchlist, db *gorm.DB, rdb *redis.Client, mkt *cache.CachingMarket) *Container {
	repos := newRepositories(db)
	catalog := symbolsusecase.NewCatalog(repos.symbols, mkt)
	writer := pricesusecase.NewHistoryWriter(repos.prices)
	limiter := ratelimiter.NewRateLimiter(cfg.RateLimit, time.Minute)

	return &Container{
		Config:    cfg,
		Watchlist: wl,
		DB:        db,
		Redis:     rdb,
		Market:    mkt,
		Catalog:   catalog,
		History:   pricesusecase.NewHistoryUsecase(mkt, writer),
		Ingest:    pricesusecase.NewIngestUsecase(mkt, writer, limiter),
		Recorder:  ticksusecase.NewRecorder(repos.ticks, time.Now),
		Valuator:  portfoliousecase.NewValuator(catalog, repos.snapshots, time.Now),
		Prices:    pricesusecase.NewPricesUsecase(repos.prices),
		Ticks:     ticksusecase.NewTicksUsecase(repos.ticks),
		Snapshots: portfoliousecase.NewSnapshotsUsecase(repos.snapshots),
	}
}

// Degraded reports whether the process runs without a store.
func (c *Container) Degraded() bool { return c.DB == nil }

// Handlers builds the read API handlers.
func (c *Container) Handlers() router.Handlers {
	var store platformhandler.Pinger
	if c.DB != nil {
		if sqlDB, err := c.DB.DB(); err == nil {
			store = sqlDB
		}
	}
	return router.Handlers{
		Health:    platformhandler.NewHealthHandler(store),
		Symbols:   symbolshandler.NewSymbolHandler(c.Catalog),
		Prices:    priceshandler.NewPriceHandler(c.Prices),
		Ticks:     tickshandler.NewTickHandler(c.Ticks),
		Snapshots: portfoliohandler.NewSnapshotHandler(c.Snapshots),
	}
}

// Close releases the store and cache connections.
func (c *Container) Close() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			slog.Error("Failed to close Redis client", "error", err)
		}
	}
	if c.DB != nil {
		if sqlDB, err := c.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Error("Failed to close database", "error", err)
			}
		}
	}
}
