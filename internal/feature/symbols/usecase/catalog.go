// Package usecase implements the symbol catalog: provider lookups and idempotent metadata upserts.
package usecase

import (
	"context"
	"log/slog"
	"strings"

	"stock_tracker/internal/feature/symbols/domain/entity"
	"stock_tracker/internal/shared/besteffort"
	"stock_tracker/internal/shared/market"
)

const opUpsertSymbol = "upsert_symbol"

// SymbolRepository abstracts the persistence layer for symbol metadata.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	Upsert(ctx context.Context, s entity.Symbol) error
	List(ctx context.Context) ([]entity.Symbol, error)
}

// QuoteProvider fetches the current quote of a symbol from the market data provider.
type QuoteProvider interface {
	FetchQuote(ctx context.Context, code string) (market.Quote, error)
}

// Catalog keeps the symbols table in sync with what the provider reports.
// A nil repository puts the catalog in degraded mode: lookups still work, writes are skipped.
type Catalog struct {
	repo     SymbolRepository
	provider QuoteProvider
}

// NewCatalog creates a Catalog. repo may be nil when the store is unavailable.
func NewCatalog(repo SymbolRepository, provider QuoteProvider) *Catalog {
	return &Catalog{repo: repo, provider: provider}
}

// UpsertSymbol inserts or overwrites the metadata of code.
// Absent or empty metadata is a no-op so a failed fetch never writes a null-filled row.
func (c *Catalog) UpsertSymbol(ctx context.Context, code string, md *market.Metadata) besteffort.Result {
	code = strings.TrimSpace(code)
	if md.IsEmpty() {
		return besteffort.Skip(opUpsertSymbol, code, ErrNoMetadata)
	}
	if c.repo == nil {
		return besteffort.Skip(opUpsertSymbol, code, besteffort.ErrStoreUnavailable)
	}
	err := c.repo.Upsert(ctx, entity.Symbol{
		Code:      code,
		Name:      md.Name,
		Sector:    md.Sector,
		MarketCap: md.MarketCap,
	})
	if err != nil {
		return besteffort.Fail(opUpsertSymbol, code, err)
	}
	return besteffort.Done(opUpsertSymbol, code, 1)
}

// Lookup fetches the current quote of code and catalogs its metadata as a side effect.
// ok is false when the provider failed; the error is logged here and not returned.
func (c *Catalog) Lookup(ctx context.Context, code string) (q market.Quote, ok bool) {
	q, err := c.provider.FetchQuote(ctx, code)
	if err != nil {
		slog.WarnContext(ctx, "quote fetch failed", "symbol", code, "error", err)
		return market.Quote{Symbol: code}, false
	}
	c.UpsertSymbol(ctx, code, q.Metadata).Log(ctx)
	return q, true
}

// ListSymbols returns the cataloged symbols.
func (c *Catalog) ListSymbols(ctx context.Context) ([]entity.Symbol, error) {
	if c.repo == nil {
		return nil, besteffort.ErrStoreUnavailable
	}
	return c.repo.List(ctx)
}
