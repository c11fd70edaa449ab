package usecase_test

import (
	"context"
	"errors"
	"testing"

	"stock_tracker/internal/feature/symbols/domain/entity"
	"stock_tracker/internal/feature/symbols/usecase"
	"stock_tracker/internal/shared/besteffort"
	"stock_tracker/internal/shared/market"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDB = errors.New("database is down")

// mockSymbolRepository はSymbolRepositoryインターフェースのモック実装です。
type mockSymbolRepository struct {
	UpsertFunc  func(ctx context.Context, s entity.Symbol) error
	ListFunc    func(ctx context.Context) ([]entity.Symbol, error)
	UpsertCalls []entity.Symbol
}

func (m *mockSymbolRepository) Upsert(ctx context.Context, s entity.Symbol) error {
	m.UpsertCalls = append(m.UpsertCalls, s)
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, s)
	}
	return nil
}

func (m *mockSymbolRepository) List(ctx context.Context) ([]entity.Symbol, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

// mockQuoteProvider はQuoteProviderのモック実装です。
type mockQuoteProvider struct {
	FetchQuoteFunc func(ctx context.Context, code string) (market.Quote, error)
}

func (m *mockQuoteProvider) FetchQuote(ctx context.Context, code string) (market.Quote, error) {
	return m.FetchQuoteFunc(ctx, code)
}

func TestCatalog_UpsertSymbol(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		repoNil        bool
		metadata       *market.Metadata
		upsertErr      error
		expectedStatus besteffort.Status
		expectedCalls  int
	}{
		{
			name:           "success: metadata is written",
			metadata:       &market.Metadata{Name: market.String("Aselsan"), MarketCap: market.Int(42)},
			expectedStatus: besteffort.StatusOK,
			expectedCalls:  1,
		},
		{
			name:           "skip: nil metadata is a no-op",
			metadata:       nil,
			expectedStatus: besteffort.StatusSkipped,
			expectedCalls:  0,
		},
		{
			name:           "skip: empty metadata is a no-op",
			metadata:       &market.Metadata{},
			expectedStatus: besteffort.StatusSkipped,
			expectedCalls:  0,
		},
		{
			name:           "skip: no store",
			repoNil:        true,
			metadata:       &market.Metadata{Name: market.String("Aselsan")},
			expectedStatus: besteffort.StatusSkipped,
		},
		{
			name:           "failure: repository error is reported, not returned",
			metadata:       &market.Metadata{Name: market.String("Aselsan")},
			upsertErr:      errDB,
			expectedStatus: besteffort.StatusFailed,
			expectedCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &mockSymbolRepository{
				UpsertFunc: func(ctx context.Context, s entity.Symbol) error { return tt.upsertErr },
			}
			var c *usecase.Catalog
			if tt.repoNil {
				c = usecase.NewCatalog(nil, &mockQuoteProvider{})
			} else {
				c = usecase.NewCatalog(repo, &mockQuoteProvider{})
			}

			res := c.UpsertSymbol(context.Background(), "ASELS.IS", tt.metadata)

			assert.Equal(t, tt.expectedStatus, res.Status)
			assert.Equal(t, "ASELS.IS", res.Symbol)
			assert.Len(t, repo.UpsertCalls, tt.expectedCalls)
			if tt.upsertErr != nil {
				assert.ErrorIs(t, res.Err, tt.upsertErr)
			}
		})
	}
}

func TestCatalog_Lookup(t *testing.T) {
	t.Parallel()

	t.Run("success: quote is returned and cataloged", func(t *testing.T) {
		t.Parallel()

		repo := &mockSymbolRepository{}
		provider := &mockQuoteProvider{
			FetchQuoteFunc: func(ctx context.Context, code string) (market.Quote, error) {
				return market.Quote{
					Symbol:   code,
					Metadata: &market.Metadata{Name: market.String("BIM")},
					Price:    market.Float(512.5),
				}, nil
			},
		}
		c := usecase.NewCatalog(repo, provider)

		q, ok := c.Lookup(context.Background(), "BIMAS.IS")

		require.True(t, ok)
		assert.Equal(t, 512.5, *q.Price)
		require.Len(t, repo.UpsertCalls, 1, "lookup must catalog the metadata")
		assert.Equal(t, "BIMAS.IS", repo.UpsertCalls[0].Code)
		assert.Equal(t, "BIM", *repo.UpsertCalls[0].Name)
	})

	t.Run("failure: provider error means no data and no write", func(t *testing.T) {
		t.Parallel()

		repo := &mockSymbolRepository{}
		provider := &mockQuoteProvider{
			FetchQuoteFunc: func(ctx context.Context, code string) (market.Quote, error) {
				return market.Quote{}, errors.New("rate limited")
			},
		}
		c := usecase.NewCatalog(repo, provider)

		q, ok := c.Lookup(context.Background(), "BADSYM")

		assert.False(t, ok)
		assert.False(t, q.HasPrice())
		assert.Empty(t, repo.UpsertCalls)
	})

	t.Run("success: write failure does not affect the lookup", func(t *testing.T) {
		t.Parallel()

		repo := &mockSymbolRepository{
			UpsertFunc: func(ctx context.Context, s entity.Symbol) error { return errDB },
		}
		provider := &mockQuoteProvider{
			FetchQuoteFunc: func(ctx context.Context, code string) (market.Quote, error) {
				return market.Quote{Symbol: code, Metadata: &market.Metadata{Name: market.String("Sasa")}, Price: market.Float(3)}, nil
			},
		}
		c := usecase.NewCatalog(repo, provider)

		q, ok := c.Lookup(context.Background(), "SASA.IS")

		assert.True(t, ok)
		assert.Equal(t, 3.0, *q.Price)
	})
}

func TestCatalog_ListSymbols(t *testing.T) {
	t.Parallel()

	t.Run("failure: no store", func(t *testing.T) {
		t.Parallel()

		c := usecase.NewCatalog(nil, &mockQuoteProvider{})
		_, err := c.ListSymbols(context.Background())
		assert.ErrorIs(t, err, besteffort.ErrStoreUnavailable)
	})

	t.Run("success: delegates to the repository", func(t *testing.T) {
		t.Parallel()

		repo := &mockSymbolRepository{
			ListFunc: func(ctx context.Context) ([]entity.Symbol, error) {
				return []entity.Symbol{{Code: "EREGL.IS"}}, nil
			},
		}
		c := usecase.NewCatalog(repo, &mockQuoteProvider{})
		symbols, err := c.ListSymbols(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []entity.Symbol{{Code: "EREGL.IS"}}, symbols)
	})
}
