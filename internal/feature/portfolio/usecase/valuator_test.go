package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"stock_tracker/internal/feature/portfolio/domain/entity"
	"stock_tracker/internal/shared/besteffort"
	"stock_tracker/internal/shared/market"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockQuoteLookup resolves prices from a fixed table; unknown codes are unresolved.
type mockQuoteLookup struct {
	prices map[string]*float64
	calls  []string
}

func (m *mockQuoteLookup) Lookup(ctx context.Context, code string) (market.Quote, bool) {
	m.calls = append(m.calls, code)
	p, ok := m.prices[code]
	if !ok {
		return market.Quote{Symbol: code}, false
	}
	return market.Quote{Symbol: code, Price: p}, true
}

type mockSnapshotRepository struct {
	SaveFunc func(ctx context.Context, s *entity.Snapshot) error
	saved    []entity.Snapshot
	nextID   uint64
}

func (m *mockSnapshotRepository) Save(ctx context.Context, s *entity.Snapshot) error {
	if m.SaveFunc != nil {
		if err := m.SaveFunc(ctx, s); err != nil {
			return err
		}
	}
	m.nextID++
	s.ID = m.nextID
	m.saved = append(m.saved, *s)
	return nil
}

func (m *mockSnapshotRepository) List(ctx context.Context, limit int) ([]entity.Snapshot, error) {
	return m.saved, nil
}

func (m *mockSnapshotRepository) Get(ctx context.Context, id uint64) (entity.Snapshot, error) {
	for _, s := range m.saved {
		if s.ID == id {
			return s, nil
		}
	}
	return entity.Snapshot{}, ErrSnapshotNotFound
}

var fixedNow = func() time.Time { return time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC) }

func TestValuator_Valuate(t *testing.T) {
	t.Parallel()

	prices := map[string]*float64{
		"THYAO.IS": market.Float(280.5),
		"GARAN.IS": market.Float(0.1),
		"NOPRICE":  nil,
	}

	tests := []struct {
		name               string
		holdings           []entity.Holding
		expectedTotal      string
		expectedLines      []string
		expectedUnresolved []string
		expectedStatus     besteffort.Status
		expectedSaved      int
	}{
		{
			name:           "success: lines in input order and exact total",
			holdings:       []entity.Holding{{Code: "THYAO.IS", Lot: 10}, {Code: "GARAN.IS", Lot: 3}},
			expectedTotal:  "2805.3",
			expectedLines:  []string{"THYAO.IS", "GARAN.IS"},
			expectedStatus: besteffort.StatusOK,
			expectedSaved:  1,
		},
		{
			name:               "unresolved symbol is excluded but the snapshot is still written",
			holdings:           []entity.Holding{{Code: "BADSYM", Lot: 10}, {Code: "THYAO.IS", Lot: 2}},
			expectedTotal:      "561",
			expectedLines:      []string{"THYAO.IS"},
			expectedUnresolved: []string{"BADSYM"},
			expectedStatus:     besteffort.StatusOK,
			expectedSaved:      1,
		},
		{
			name:               "quote without price is unresolved",
			holdings:           []entity.Holding{{Code: "NOPRICE", Lot: 1}},
			expectedTotal:      "0",
			expectedUnresolved: []string{"NOPRICE"},
			expectedStatus:     besteffort.StatusSkipped,
			expectedSaved:      0,
		},
		{
			name:               "only unresolved holdings write nothing",
			holdings:           []entity.Holding{{Code: "BADSYM", Lot: 10}},
			expectedTotal:      "0",
			expectedUnresolved: []string{"BADSYM"},
			expectedStatus:     besteffort.StatusSkipped,
			expectedSaved:      0,
		},
		{
			name:           "empty input writes no snapshot",
			holdings:       []entity.Holding{},
			expectedTotal:  "0",
			expectedStatus: besteffort.StatusSkipped,
			expectedSaved:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			quotes := &mockQuoteLookup{prices: prices}
			repo := &mockSnapshotRepository{}
			v := NewValuator(quotes, repo, fixedNow)

			val := v.Valuate(context.Background(), tt.holdings)

			assert.Equal(t, tt.expectedTotal, val.Snapshot.Total.String())
			var lines []string
			for _, l := range val.Snapshot.Lines {
				lines = append(lines, l.Symbol)
			}
			assert.Equal(t, tt.expectedLines, lines)
			assert.Equal(t, tt.expectedUnresolved, val.Unresolved)
			assert.Equal(t, tt.expectedStatus, val.Write.Status)
			assert.Len(t, repo.saved, tt.expectedSaved)
			assert.Len(t, quotes.calls, len(tt.holdings), "every holding is looked up once")
		})
	}
}

func TestValuator_Valuate_LineValues(t *testing.T) {
	t.Parallel()

	v := NewValuator(&mockQuoteLookup{prices: map[string]*float64{"GARAN.IS": market.Float(0.1)}}, &mockSnapshotRepository{}, fixedNow)
	val := v.Valuate(context.Background(), []entity.Holding{{Code: "GARAN.IS", Lot: 3}})

	require.Len(t, val.Snapshot.Lines, 1)
	l := val.Snapshot.Lines[0]
	assert.Equal(t, int64(3), l.Lot)
	assert.Equal(t, "0.1", l.Price.String())
	assert.Equal(t, "0.3", l.Value.String(), "no binary floating point drift")
	assert.Equal(t, fixedNow(), val.Snapshot.CreatedAt)
}

func TestValuator_Valuate_RoundsToStoredScale(t *testing.T) {
	t.Parallel()

	quotes := &mockQuoteLookup{prices: map[string]*float64{
		"AAA.IS":   market.Float(0.00005),
		"BBB.IS":   market.Float(0.00005),
		"CCC.IS":   market.Float(0.12345),
		"THYAO.IS": market.Float(36.279998779296875),
	}}
	v := NewValuator(quotes, &mockSnapshotRepository{}, fixedNow)

	val := v.Valuate(context.Background(), []entity.Holding{{Code: "AAA.IS", Lot: 1}, {Code: "BBB.IS", Lot: 1}, {Code: "CCC.IS", Lot: 3}, {Code: "THYAO.IS", Lot: 7}})

	require.Len(t, val.Snapshot.Lines, 4)
	sum := decimal.Zero
	for _, l := range val.Snapshot.Lines {
		assert.True(t, l.Price.Equal(l.Price.Round(entity.AmountScale)), "price %s exceeds the stored scale", l.Price)
		assert.True(t, l.Value.Equal(l.Value.Round(entity.AmountScale)), "value %s exceeds the stored scale", l.Value)
		assert.True(t, l.Value.Equal(l.Price.Mul(decimal.NewFromInt(l.Lot))))
		sum = sum.Add(l.Value)
	}
	assert.True(t, val.Snapshot.Total.Equal(sum), "total %s != sum of lines %s", val.Snapshot.Total, sum)
	assert.True(t, val.Snapshot.Total.Equal(val.Snapshot.Total.Round(entity.AmountScale)))
	assert.Equal(t, "0.0001", val.Snapshot.Lines[0].Price.String())
	assert.Equal(t, "36.28", val.Snapshot.Lines[3].Price.String())
	assert.Equal(t, "254.3307", val.Snapshot.Total.String())
}

func TestValuator_Valuate_UnusableHoldings(t *testing.T) {
	t.Parallel()

	quotes := &mockQuoteLookup{prices: map[string]*float64{
		"THYAO.IS": market.Float(280.5),
		"TINY.IS":  market.Float(0.00001),
	}}
	repo := &mockSnapshotRepository{}
	v := NewValuator(quotes, repo, fixedNow)

	val := v.Valuate(context.Background(), []entity.Holding{
		{Code: "THYAO.IS", Lot: 0},
		{Code: "THYAO.IS", Lot: -5},
		{Code: "TINY.IS", Lot: 10},
		{Code: "THYAO.IS", Lot: 2},
	})

	assert.Equal(t, []string{"THYAO.IS", "THYAO.IS", "TINY.IS"}, val.Unresolved)
	require.Len(t, val.Snapshot.Lines, 1)
	assert.Equal(t, int64(2), val.Snapshot.Lines[0].Lot)
	assert.Equal(t, "561", val.Snapshot.Total.String())
	assert.Equal(t, []string{"TINY.IS", "THYAO.IS"}, quotes.calls, "lots below one are rejected before any lookup")
	assert.Equal(t, besteffort.StatusOK, val.Write.Status)
	require.Len(t, repo.saved, 1)
}

func TestValuator_Valuate_TwiceGivesTwoSnapshots(t *testing.T) {
	t.Parallel()

	repo := &mockSnapshotRepository{}
	v := NewValuator(&mockQuoteLookup{prices: map[string]*float64{"THYAO.IS": market.Float(280.5)}}, repo, fixedNow)
	holdings := []entity.Holding{{Code: "THYAO.IS", Lot: 10}}

	first := v.Valuate(context.Background(), holdings)
	second := v.Valuate(context.Background(), holdings)

	require.Len(t, repo.saved, 2)
	assert.NotEqual(t, first.Snapshot.ID, second.Snapshot.ID)
	assert.True(t, first.Snapshot.Total.Equal(second.Snapshot.Total))
	assert.Equal(t, first.Snapshot.Lines, second.Snapshot.Lines)
}

func TestValuator_Valuate_WriteFailures(t *testing.T) {
	t.Parallel()

	quotes := &mockQuoteLookup{prices: map[string]*float64{"THYAO.IS": market.Float(1)}}

	t.Run("store error is reported and the valuation is kept", func(t *testing.T) {
		repo := &mockSnapshotRepository{SaveFunc: func(ctx context.Context, s *entity.Snapshot) error {
			return errors.New("db down")
		}}
		val := NewValuator(quotes, repo, fixedNow).Valuate(context.Background(), []entity.Holding{{Code: "THYAO.IS", Lot: 5}})

		assert.Equal(t, besteffort.StatusFailed, val.Write.Status)
		assert.Equal(t, "5", val.Snapshot.Total.String())
	})

	t.Run("no store", func(t *testing.T) {
		val := NewValuator(quotes, nil, fixedNow).Valuate(context.Background(), []entity.Holding{{Code: "THYAO.IS", Lot: 5}})

		assert.Equal(t, besteffort.StatusSkipped, val.Write.Status)
		assert.ErrorIs(t, val.Write.Err, besteffort.ErrStoreUnavailable)
		assert.Len(t, val.Snapshot.Lines, 1)
	})
}

func TestSnapshotsUsecase(t *testing.T) {
	t.Parallel()

	t.Run("store unavailable", func(t *testing.T) {
		uc := NewSnapshotsUsecase(nil)
		_, err := uc.ListSnapshots(context.Background(), 10)
		assert.ErrorIs(t, err, besteffort.ErrStoreUnavailable)
		_, err = uc.GetSnapshot(context.Background(), 1)
		assert.ErrorIs(t, err, besteffort.ErrStoreUnavailable)
	})

	t.Run("get unknown id", func(t *testing.T) {
		_, err := NewSnapshotsUsecase(&mockSnapshotRepository{}).GetSnapshot(context.Background(), 42)
		assert.ErrorIs(t, err, ErrSnapshotNotFound)
	})
}
