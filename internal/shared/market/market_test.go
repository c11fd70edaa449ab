package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNaive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       time.Time
		expected string
	}{
		{"istanbul offset is stripped", time.Date(2024, 1, 2, 10, 0, 0, 0, time.FixedZone("TRT", 3*3600)), "2024-01-02 10:00:00"},
		{"negative offset", time.Date(2024, 1, 2, 9, 30, 0, 0, time.FixedZone("EST", -5*3600)), "2024-01-02 09:30:00"},
		{"utc unchanged", time.Date(2024, 1, 2, 23, 59, 59, 0, time.UTC), "2024-01-02 23:59:59"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Naive(tt.in)
			assert.Equal(t, tt.expected, got.Format(time.DateTime))
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestPeriod_Valid(t *testing.T) {
	t.Parallel()

	for _, p := range []Period{PeriodOneDay, PeriodFiveDays, PeriodOneMonth, PeriodSixMonths, PeriodOneYear, PeriodFiveYears, PeriodMax} {
		assert.True(t, p.Valid(), p)
	}
	assert.False(t, Period("2w").Valid())
	assert.False(t, Period("").Valid())
}

func TestMetadata_IsEmpty(t *testing.T) {
	t.Parallel()

	var nilMD *Metadata
	assert.True(t, nilMD.IsEmpty())
	assert.True(t, (&Metadata{}).IsEmpty())
	assert.False(t, (&Metadata{MarketCap: Int(1)}).IsEmpty())
}

func TestQuote_Accessors(t *testing.T) {
	t.Parallel()

	empty := Quote{Symbol: "BADSYM"}
	assert.Equal(t, "BADSYM", empty.NameOr("BADSYM"))
	assert.Equal(t, "unknown", empty.SectorOr("unknown"))
	assert.False(t, empty.HasPrice())
	assert.Equal(t, "n/a", empty.FormatPrice())
	assert.Equal(t, "n/a", empty.FormatChange())

	full := Quote{
		Symbol:        "THYAO.IS",
		Metadata:      &Metadata{Name: String("THY"), Sector: String("Industrials")},
		Price:         Float(280.456),
		ChangePercent: Float(-1.234),
	}
	assert.Equal(t, "THY", full.NameOr("x"))
	assert.Equal(t, "Industrials", full.SectorOr("x"))
	assert.Equal(t, "280.46", full.FormatPrice())
	assert.Equal(t, "-1.23%", full.FormatChange())
	assert.Equal(t, "+2.00%", Quote{ChangePercent: Float(2)}.FormatChange())
	assert.Equal(t, "x", Quote{Metadata: &Metadata{Name: String("")}}.NameOr("x"), "blank name is absent")
}
