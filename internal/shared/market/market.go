// Package market defines the provider-facing value types shared by the features:
// symbol metadata, quotes, OHLCV bars and lookback periods.
//
// The upstream provider has no fixed schema, so every field is optional and
// modelled as a pointer. Accessors return a fallback instead of failing.
package market

import (
	"fmt"
	"time"
)

// Period is a coarse lookback window understood by the provider (e.g. "1y").
type Period string

const (
	PeriodOneDay    Period = "1d"
	PeriodFiveDays  Period = "5d"
	PeriodOneMonth  Period = "1mo"
	PeriodSixMonths Period = "6mo"
	PeriodOneYear   Period = "1y"
	PeriodFiveYears Period = "5y"
	PeriodMax       Period = "max"
)

// Valid reports whether p is one of the supported periods.
func (p Period) Valid() bool {
	switch p {
	case PeriodOneDay, PeriodFiveDays, PeriodOneMonth, PeriodSixMonths, PeriodOneYear, PeriodFiveYears, PeriodMax:
		return true
	}
	return false
}

// Metadata describes a symbol as reported by the provider.
type Metadata struct {
	Name      *string
	Sector    *string
	MarketCap *int64
}

// IsEmpty reports whether m carries no field at all.
func (m *Metadata) IsEmpty() bool {
	return m == nil || (m.Name == nil && m.Sector == nil && m.MarketCap == nil)
}

// Quote is a point-in-time snapshot of a symbol.
type Quote struct {
	Symbol        string
	Metadata      *Metadata
	Price         *float64
	ChangePercent *float64
}

// NameOr returns the display name or def when the provider omitted it.
func (q Quote) NameOr(def string) string {
	if q.Metadata == nil || q.Metadata.Name == nil || *q.Metadata.Name == "" {
		return def
	}
	return *q.Metadata.Name
}

// SectorOr returns the sector or def when the provider omitted it.
func (q Quote) SectorOr(def string) string {
	if q.Metadata == nil || q.Metadata.Sector == nil || *q.Metadata.Sector == "" {
		return def
	}
	return *q.Metadata.Sector
}

// HasPrice reports whether the quote carries a usable price.
func (q Quote) HasPrice() bool {
	return q.Price != nil
}

// FormatPrice renders the price with two decimals or "n/a".
func (q Quote) FormatPrice() string {
	if q.Price == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *q.Price)
}

// FormatChange renders the percent change with an explicit sign or "n/a".
func (q Quote) FormatChange() string {
	if q.ChangePercent == nil {
		return "n/a"
	}
	return fmt.Sprintf("%+.2f%%", *q.ChangePercent)
}

// Bar is one OHLCV observation. Any field may be missing.
type Bar struct {
	Time   time.Time
	Open   *float64
	High   *float64
	Low    *float64
	Close  *float64
	Volume *float64
}

// Naive drops the location of t while keeping its wall clock.
// 2024-01-02T10:00:00+03:00 becomes 2024-01-02 10:00:00 (carried as UTC).
func Naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int64) *int64 { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }
