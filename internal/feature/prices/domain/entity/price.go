// Package entity defines the domain models for the prices feature.
package entity

import "time"

// PriceBar is one persisted OHLCV observation.
// Time is naive: the exchange wall clock with the offset stripped.
// Any of the price/volume fields may be absent.
type PriceBar struct {
	Symbol string
	Time   time.Time
	Open   *float64
	High   *float64
	Low    *float64
	Close  *float64
	Volume *float64
}
