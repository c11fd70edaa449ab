// Package entity defines the domain models for the symbols feature.
package entity

import "time"

// Symbol is a cataloged equity. Code is exchange-qualified (e.g. "THYAO.IS").
// Name, Sector and MarketCap are whatever the provider reported last, and may be absent.
type Symbol struct {
	Code      string
	Name      *string
	Sector    *string
	MarketCap *int64
	UpdatedAt time.Time
}
