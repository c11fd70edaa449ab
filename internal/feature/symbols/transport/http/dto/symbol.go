// Package dto defines data transfer objects for the symbols HTTP API.
package dto

// SymbolItem represents a cataloged symbol in the API response.
type SymbolItem struct {
	Code      string  `json:"code"`
	Name      *string `json:"name"`
	Sector    *string `json:"sector"`
	MarketCap *int64  `json:"market_cap"`
	UpdatedAt string  `json:"updated_at"`
}
