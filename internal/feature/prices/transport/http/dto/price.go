// Package dto defines data transfer objects for the prices HTTP API.
package dto

// PriceItem represents one stored OHLCV bar in the API response.
// ts is the naive wall clock the bar was stored with.
type PriceItem struct {
	Time   string   `json:"ts"`
	Open   *float64 `json:"open"`
	High   *float64 `json:"high"`
	Low    *float64 `json:"low"`
	Close  *float64 `json:"close"`
	Volume *float64 `json:"volume"`
}
