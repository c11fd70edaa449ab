// Package dto defines data transfer objects for the ticks HTTP API.
package dto

// TickItem represents one recorded live tick in the API response.
type TickItem struct {
	Time          string   `json:"ts"`
	Price         *float64 `json:"price"`
	ChangePercent *float64 `json:"change_percent"`
	SessionID     string   `json:"session_id"`
}
