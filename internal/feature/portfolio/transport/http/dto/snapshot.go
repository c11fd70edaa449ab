// Package dto defines data transfer objects for the portfolio HTTP API.
package dto

import "github.com/shopspring/decimal"

// SnapshotItem represents a stored portfolio valuation. Amounts are decimal strings.
type SnapshotItem struct {
	ID         uint64          `json:"id"`
	CreatedAt  string          `json:"created_at"`
	TotalValue decimal.Decimal `json:"total_value"`
	Lines      []LineItem      `json:"lines"`
}

// LineItem represents one line of a snapshot.
type LineItem struct {
	Symbol string          `json:"symbol"`
	Lot    int64           `json:"lot"`
	Price  decimal.Decimal `json:"price"`
	Value  decimal.Decimal `json:"value"`
}
