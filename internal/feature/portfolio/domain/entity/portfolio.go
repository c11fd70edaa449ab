// Package entity defines the domain models for the portfolio feature.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of decimal places kept for prices and values.
// It matches the decimal(20,4) columns the snapshots are stored in.
const AmountScale = 4

// Holding is one operator-supplied (code, lot) pair.
type Holding struct {
	Code string
	Lot  int64
}

// Line is one resolved holding inside a snapshot. Value = Price × Lot.
type Line struct {
	Symbol string
	Lot    int64
	Price  decimal.Decimal
	Value  decimal.Decimal
}

// Snapshot is an immutable valuation. Total equals the sum of its line values.
type Snapshot struct {
	ID        uint64
	CreatedAt time.Time
	Total     decimal.Decimal
	Lines     []Line
}
