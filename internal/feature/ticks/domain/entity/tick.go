// Package entity defines the domain models for the ticks feature.
package entity

import "time"

// Tick is one price observation captured during live tracking.
// Time is the capture wall clock; Price and ChangePercent are independently optional.
type Tick struct {
	Symbol        string
	Time          time.Time
	Price         *float64
	ChangePercent *float64
	// SessionID groups the ticks of one tracking session.
	SessionID string
}
