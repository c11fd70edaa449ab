package usecase

import "errors"

var (
	// ErrInvalidHolding is returned for a code:lot entry that cannot be parsed.
	ErrInvalidHolding = errors.New("invalid holding")
	// ErrNothingResolved is the skip reason when no holding could be priced.
	ErrNothingResolved = errors.New("no holding resolved")
	// ErrSnapshotNotFound is returned when a snapshot id does not exist.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)
