package usecase

import "errors"

// ErrNoMetadata is reported when the provider returned nothing worth cataloging.
var ErrNoMetadata = errors.New("no metadata")
