package hotspot

import "errors"

// Sentinel kinds for registry errors.
var (
	ErrInvalidInput = errors.New("invalid hotspot")
	ErrNotFound     = errors.New("hotspot not found")
)
