package mileage

import "errors"

// Sentinel kinds for tracking errors.
var (
	ErrNoActiveSession = errors.New("no active tracking session")
)
