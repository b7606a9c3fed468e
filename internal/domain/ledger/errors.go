package ledger

import "errors"

// Sentinel kinds for ledger errors.
var (
	ErrInvalidInput      = errors.New("invalid ledger input")
	ErrNonPositiveAmount = errors.New("earning amount must be positive")
)
