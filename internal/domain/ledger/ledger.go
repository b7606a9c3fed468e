// Package ledger keeps the append-only trip and earning collections and
// derives the financial summary from them.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gigpulse/gigpulse/internal/domain/model"
)

// Ledger owns the trip and earning collections. Callers must serialize
// access; the single-writer owner in internal/app does so.
type Ledger struct {
	trips    []model.Trip
	earnings []model.Earning
	now      func() time.Time
}

// Option applies a configuration option to the Ledger.
type Option func(*Ledger)

// WithClock overrides the wall clock used to stamp earnings.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

// New constructs an empty Ledger.
func New(opts ...Option) *Ledger {
	l := &Ledger{now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AddTrip appends a finalized trip. Trips with negative miles or an end
// before the start are rejected.
func (l *Ledger) AddTrip(t model.Trip) (model.Trip, error) {
	if t.Miles < 0 {
		return model.Trip{}, fmt.Errorf("%w: miles must be non-negative", ErrInvalidInput)
	}
	if t.EndedAt.Before(t.StartedAt) {
		return model.Trip{}, fmt.Errorf("%w: trip ends before it starts", ErrInvalidInput)
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	l.trips = append(l.trips, t)
	return t, nil
}

// AddEarning appends a payout record. Non-positive amounts are rejected and
// leave the collection unchanged.
func (l *Ledger) AddEarning(e model.Earning) (model.Earning, error) {
	if e.Amount <= 0 {
		return model.Earning{}, fmt.Errorf("%w: amount must be positive", ErrNonPositiveAmount)
	}
	if strings.TrimSpace(e.Platform) == "" {
		return model.Earning{}, fmt.Errorf("%w: platform must not be empty", ErrInvalidInput)
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.At.IsZero() {
		e.At = l.now()
	}
	l.earnings = append(l.earnings, e)
	return e, nil
}

// Trips returns a copy of the trip collection in insertion order.
func (l *Ledger) Trips() []model.Trip {
	out := make([]model.Trip, len(l.trips))
	copy(out, l.trips)
	return out
}

// Earnings returns a copy of the earning collection in insertion order.
func (l *Ledger) Earnings() []model.Earning {
	out := make([]model.Earning, len(l.earnings))
	copy(out, l.earnings)
	return out
}

// Snapshot derives the financial summary from the full collections. It is
// recomputed on every call so a mutation is always visible to the next
// read; nothing is cached. Fuel cost is defined as 0 when mpg is not
// positive. Miles cover closed trips only; a live session's distance is
// reported by the tracker until it closes into a trip.
func (l *Ledger) Snapshot(mpg, fuelPrice float64) model.Snapshot {
	var gross, miles float64
	for _, e := range l.earnings {
		gross += e.Amount
	}
	for _, t := range l.trips {
		miles += t.Miles
	}

	var fuel float64
	if mpg > 0 {
		fuel = (miles / mpg) * fuelPrice
	}

	return model.Snapshot{
		Gross:    gross,
		Miles:    miles,
		FuelCost: fuel,
		Net:      gross - fuel,
	}
}
