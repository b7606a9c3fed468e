// Package mileage reduces a stream of position fixes into cumulative trip
// distance.
package mileage

import (
	"time"

	"github.com/google/uuid"

	"github.com/gigpulse/gigpulse/internal/domain/geo"
	"github.com/gigpulse/gigpulse/internal/domain/model"
)

// session holds the state of one active tracking session. It is never
// persisted; stopping converts it into a Trip.
type session struct {
	startedAt time.Time
	last      *model.Fix
	miles     float64
}

// Tracker accumulates driven distance for at most one active session.
// Callers must serialize access; the single-writer owner in internal/app
// does so.
type Tracker struct {
	minMoveMeters float64
	now           func() time.Time

	active *session
}

// Option applies a configuration option to the Tracker.
type Option func(*Tracker)

// WithMinMoveMeters sets a minimum movement threshold between fixes. Deltas
// below the threshold are ignored. The default of 0 accumulates every
// delta, including stationary GPS jitter.
func WithMinMoveMeters(m float64) Option {
	return func(t *Tracker) {
		if m > 0 {
			t.minMoveMeters = m
		}
	}
}

// WithClock overrides the wall clock, used by tests for deterministic
// session timestamps.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// New constructs a Tracker with no active session.
func New(opts ...Option) *Tracker {
	t := &Tracker{now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start opens a tracking session if none is active and returns the session's
// cumulative distance. Starting while already active is a no-op, not an
// error.
func (t *Tracker) Start() float64 {
	if t.active != nil {
		return t.active.miles
	}
	t.active = &session{startedAt: t.now()}
	return 0
}

// OnFix folds one position sample into the active session and returns the
// updated cumulative distance. With no active session the fix is discarded
// and ok is false. The first fix of a session establishes the reference
// point without adding distance.
func (t *Tracker) OnFix(fix model.Fix) (miles float64, ok bool) {
	if t.active == nil {
		return 0, false
	}
	if t.active.last == nil {
		t.active.last = &fix
		return t.active.miles, true
	}

	meters := geo.HaversineMeters(t.active.last.Lat, t.active.last.Lng, fix.Lat, fix.Lng)
	if meters >= t.minMoveMeters {
		t.active.miles += geo.MetersToMiles(meters)
	}
	t.active.last = &fix
	return t.active.miles, true
}

// Stop closes the active session into a finalized Trip. Returns
// ErrNoActiveSession when idle; state is unchanged in that case.
func (t *Tracker) Stop() (model.Trip, error) {
	if t.active == nil {
		return model.Trip{}, ErrNoActiveSession
	}

	trip := model.Trip{
		ID:        uuid.NewString(),
		Miles:     t.active.miles,
		StartedAt: t.active.startedAt,
		EndedAt:   t.now(),
	}
	t.active = nil
	return trip, nil
}

// Active reports whether a session is currently open.
func (t *Tracker) Active() bool {
	return t.active != nil
}

// Distance returns the active session's cumulative miles, or 0 when idle.
func (t *Tracker) Distance() float64 {
	if t.active == nil {
		return 0
	}
	return t.active.miles
}

// StartedAt returns the active session's start time; the zero time when
// idle.
func (t *Tracker) StartedAt() time.Time {
	if t.active == nil {
		return time.Time{}
	}
	return t.active.startedAt
}
