// Package reducer consumes the ingestion queue and applies events to the
// single state owner.
//
// Exactly one reducer runs per process. Two independent producers feed the
// queue concurrently; funneling them through one consumer is what keeps
// every mutation of the shared collections serialized and in arrival order.
package reducer

import (
	"context"
	"fmt"

	"github.com/gigpulse/gigpulse/internal/adapters/mq/queue"
	"github.com/gigpulse/gigpulse/internal/domain/model"
	"github.com/gigpulse/gigpulse/pkg/logger"
)

// Applier is the state owner's serialized mutation surface for queued
// events.
type Applier interface {
	// ApplyFix folds one location fix into the active tracking session.
	ApplyFix(ctx context.Context, fix model.Fix)

	// ApplyNotification classifies a notification and applies the verdict
	// to the hotspot registry.
	ApplyNotification(ctx context.Context, n model.Notification)
}

// Source defines how the reducer receives events.
type Source interface {
	Dequeue(ctx context.Context) <-chan queue.Event
}

// Reducer is the single consumer of the ingestion queue.
type Reducer struct {
	source  Source
	applier Applier

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// Option applies a configuration option to the Reducer.
type Option func(*Reducer)

// WithLogger sets a custom logger for the reducer.
func WithLogger(l logger.Logger) Option {
	return func(r *Reducer) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a reducer reading from source and applying to applier.
func New(source Source, applier Applier, opts ...Option) *Reducer {
	r := &Reducer{
		source:   source,
		applier:  applier,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("reducer"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run consumes events until ctx is canceled, Shutdown is called, or the
// queue closes. Call in its own goroutine.
func (r *Reducer) Run(ctx context.Context) {
	defer close(r.done)

	events := r.source.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.shutdown:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			r.apply(ctx, event)
		}
	}
}

// Shutdown stops the reducer and waits for the in-flight event to finish.
func (r *Reducer) Shutdown(ctx context.Context) error {
	close(r.shutdown)
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		r.logger.Warn(ctx, "reducer shutdown timed out")
		return fmt.Errorf("reducer shutdown timed out: %w", ctx.Err())
	}
}

func (r *Reducer) apply(ctx context.Context, event queue.Event) {
	switch event.Kind {
	case model.EventFix:
		r.applier.ApplyFix(ctx, event.Fix)
	case model.EventNotification:
		r.applier.ApplyNotification(ctx, event.Notification)
	default:
		r.logger.Warn(ctx, "dropping event of unknown kind", logger.Int("kind", int(event.Kind)))
	}
}
