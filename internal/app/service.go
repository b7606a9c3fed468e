// Package app provides the core service owning all mutable state: the
// hotspot registry, the financial ledger, and the tracking session.
//
// A single Service instance is the only writer. The two asynchronous
// producers (location fixes, OS notifications) reach it through the bounded
// queue and its single reducer; direct commands from the HTTP boundary are
// serialized against them by the service mutex. No reference to the owned
// collections ever escapes: reads return copies.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/gigpulse/gigpulse/internal/adapters/mq/queue"
	"github.com/gigpulse/gigpulse/internal/adapters/mq/reducer"
	"github.com/gigpulse/gigpulse/internal/adapters/settings"
	"github.com/gigpulse/gigpulse/internal/domain/classify"
	"github.com/gigpulse/gigpulse/internal/domain/geo"
	"github.com/gigpulse/gigpulse/internal/domain/hotspot"
	"github.com/gigpulse/gigpulse/internal/domain/ledger"
	"github.com/gigpulse/gigpulse/internal/domain/mileage"
	"github.com/gigpulse/gigpulse/internal/domain/model"
	"github.com/gigpulse/gigpulse/pkg/logger"
	"github.com/gigpulse/gigpulse/pkg/metrics"
)

const defaultQueueSize = 4096

// Progress is pushed to the progress sink after every applied fix, so the
// display layer can show live cumulative distance.
type Progress struct {
	Active     bool      `json:"active"`
	Miles      float64   `json:"miles"`
	RecordedAt time.Time `json:"recorded_at"`
}

// TrackingStatus describes the current session for reads.
type TrackingStatus struct {
	Active    bool      `json:"active"`
	Miles     float64   `json:"miles"`
	StartedAt time.Time `json:"started_at,omitzero"`
}

// Service implements the command, ingestion and read surfaces of the core.
type Service struct {
	mu sync.Mutex

	// Owned state
	registry *hotspot.Registry
	ledger   *ledger.Ledger
	tracker  *mileage.Tracker
	values   settings.Values

	// Collaborators
	classifier *classify.Classifier
	store      settings.Store
	eventQueue queue.Queue
	reducer    *reducer.Reducer

	// Configuration
	queueSize      int
	minMoveMeters  float64
	busyPhrases    []string
	platformRoutes map[string]string
	now            func() time.Time
	progressSink   func(Progress)

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithQueueSize bounds the ingestion queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithMinMoveMeters sets the fix movement threshold (0 disables filtering).
func WithMinMoveMeters(m float64) Option {
	return func(s *Service) {
		if m > 0 {
			s.minMoveMeters = m
		}
	}
}

// WithBusyPhrases overrides the classifier lexicon.
func WithBusyPhrases(phrases []string) Option {
	return func(s *Service) {
		if len(phrases) > 0 {
			s.busyPhrases = phrases
		}
	}
}

// WithPlatformRoutes overrides the app-identifier routing table.
func WithPlatformRoutes(routes map[string]string) Option {
	return func(s *Service) {
		if len(routes) > 0 {
			s.platformRoutes = routes
		}
	}
}

// WithSettingsStore sets the durable settings store.
func WithSettingsStore(store settings.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithProgressSink registers a callback invoked after every applied fix.
// The sink must not block; the stream hub's broadcast drops slow clients
// rather than stalling the reducer.
func WithProgressSink(sink func(Progress)) Option {
	return func(s *Service) {
		if sink != nil {
			s.progressSink = sink
		}
	}
}

// WithClock overrides the wall clock, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		queueSize: defaultQueueSize,
		store:     settings.NewMemoryStore(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the owned state, loads settings, and launches the
// reducer goroutine.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("app")
	}

	var classifierOpts []classify.Option
	if len(s.busyPhrases) > 0 {
		classifierOpts = append(classifierOpts, classify.WithBusyPhrases(s.busyPhrases))
	}
	if len(s.platformRoutes) > 0 {
		classifierOpts = append(classifierOpts, classify.WithPlatformRoutes(s.platformRoutes))
	}
	s.classifier = classify.New(classifierOpts...)

	s.registry = hotspot.NewRegistry()
	s.ledger = ledger.New(ledger.WithClock(s.now))
	s.tracker = mileage.New(
		mileage.WithMinMoveMeters(s.minMoveMeters),
		mileage.WithClock(s.now),
	)

	// Settings are read once at startup; a failing store degrades to
	// defaults rather than blocking the core.
	values, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn(ctx, "settings load failed; using defaults", logger.Error(err))
		values = settings.Defaults()
	}
	s.values = values

	s.eventQueue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.reducer = reducer.New(s.eventQueue, s, reducer.WithLogger(s.logger.Named("reducer")))
	go s.reducer.Run(ctx)

	s.started = true
	s.logger.Info(ctx, "service started",
		logger.Int("queueSize", s.queueSize),
		logger.Float64("minMoveMeters", s.minMoveMeters),
		logger.Float64("mpg", s.values.MPG),
		logger.Float64("fuelPrice", s.values.FuelPrice),
	)
	return nil
}

// Stop shuts down the reducer and closes the queue. Queued events are
// dropped; both producers deliver best-effort streams.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	eventQueue := s.eventQueue
	red := s.reducer
	s.mu.Unlock()

	if eventQueue != nil {
		_ = eventQueue.Close()
	}
	if red != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = red.Shutdown(shutdownCtx)
	}
	s.logger.Info(context.Background(), "service stopped")
}

// EnqueueFix submits a location fix for asynchronous processing. Returns
// false on backpressure.
func (s *Service) EnqueueFix(ctx context.Context, fix model.Fix) bool {
	return s.eventQueue.Enqueue(ctx, model.Event{Kind: model.EventFix, Fix: fix})
}

// EnqueueNotification submits a notification event for asynchronous
// processing. Returns false on backpressure.
func (s *Service) EnqueueNotification(ctx context.Context, n model.Notification) bool {
	return s.eventQueue.Enqueue(ctx, model.Event{Kind: model.EventNotification, Notification: n})
}

// ApplyFix folds one fix into the active session. Called only by the
// reducer.
func (s *Service) ApplyFix(ctx context.Context, fix model.Fix) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !geo.ValidCoordinates(fix.Lat, fix.Lng) {
		metrics.RecordErrorByComponent("mileage", "invalid_coordinates")
		s.logger.Warn(ctx, "dropping fix with invalid coordinates",
			logger.Float64("lat", fix.Lat),
			logger.Float64("lng", fix.Lng),
		)
		return
	}

	before := s.tracker.Distance()
	miles, ok := s.tracker.OnFix(fix)
	if !ok {
		metrics.RecordFixDiscarded()
		return
	}
	metrics.RecordFixProcessed()
	metrics.AddMiles(miles - before)

	if s.progressSink != nil {
		s.progressSink(Progress{Active: true, Miles: miles, RecordedAt: fix.RecordedAt})
	}
}

// ApplyNotification classifies a notification and broadcasts the verdict
// to matching hotspots. Called only by the reducer.
func (s *Service) ApplyNotification(ctx context.Context, n model.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	verdict, ok := s.classifier.Classify(n)
	if !ok {
		// Expected steady-state noise from unrelated apps.
		metrics.RecordUnroutable()
		s.logger.Debug(ctx, "unroutable notification", logger.String("sourceApp", n.SourceApp))
		return
	}

	touched := s.registry.ApplyPlatformVerdict(verdict)
	metrics.RecordVerdict(verdict.Platform, verdict.Busy)
	s.logger.Info(ctx, "platform verdict applied",
		logger.String("platform", verdict.Platform),
		logger.Bool("busy", verdict.Busy),
		logger.Int("hotspots", touched),
	)
}

// AddHotspot registers a new hotspot from user submission.
func (s *Service) AddHotspot(h model.Hotspot) (model.Hotspot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added, err := s.registry.Add(h)
	if err != nil {
		return model.Hotspot{}, err
	}
	metrics.UpdateHotspotCount(s.registry.Count())
	return added, nil
}

// SetHotspotBusy toggles a single hotspot's busy-state.
func (s *Service) SetHotspotBusy(id string, busy bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.SetBusy(id, busy)
}

// Hotspots returns the registry contents in insertion order.
func (s *Service) Hotspots() []model.Hotspot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.List()
}

// StartTracking opens a tracking session if none is active and returns the
// session's cumulative miles. Idempotent.
func (s *Service) StartTracking() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	miles := s.tracker.Start()
	metrics.UpdateTrackingActive(true)
	return miles
}

// StopTracking closes the active session into a ledger trip.
func (s *Service) StopTracking() (model.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, err := s.tracker.Stop()
	if err != nil {
		return model.Trip{}, err
	}
	metrics.UpdateTrackingActive(false)

	recorded, err := s.ledger.AddTrip(trip)
	if err != nil {
		return model.Trip{}, err
	}
	metrics.RecordTrip()

	if s.progressSink != nil {
		s.progressSink(Progress{Active: false, Miles: recorded.Miles, RecordedAt: recorded.EndedAt})
	}
	return recorded, nil
}

// Tracking reports the current session state.
func (s *Service) Tracking() TrackingStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return TrackingStatus{
		Active:    s.tracker.Active(),
		Miles:     s.tracker.Distance(),
		StartedAt: s.tracker.StartedAt(),
	}
}

// AddEarning appends a payout record to the ledger.
func (s *Service) AddEarning(e model.Earning) (model.Earning, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recorded, err := s.ledger.AddEarning(e)
	if err != nil {
		metrics.RecordEarningRejected()
		return model.Earning{}, err
	}
	metrics.RecordEarning()
	return recorded, nil
}

// Trips returns the trip collection in insertion order.
func (s *Service) Trips() []model.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Trips()
}

// Earnings returns the earning collection in insertion order.
func (s *Service) Earnings() []model.Earning {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Earnings()
}

// Snapshot derives the financial summary from the ledger and the current
// settings. Recomputed on every call.
func (s *Service) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Snapshot(s.values.MPG, s.values.FuelPrice)
}

// Settings returns the current settings values.
func (s *Service) Settings() settings.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values
}

// UpdateSettings replaces the settings values and persists them
// fire-and-forget; the caller never waits on durability.
func (s *Service) UpdateSettings(ctx context.Context, v settings.Values) {
	s.mu.Lock()
	s.values = v
	store := s.store
	s.mu.Unlock()

	go func() {
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := store.Save(saveCtx, v); err != nil {
			metrics.RecordErrorByComponent("settings", "save_failed")
			s.logger.Warn(saveCtx, "settings save failed", logger.Error(err))
		}
	}()
}

// Stats returns service statistics for monitoring.
func (s *Service) Stats(ctx context.Context) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := map[string]any{
		"started":        s.started,
		"queueSize":      s.queueSize,
		"hotspots":       s.registry.Count(),
		"trips":          len(s.ledger.Trips()),
		"earnings":       len(s.ledger.Earnings()),
		"trackingActive": s.tracker.Active(),
	}
	if s.started {
		stats["queueLength"] = s.eventQueue.Len(ctx)
	}
	return stats
}
