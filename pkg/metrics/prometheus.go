// Package metrics provides Prometheus metrics for the GigPulse service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Ingestion metrics
	fixesProcessed   prometheus.Counter
	fixesDiscarded   prometheus.Counter
	milesAccumulated prometheus.Counter
	verdictsApplied  *prometheus.CounterVec
	eventsUnroutable prometheus.Counter
	tripsRecorded    prometheus.Counter
	earningsRecorded prometheus.Counter
	earningsRejected prometheus.Counter

	// State gauges
	hotspotCount   prometheus.Gauge
	trackingActive prometheus.Gauge

	// Queue metrics
	queueSize         prometheus.Gauge
	queueCapacity     prometheus.Gauge
	queueUtilization  prometheus.Gauge
	queueEnqueues     prometheus.Counter
	queueDequeues     prometheus.Counter
	queueEnqueueFails prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error tracking
	errorsByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "gigpulse",
		subsystem:        "core",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.fixesProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fixes_processed_total",
		Help:      "Total number of location fixes folded into a tracking session",
	})
	m.fixesDiscarded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fixes_discarded_total",
		Help:      "Total number of location fixes received with no active session",
	})
	m.milesAccumulated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "miles_accumulated_total",
		Help:      "Total miles accumulated across all tracking sessions",
	})
	m.verdictsApplied = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "verdicts_applied_total",
		Help:      "Busy/calm verdicts applied, labeled by platform and verdict",
	}, []string{"platform", "verdict"})
	m.eventsUnroutable = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_unroutable_total",
		Help:      "Notification events that matched no platform route (expected noise)",
	})
	m.tripsRecorded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "trips_recorded_total",
		Help:      "Tracking sessions closed into trips",
	})
	m.earningsRecorded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "earnings_recorded_total",
		Help:      "Earnings accepted into the ledger",
	})
	m.earningsRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "earnings_rejected_total",
		Help:      "Earnings rejected for non-positive amounts or missing fields",
	})

	m.hotspotCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "hotspot_count",
		Help:      "Current number of registered hotspots",
	})
	m.trackingActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tracking_active",
		Help:      "1 while a tracking session is open, 0 otherwise",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_size",
		Help:      "Current number of queued ingestion events",
	})
	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_capacity",
		Help:      "Configured capacity of the ingestion queue",
	})
	m.queueUtilization = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_utilization",
		Help:      "Queue size as a fraction of capacity",
	})
	m.queueEnqueues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_enqueue_total",
		Help:      "Events accepted by the ingestion queue",
	})
	m.queueDequeues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_dequeue_total",
		Help:      "Events handed to the reducer",
	})
	m.queueEnqueueFails = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_enqueue_errors_total",
		Help:      "Enqueue attempts refused (full or closed queue)",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method"})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_total",
		Help:      "Errors by component and reason",
	}, []string{"component", "reason"})
}

// GetRegistry returns the registry backing the global manager, for serving
// via promhttp.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level record helpers delegating to the global manager.

func RecordFixProcessed()    { globalManager.fixesProcessed.Inc() }
func RecordFixDiscarded()    { globalManager.fixesDiscarded.Inc() }
func AddMiles(mi float64)    { globalManager.milesAccumulated.Add(mi) }
func RecordUnroutable()      { globalManager.eventsUnroutable.Inc() }
func RecordTrip()            { globalManager.tripsRecorded.Inc() }
func RecordEarning()         { globalManager.earningsRecorded.Inc() }
func RecordEarningRejected() { globalManager.earningsRejected.Inc() }

// RecordVerdict counts one applied platform verdict.
func RecordVerdict(platform string, busy bool) {
	verdict := "calm"
	if busy {
		verdict = "busy"
	}
	globalManager.verdictsApplied.WithLabelValues(platform, verdict).Inc()
}

func UpdateHotspotCount(n int) { globalManager.hotspotCount.Set(float64(n)) }

func UpdateTrackingActive(active bool) {
	v := 0.0
	if active {
		v = 1.0
	}
	globalManager.trackingActive.Set(v)
}

func UpdateQueueSize(n int)            { globalManager.queueSize.Set(float64(n)) }
func UpdateQueueCapacity(n int)        { globalManager.queueCapacity.Set(float64(n)) }
func UpdateQueueUtilization(f float64) { globalManager.queueUtilization.Set(f) }
func RecordQueueEnqueue()              { globalManager.queueEnqueues.Inc() }
func RecordQueueDequeue()              { globalManager.queueDequeues.Inc() }
func RecordQueueEnqueueError()         { globalManager.queueEnqueueFails.Inc() }

func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func RecordHTTPRequestDuration(endpoint, method string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(ms)
}

func RecordErrorByComponent(component, reason string) {
	globalManager.errorsByComponent.WithLabelValues(component, reason).Inc()
}
