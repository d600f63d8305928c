// Package metrics provides Prometheus metrics for the pitchside
// scoreboard service.
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

	// Board operations
	matchesStarted  prometheus.Counter
	matchesFinished prometheus.Counter
	scoreUpdates    prometheus.Counter
	operationErrors *prometheus.CounterVec
	activeMatches   prometheus.Gauge

	// Live feed
	liveSubscribers prometheus.Gauge
	liveSnapshots   prometheus.Counter
	liveDropped     prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "pitchside",
		subsystem:        "scoreboard",
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

	m.matchesStarted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_started_total",
		Help:      "Total number of matches started",
	})

	m.matchesFinished = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_finished_total",
		Help:      "Total number of matches finished and removed from the board",
	})

	m.scoreUpdates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_updates_total",
		Help:      "Total number of successful score updates",
	})

	m.operationErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "operation_errors_total",
		Help:      "Total number of rejected board operations by error kind",
	}, []string{"operation", "kind"})

	m.activeMatches = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "active_matches",
		Help:      "Current number of matches on the board",
	})

	m.liveSubscribers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "live_subscribers",
		Help:      "Current number of live summary feed subscribers",
	})

	m.liveSnapshots = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "live_snapshots_total",
		Help:      "Total number of summary snapshots broadcast to subscribers",
	})

	m.liveDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "live_snapshots_dropped_total",
		Help:      "Total number of snapshots dropped for slow subscribers",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint, method, and status",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
}

// GetRegistry returns the registry backing the global manager, for
// serving via promhttp.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers recording on the global manager.

// RecordMatchStarted increments the started-matches counter.
func RecordMatchStarted() { globalManager.matchesStarted.Inc() }

// RecordMatchFinished increments the finished-matches counter.
func RecordMatchFinished() { globalManager.matchesFinished.Inc() }

// RecordScoreUpdate increments the score-updates counter.
func RecordScoreUpdate() { globalManager.scoreUpdates.Inc() }

// RecordOperationError counts a rejected board operation.
func RecordOperationError(operation, kind string) {
	globalManager.operationErrors.WithLabelValues(operation, kind).Inc()
}

// UpdateActiveMatches sets the active-matches gauge.
func UpdateActiveMatches(n int) { globalManager.activeMatches.Set(float64(n)) }

// UpdateLiveSubscribers sets the live-subscribers gauge.
func UpdateLiveSubscribers(n int) { globalManager.liveSubscribers.Set(float64(n)) }

// RecordLiveSnapshot counts a snapshot broadcast to one subscriber.
func RecordLiveSnapshot() { globalManager.liveSnapshots.Inc() }

// RecordLiveSnapshotDropped counts a snapshot dropped for a slow subscriber.
func RecordLiveSnapshotDropped() { globalManager.liveDropped.Inc() }

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records an HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}
