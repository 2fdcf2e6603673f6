package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Window metrics
	WindowsActive  prometheus.Gauge
	WindowsCreated prometheus.Counter
	WindowsClosed  prometheus.Counter

	// Desktop state metrics
	StateSaves     prometheus.Counter
	StateLoads     prometheus.Counter
	SaveConflicts  prometheus.Counter
	StateResets    prometheus.Counter
	WindowsFlushed prometheus.Counter

	// Cache metrics
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
	CacheErrors prometheus.Counter

	// Storage metrics
	StorageCalls    *prometheus.CounterVec
	StorageDuration *prometheus.HistogramVec
	StorageErrors   *prometheus.CounterVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	registry *prometheus.Registry

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot

	mu sync.RWMutex
}

// MetricsSnapshot holds current metric values for JSON API
type MetricsSnapshot struct {
	TotalRequests     int64
	TotalErrors       int64
	ActiveWindows     int64
	ActiveConnections int64
	TotalDuration     float64 // sum of all request durations
	RequestCount      int64   // count for averaging
}

// NewMetrics creates a new metrics collector with its own registry,
// so independent server instances never collide on registration.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &Metrics{
		startTime: time.Now(),
		registry:  registry,

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webdesk_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webdesk_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webdesk_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),

		// Window metrics
		WindowsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "webdesk_windows_active",
				Help: "Number of open windows across live sessions",
			},
		),
		WindowsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "webdesk_windows_created_total",
				Help: "Total number of windows launched",
			},
		),
		WindowsClosed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "webdesk_windows_closed_total",
				Help: "Total number of windows closed",
			},
		),

		// Desktop state metrics
		StateSaves: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "webdesk_state_saves_total",
				Help: "Total number of desktop state saves",
			},
		),
		StateLoads: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "webdesk_state_loads_total",
				Help: "Total number of desktop state loads",
			},
		),
		SaveConflicts: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "webdesk_save_conflicts_total",
				Help: "Total number of saves rejected by version conflict",
			},
		),
		StateResets: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "webdesk_state_resets_total",
				Help: "Total number of desktop resets",
			},
		),
		WindowsFlushed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "webdesk_windows_flushed_total",
				Help: "Total number of windows persisted via bulk upsert",
			},
		),

		// Cache metrics
		CacheHits: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "webdesk_cache_hits_total",
				Help: "Total number of snapshot cache hits",
			},
		),
		CacheMisses: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "webdesk_cache_misses_total",
				Help: "Total number of snapshot cache misses",
			},
		),
		CacheErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "webdesk_cache_errors_total",
				Help: "Total number of swallowed cache errors",
			},
		),

		// Storage metrics
		StorageCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_storage_calls_total",
				Help: "Total number of storage calls",
			},
			[]string{"operation", "status"},
		),
		StorageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webdesk_storage_duration_seconds",
				Help:    "Storage call duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"operation"},
		),
		StorageErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_storage_errors_total",
				Help: "Total number of storage errors",
			},
			[]string{"operation", "error_type"},
		),

		// WebSocket metrics
		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "webdesk_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),

		// System metrics
		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "webdesk_uptime_seconds",
				Help: "Backend uptime in seconds",
			},
		),
	}

	// Start uptime updater
	go m.updateUptime()

	return m
}

// Registry returns the metrics' backing registry for exposition.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// updateUptime continuously updates the uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	// Update snapshot
	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	m.snapshot.RequestCount++
	if status[0] == '4' || status[0] == '5' {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordStorageCall records a storage call
func (m *Metrics) RecordStorageCall(operation, status string, duration time.Duration) {
	m.StorageCalls.WithLabelValues(operation, status).Inc()
	m.StorageDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordStorageError records a storage error
func (m *Metrics) RecordStorageError(operation, errorType string) {
	m.StorageErrors.WithLabelValues(operation, errorType).Inc()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// SetWindowsActive sets the number of open windows
func (m *Metrics) SetWindowsActive(count int) {
	m.WindowsActive.Set(float64(count))
	m.mu.Lock()
	m.snapshot.ActiveWindows = int64(count)
	m.mu.Unlock()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.ActiveConnections++
	m.mu.Unlock()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.ActiveConnections--
	m.mu.Unlock()
}

// Snapshot returns a copy of the current counter snapshot
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}
