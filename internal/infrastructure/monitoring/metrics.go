package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "appcopro"

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Build metrics
	BuildsStarted  prometheus.Counter
	BuildsFinished *prometheus.CounterVec
	BuildDuration  prometheus.Histogram
	BuildsActive   prometheus.Gauge
	Workspaces     prometheus.Gauge

	// Artifact metrics
	ArtifactsServed *prometheus.CounterVec
	ArtifactBytes   *prometheus.CounterVec

	// Icon service metrics
	IconCalls    *prometheus.CounterVec
	IconDuration *prometheus.HistogramVec
	BreakerState *prometheus.GaugeVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.GaugeFunc
	startTime time.Time

	mu       sync.RWMutex
	snapshot Snapshot
}

// Snapshot holds running totals for the JSON health endpoint
type Snapshot struct {
	TotalRequests  int64 `json:"total_requests"`
	TotalErrors    int64 `json:"total_errors"`
	BuildsStarted  int64 `json:"builds_started"`
	BuildsFinished int64 `json:"builds_finished"`
	ActiveStreams  int64 `json:"active_streams"`
}

// NewMetrics creates a metrics collector on its own registry so several
// collectors can coexist in one process (tests, multiple servers).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_response_size_bytes",
				Help:      "HTTP response size in bytes",
				Buckets:   prometheus.ExponentialBuckets(100, 10, 7),
			},
			[]string{"method", "path"},
		),

		BuildsStarted: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "builds_started_total",
				Help:      "Total number of simulated builds started",
			},
		),
		BuildsFinished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "builds_finished_total",
				Help:      "Total number of builds that reached a terminal state",
			},
			[]string{"outcome"},
		),
		BuildDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "build_duration_seconds",
				Help:      "Wall clock duration of simulated builds",
				Buckets:   []float64{.1, .5, 1, 2, 5, 10, 20, 30, 60},
			},
		),
		BuildsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "builds_active",
				Help:      "Number of builds currently running",
			},
		),
		Workspaces: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "workspaces",
				Help:      "Number of open builder workspaces",
			},
		),

		ArtifactsServed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "artifacts_served_total",
				Help:      "Total number of artifact downloads",
			},
			[]string{"kind", "encoding"},
		),
		ArtifactBytes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "artifact_bytes_total",
				Help:      "Uncompressed artifact bytes generated",
			},
			[]string{"kind"},
		),

		IconCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "icon_calls_total",
				Help:      "Total number of image service calls",
			},
			[]string{"operation", "outcome"},
		),
		IconDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "icon_call_duration_seconds",
				Help:      "Image service call duration in seconds",
				Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"operation"},
		),
		BreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "circuit_breaker_state",
				Help:      "Circuit breaker state (0 closed, 1 half-open, 2 open)",
			},
			[]string{"name"},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "ws_connections",
				Help:      "Number of active build stream connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ws_messages_total",
				Help:      "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}

	m.Uptime = factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "uptime_seconds",
			Help:      "Backend uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry exposes the registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// BuildStarted records the start of a simulated build.
func (m *Metrics) BuildStarted() {
	m.BuildsStarted.Inc()
	m.BuildsActive.Inc()

	m.mu.Lock()
	m.snapshot.BuildsStarted++
	m.mu.Unlock()
}

// BuildFinished records a build reaching a terminal state.
func (m *Metrics) BuildFinished(outcome string, duration time.Duration) {
	m.BuildsFinished.WithLabelValues(outcome).Inc()
	m.BuildDuration.Observe(duration.Seconds())
	m.BuildsActive.Dec()

	m.mu.Lock()
	m.snapshot.BuildsFinished++
	m.mu.Unlock()
}

// SetWorkspaces sets the number of open workspaces
func (m *Metrics) SetWorkspaces(count int) {
	m.Workspaces.Set(float64(count))
}

// RecordArtifact records a generated artifact download
func (m *Metrics) RecordArtifact(kind, encoding string, size int) {
	m.ArtifactsServed.WithLabelValues(kind, encoding).Inc()
	m.ArtifactBytes.WithLabelValues(kind).Add(float64(size))
}

// RecordIconCall records an image service call
func (m *Metrics) RecordIconCall(operation, outcome string, duration time.Duration) {
	m.IconCalls.WithLabelValues(operation, outcome).Inc()
	m.IconDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetBreakerState publishes a circuit breaker state transition
func (m *Metrics) SetBreakerState(name string, state int) {
	m.BreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.ActiveStreams++
	m.mu.Unlock()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.ActiveStreams--
	m.mu.Unlock()
}

// GetSnapshot returns the running totals
func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}
