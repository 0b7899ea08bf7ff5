package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Bridge metrics
	BridgeMessages  *prometheus.CounterVec
	BridgeFailures  *prometheus.CounterVec
	HostConnections prometheus.Gauge

	// Quiz metrics
	QuizzesLoaded    prometheus.Counter
	QuizzesCompleted prometheus.Counter
	ScoreRatio       prometheus.Histogram

	startTime time.Time
}

// NewMetrics creates a metrics collector backed by its own registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiz_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quiz_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "path"},
		),

		BridgeMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiz_bridge_messages_total",
				Help: "Total number of bridge messages",
			},
			[]string{"direction", "type"},
		),
		BridgeFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiz_bridge_failures_total",
				Help: "Total number of bridge messages that failed to send or decode",
			},
			[]string{"direction", "type"},
		),
		HostConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "quiz_host_connections",
				Help: "Number of attached host connections",
			},
		),

		QuizzesLoaded: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "quiz_loads_total",
				Help: "Total number of quiz definitions loaded",
			},
		),
		QuizzesCompleted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "quiz_completions_total",
				Help: "Total number of quizCompleted notifications",
			},
		),
		ScoreRatio: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "quiz_score_ratio",
				Help:    "Score divided by total at completion",
				Buckets: prometheus.LinearBuckets(0, 0.1, 11),
			},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "quiz_uptime_seconds",
			Help: "Process uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry exposes the underlying registry for scraping and tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordBridgeMessage records a message crossing the bridge
func (m *Metrics) RecordBridgeMessage(direction, msgType string) {
	m.BridgeMessages.WithLabelValues(direction, msgType).Inc()
}

// RecordBridgeFailure records a message that was dropped
func (m *Metrics) RecordBridgeFailure(direction, msgType string) {
	m.BridgeFailures.WithLabelValues(direction, msgType).Inc()
}

// IncQuizzesLoaded increments the quiz load counter
func (m *Metrics) IncQuizzesLoaded() {
	m.QuizzesLoaded.Inc()
}

// RecordCompletion records a completed quiz
func (m *Metrics) RecordCompletion(score, total int) {
	m.QuizzesCompleted.Inc()
	if total > 0 {
		m.ScoreRatio.Observe(float64(score) / float64(total))
	}
}

// IncHostConnections increments attached host connections
func (m *Metrics) IncHostConnections() {
	m.HostConnections.Inc()
}

// DecHostConnections decrements attached host connections
func (m *Metrics) DecHostConnections() {
	m.HostConnections.Dec()
}
