package client

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for API requests. Attach it with
// WithMetrics on a StatsTransport.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the request collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pandagraph_api_requests_total",
			Help: "Total number of API requests by operation and HTTP status (0 when no response).",
		}, []string{"op", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pandagraph_api_request_duration_seconds",
			Help:    "API request latency by operation.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
	}
}

func (m *Metrics) observe(op string, status int, d time.Duration) {
	m.requests.WithLabelValues(op, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(op).Observe(d.Seconds())
}

// Requests returns the request counter, labeled by op and status.
func (m *Metrics) Requests() *prometheus.CounterVec {
	return m.requests
}

// Duration returns the request latency histogram, labeled by op.
func (m *Metrics) Duration() *prometheus.HistogramVec {
	return m.duration
}
