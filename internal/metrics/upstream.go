package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// UpstreamMetrics records calls made to the remote catalog API.
type UpstreamMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewUpstreamMetrics registers the upstream metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewUpstreamMetrics(reg prometheus.Registerer) *UpstreamMetrics {
	if reg == nil {
		return &UpstreamMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_upstream_requests_total",
		Help: "Requests sent to the catalog API by operation and status.",
	}, []string{"operation", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_upstream_request_duration_seconds",
		Help:    "Latency of catalog API requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	reg.MustRegister(requests, duration)
	return &UpstreamMetrics{
		requests: requests,
		duration: duration,
	}
}

// Observe records one request. A status of 0 means the request never got a response.
func (m *UpstreamMetrics) Observe(operation string, status int, elapsed time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	op := normalizeLabel(operation)
	m.requests.WithLabelValues(op, statusLabel(status)).Inc()
	m.duration.WithLabelValues(op).Observe(elapsed.Seconds())
}

func statusLabel(status int) string {
	if status == 0 {
		return "error"
	}
	return strconv.Itoa(status)
}

func normalizeLabel(operation string) string {
	if operation == "" {
		return "unknown"
	}
	return operation
}
