package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// UpstreamMetrics records request outcomes against the catalog API.
type UpstreamMetrics struct {
	duration *prometheus.HistogramVec
	errors   *prometheus.CounterVec
}

// NewUpstreamMetrics registers the upstream metrics on the provided registerer.
func NewUpstreamMetrics(reg prometheus.Registerer) *UpstreamMetrics {
	if reg == nil {
		return &UpstreamMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wps_request_duration_seconds",
		Help:    "Duration of upstream catalog API requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
	errors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wps_request_errors_total",
		Help: "Failed upstream catalog API requests.",
	}, []string{"endpoint", "code"})
	reg.MustRegister(duration, errors)
	return &UpstreamMetrics{
		duration: duration,
		errors:   errors,
	}
}

// ObserveDuration records the duration for the named upstream endpoint.
func (m *UpstreamMetrics) ObserveDuration(endpoint string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(endpoint)).Observe(duration.Seconds())
}

// IncError increments the error counter for the named endpoint and error code.
func (m *UpstreamMetrics) IncError(endpoint, code string) {
	if m == nil || m.errors == nil {
		return
	}
	m.errors.WithLabelValues(normalizeLabel(endpoint), normalizeLabel(code)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
