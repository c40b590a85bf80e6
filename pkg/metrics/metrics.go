package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	RemoteCallsTotal    *prometheus.CounterVec
	RemoteCallDuration  *prometheus.HistogramVec
}

// New registers the application metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		RemoteCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "glue_calls_total",
				Help: "Total number of crawler API calls by outcome.",
			},
			[]string{"operation", "outcome", "error_code"}, // outcome: success, domain_error, exception
		),
		RemoteCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "glue_call_duration_seconds",
				Help:    "Duration of crawler API calls.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"operation"},
		),
	}
}

func (m *Metrics) ObserveHTTPRequest(method, path, status string, d time.Duration) {
	m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(d.Seconds())
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
}

func (m *Metrics) ObserveRemoteCall(operation, outcome, errorCode string, d time.Duration) {
	m.RemoteCallDuration.WithLabelValues(operation).Observe(d.Seconds())
	m.RemoteCallsTotal.WithLabelValues(operation, outcome, errorCode).Inc()
}
