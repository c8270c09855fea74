package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the server's Prometheus collectors.
type Metrics struct {
	// HTTPRequests counts handled requests by route, method and status.
	HTTPRequests *prometheus.CounterVec

	// HTTPDuration observes handler latency in seconds by route and method.
	HTTPDuration *prometheus.HistogramVec

	// CollaboratorCalls counts outbound calls by collaborator and outcome.
	CollaboratorCalls *prometheus.CounterVec
}

// NewMetrics registers all collectors on reg under namespace.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled",
		}, []string{"route", "method", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		CollaboratorCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "collaborator_calls_total",
			Help:      "Total number of calls to external collaborators",
		}, []string{"collaborator", "outcome"}),
	}
}

// RecordCollaboratorCall is safe to call on a nil receiver.
func (m *Metrics) RecordCollaboratorCall(collaborator string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.CollaboratorCalls.WithLabelValues(collaborator, outcome).Inc()
}
