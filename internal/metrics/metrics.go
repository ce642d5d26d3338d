// Package metrics exposes Prometheus instrumentation for the hosted
// HTTP surface. Registration happens against a dedicated registry so
// tests can create isolated instances.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the instruments the HTTP surface records into.
type Metrics struct {
	registry *prometheus.Registry

	Validations     *prometheus.CounterVec
	ValidationTime  prometheus.Histogram
	Migrations      prometheus.Counter
	UpstreamQueries prometheus.Counter
}

// New creates a Metrics set with its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		Validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conduit_validations_total",
				Help: "Total workflow validations, labeled by outcome.",
			},
			[]string{"outcome"},
		),
		ValidationTime: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "conduit_validation_duration_seconds",
				Help:    "Duration of workflow validations.",
				Buckets: prometheus.DefBuckets,
			},
		),
		Migrations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "conduit_migrations_total",
				Help: "Total legacy job migrations.",
			},
		),
		UpstreamQueries: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "conduit_upstream_queries_total",
				Help: "Total upstream candidate resolutions.",
			},
		),
	}

	reg.MustRegister(m.Validations, m.ValidationTime, m.Migrations, m.UpstreamQueries)
	return m
}

// ObserveValidation records one validation with its outcome label
// ("valid" or "invalid").
func (m *Metrics) ObserveValidation(hasErrors bool, seconds float64) {
	outcome := "valid"
	if hasErrors {
		outcome = "invalid"
	}
	m.Validations.WithLabelValues(outcome).Inc()
	m.ValidationTime.Observe(seconds)
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
