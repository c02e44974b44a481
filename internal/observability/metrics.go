// Package observability holds the Prometheus instrumentation for the service.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the service.
type Metrics struct {
	// Auth metrics.
	Registrations *prometheus.CounterVec // labels: outcome={success,validation,conflict,error}
	Logins        *prometheus.CounterVec // labels: outcome={success,invalid,error}

	// Outbound weather API metrics.
	UpstreamRequests *prometheus.CounterVec   // labels: target={geocode,forecast}, outcome={success,empty,error}
	UpstreamDuration *prometheus.HistogramVec // labels: target={geocode,forecast}
	GeocodeCache     *prometheus.CounterVec   // labels: result={hit,miss}
}

// NewMetrics creates all service metrics and registers them with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	return NewMetricsFor(prometheus.DefaultRegisterer)
}

// NewMetricsFor creates all service metrics on the given registerer. Tests
// pass a fresh registry so fixtures do not collide.
func NewMetricsFor(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "farmweather",
			Name:      "registrations_total",
			Help:      "Registration attempts by outcome.",
		}, []string{"outcome"}),
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "farmweather",
			Name:      "logins_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "farmweather",
			Name:      "upstream_requests_total",
			Help:      "Outbound geocoding and forecast API requests by outcome.",
		}, []string{"target", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "farmweather",
			Name:      "upstream_request_duration_seconds",
			Help:      "Outbound API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"target"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "farmweather",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.Registrations,
		m.Logins,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.GeocodeCache,
	)

	return m
}
