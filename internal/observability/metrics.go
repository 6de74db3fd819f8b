package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sounding_dashboard"

// Metrics holds the Prometheus counters, histograms, and gauges for the dashboard.
type Metrics struct {
	// Upstream sounding API metrics.
	UpstreamRequests *prometheus.CounterVec   // labels: endpoint={launches,measurements,monthly}, outcome={success,error,not_found}
	UpstreamDuration *prometheus.HistogramVec // labels: endpoint

	// Measurement cache metrics.
	CacheLookups *prometheus.CounterVec // labels: layer={memory,redis}, result={hit,miss,error}

	// Profile computation metrics.
	ProfilesComputed       prometheus.Counter
	ProfileSeriesLength    prometheus.Histogram
	ProfileComputeDuration prometheus.Histogram

	// Catalog refresh metrics.
	CatalogLaunches  prometheus.Gauge
	CatalogRefreshes *prometheus.CounterVec // labels: outcome={success,error}
	RefresherRunning prometheus.Gauge

	// HTTP API metrics.
	HTTPRequests *prometheus.CounterVec // labels: route, status
}

// NewMetrics creates and registers all dashboard metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := NewUnregisteredMetrics()

	prometheus.MustRegister(
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.CacheLookups,
		m.ProfilesComputed,
		m.ProfileSeriesLength,
		m.ProfileComputeDuration,
		m.CatalogLaunches,
		m.CatalogRefreshes,
		m.RefresherRunning,
		m.HTTPRequests,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewUnregisteredMetrics()
}

// NewUnregisteredMetrics creates Metrics that are never exported. One-shot
// tools like soundingctl use it to drive instrumented adapters.
func NewUnregisteredMetrics() *Metrics {
	return &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Sounding API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Sounding API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "measurement_cache_lookups_total",
			Help:      "Measurement cache lookups by layer and result.",
		}, []string{"layer", "result"}),
		ProfilesComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profiles_computed_total",
			Help:      "Total launch profiles computed.",
		}),
		ProfileSeriesLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "profile_series_length",
			Help:      "Number of raw measurements per computed profile.",
			Buckets:   []float64{0, 100, 500, 1000, 2500, 5000, 7500, 10000, 20000},
		}),
		ProfileComputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "profile_compute_duration_seconds",
			Help:      "Time spent reducing and summarizing a measurement series.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		CatalogLaunches: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_launches",
			Help:      "Number of launches in the current catalog snapshot.",
		}),
		CatalogRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_refreshes_total",
			Help:      "Catalog refresh attempts by outcome.",
		}, []string{"outcome"}),
		RefresherRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_refresher_running",
			Help:      "1 when the catalog refresher is active, 0 when shut down.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Dashboard API requests by route pattern and status code.",
		}, []string{"route", "status"}),
	}
}
