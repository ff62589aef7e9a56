package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the vote map
// pipeline. In one-shot CLI runs they are registered but never scraped;
// serve mode exposes them on /metrics.
type Metrics struct {
	FetchRequests *prometheus.CounterVec   // labels: chamber, outcome={success,not_found,network_error,parse_error}
	FetchDuration *prometheus.HistogramVec // labels: chamber

	MapsRendered   *prometheus.CounterVec // labels: chamber, outcome={success,error}
	RenderDuration prometheus.Histogram

	VoteCache *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "votemap",
			Name:      "fetch_requests_total",
			Help:      "Roll-call feed fetches by chamber and outcome.",
		}, []string{"chamber", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "votemap",
			Name:      "fetch_duration_seconds",
			Help:      "Roll-call feed request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"chamber"}),
		MapsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "votemap",
			Name:      "maps_rendered_total",
			Help:      "Choropleth maps rendered by chamber and outcome.",
		}, []string{"chamber", "outcome"}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "votemap",
			Name:      "render_duration_seconds",
			Help:      "Duration of a complete classify-join-render cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		VoteCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "votemap",
			Name:      "vote_cache_total",
			Help:      "Roll-call cache lookups by result.",
		}, []string{"result"}),
	}

	prometheus.MustRegister(
		m.FetchRequests,
		m.FetchDuration,
		m.MapsRendered,
		m.RenderDuration,
		m.VoteCache,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FetchRequests:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "votemap", Name: "fetch_requests_total"}, []string{"chamber", "outcome"}),
		FetchDuration:  prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "votemap", Name: "fetch_duration_seconds"}, []string{"chamber"}),
		MapsRendered:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "votemap", Name: "maps_rendered_total"}, []string{"chamber", "outcome"}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "votemap", Name: "render_duration_seconds"}),
		VoteCache:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "votemap", Name: "vote_cache_total"}, []string{"result"}),
	}
}
