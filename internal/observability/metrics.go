package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// selection pipeline and the recomputation session.
type Metrics struct {
	SelectionsConsumed prometheus.Counter
	SnapshotsProduced  prometheus.Counter
	SelectionErrors    prometheus.Counter
	PipelineRunning    prometheus.Gauge

	// Recomputation session metrics.
	RegionCache     *prometheus.CounterVec // labels: result={hit,miss}
	ResolveDuration prometheus.Histogram
	RegionSize      prometheus.Histogram
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		SelectionsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_views",
			Name:      "selections_consumed_total",
			Help:      "Total selection events read from the source topic.",
		}),
		SnapshotsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_views",
			Name:      "snapshots_produced_total",
			Help:      "Total view snapshots written to the sink topic.",
		}),
		SelectionErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_views",
			Name:      "selection_errors_total",
			Help:      "Total selection events that failed to process.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_views",
			Name:      "pipeline_running",
			Help:      "1 when the selection pipeline is active, 0 when shut down.",
		}),
		RegionCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_views",
			Name:      "region_cache_total",
			Help:      "Region subset cache lookups by result.",
		}, []string{"result"}),
		ResolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_views",
			Name:      "region_resolve_duration_seconds",
			Help:      "Duration of a full-catalog region resolution.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		RegionSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_views",
			Name:      "region_subset_size",
			Help:      "Number of records in a resolved region subset.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
	}

	prometheus.MustRegister(
		m.SelectionsConsumed,
		m.SnapshotsProduced,
		m.SelectionErrors,
		m.PipelineRunning,
		m.RegionCache,
		m.ResolveDuration,
		m.RegionSize,
	)

	return m
}

// NewMetricsForTesting creates Metrics with unregistered collectors to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		SelectionsConsumed: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quake_views", Name: "selections_consumed_total"}),
		SnapshotsProduced:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quake_views", Name: "snapshots_produced_total"}),
		SelectionErrors:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quake_views", Name: "selection_errors_total"}),
		PipelineRunning:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "quake_views", Name: "pipeline_running"}),
		RegionCache:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "quake_views", Name: "region_cache_total"}, []string{"result"}),
		ResolveDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "quake_views", Name: "region_resolve_duration_seconds"}),
		RegionSize:         prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "quake_views", Name: "region_subset_size"}),
	}
}
