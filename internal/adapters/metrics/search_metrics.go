package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/blueprint-optimizer/internal/domain/production"
)

// SearchMetricsCollector tracks search effort per blueprint and the outcome
// of whole evaluations
type SearchMetricsCollector struct {
	searchDuration   *prometheus.HistogramVec
	statesExplored   *prometheus.CounterVec
	statesPruned     *prometheus.CounterVec
	peakFrontier     *prometheus.GaugeVec
	bestYield        *prometheus.GaugeVec
	evaluationsTotal *prometheus.CounterVec
	evaluationTime   *prometheus.HistogramVec
}

// NewSearchMetricsCollector creates a new search metrics collector
func NewSearchMetricsCollector() *SearchMetricsCollector {
	return &SearchMetricsCollector{
		searchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "duration_seconds",
				Help:      "Per-blueprint search duration distribution",
				Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"horizon"},
		),

		statesExplored: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "states_explored_total",
				Help:      "Total number of states expanded by the search",
			},
			[]string{"horizon"},
		),

		statesPruned: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "states_pruned_total",
				Help:      "Total number of states discarded by reason",
			},
			[]string{"horizon", "reason"},
		),

		peakFrontier: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "peak_frontier_states",
				Help:      "Largest frontier seen in the most recent search of a blueprint",
			},
			[]string{"blueprint_id"},
		),

		bestYield: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "max_yield",
				Help:      "Maximum terminal output found in the most recent search of a blueprint",
			},
			[]string{"blueprint_id", "horizon"},
		),

		evaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "evaluation",
				Name:      "runs_total",
				Help:      "Total number of evaluations by aggregation mode and status",
			},
			[]string{"mode", "status"},
		),

		evaluationTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "evaluation",
				Name:      "duration_seconds",
				Help:      "Whole evaluation duration distribution",
				Buckets:   []float64{0.01, 0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
			},
			[]string{"mode"},
		),
	}
}

// Register registers all search metrics with the Prometheus registry
func (c *SearchMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.searchDuration,
		c.statesExplored,
		c.statesPruned,
		c.peakFrontier,
		c.bestYield,
		c.evaluationsTotal,
		c.evaluationTime,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordSearch records the effort and outcome of one blueprint search
func (c *SearchMetricsCollector) RecordSearch(result *production.SearchResult, duration time.Duration) {
	horizon := strconv.Itoa(result.Horizon)
	blueprint := strconv.Itoa(result.BlueprintID)

	c.searchDuration.WithLabelValues(horizon).Observe(duration.Seconds())
	c.statesExplored.WithLabelValues(horizon).Add(float64(result.Explored))
	c.statesPruned.WithLabelValues(horizon, "duplicate").Add(float64(result.Deduplicated))
	c.statesPruned.WithLabelValues(horizon, "bound").Add(float64(result.BoundPruned))
	c.peakFrontier.WithLabelValues(blueprint).Set(float64(result.PeakFrontier))
	c.bestYield.WithLabelValues(blueprint, horizon).Set(float64(result.MaxYield))
}

// RecordEvaluation records a whole evaluation
func (c *SearchMetricsCollector) RecordEvaluation(mode production.AggregationMode, blueprints int, duration time.Duration, success bool) {
	status := "success"
	if !success {
		status = "error"
	}

	c.evaluationsTotal.WithLabelValues(mode.String(), status).Inc()
	if success && blueprints > 0 {
		c.evaluationTime.WithLabelValues(mode.String()).Observe(duration.Seconds())
	}
}
