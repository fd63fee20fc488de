package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/blueprint-optimizer/internal/domain/production"
)

const (
	// Namespace for all metrics
	namespace = "blueprint_optimizer"
	// Subsystem for search metrics
	subsystem = "search"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalSearchCollector is set by SetGlobalSearchCollector() when
	// metrics are enabled
	globalSearchCollector SearchMetricsRecorder
)

// SearchMetricsRecorder defines the interface for recording search and
// evaluation events. Application handlers record through the package-level
// functions so that a disabled collector costs nothing.
type SearchMetricsRecorder interface {
	RecordSearch(result *production.SearchResult, duration time.Duration)
	RecordEvaluation(mode production.AggregationMode, blueprints int, duration time.Duration, success bool)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// Reset drops the registry and the global collector
func Reset() {
	Registry = nil
	globalSearchCollector = nil
}

// SetGlobalSearchCollector sets the global search metrics collector
func SetGlobalSearchCollector(collector SearchMetricsRecorder) {
	globalSearchCollector = collector
}

// RecordSearch records a finished per-blueprint search globally
func RecordSearch(result *production.SearchResult, duration time.Duration) {
	if globalSearchCollector != nil && result != nil {
		globalSearchCollector.RecordSearch(result, duration)
	}
}

// RecordEvaluation records a finished (or failed) evaluation globally
func RecordEvaluation(mode production.AggregationMode, blueprints int, duration time.Duration, success bool) {
	if globalSearchCollector != nil {
		globalSearchCollector.RecordEvaluation(mode, blueprints, duration, success)
	}
}
