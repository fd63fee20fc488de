package metrics

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/blueprint-optimizer/internal/domain/production"
	"github.com/andrescamacho/blueprint-optimizer/internal/infrastructure/config"
)

func enableMetrics(t *testing.T) *SearchMetricsCollector {
	t.Helper()
	InitRegistry()
	t.Cleanup(Reset)

	collector := NewSearchMetricsCollector()
	require.NoError(t, collector.Register())
	SetGlobalSearchCollector(collector)
	return collector
}

func TestRecordSearch_DisabledIsNoOp(t *testing.T) {
	Reset()

	assert.False(t, IsEnabled())
	assert.NotPanics(t, func() {
		RecordSearch(&production.SearchResult{BlueprintID: 1}, time.Second)
		RecordEvaluation(production.AggregateQuality, 1, time.Second, true)
	})
}

func TestRecordSearch_UpdatesCounters(t *testing.T) {
	// Arrange
	collector := enableMetrics(t)
	result := &production.SearchResult{
		BlueprintID:  2,
		Horizon:      24,
		MaxYield:     12,
		Explored:     1000,
		Deduplicated: 300,
		BoundPruned:  50,
		PeakFrontier: 80,
	}

	// Act
	RecordSearch(result, 20*time.Millisecond)
	RecordSearch(result, 10*time.Millisecond)

	// Assert
	assert.Equal(t, 2000.0, testutil.ToFloat64(collector.statesExplored.WithLabelValues("24")))
	assert.Equal(t, 600.0, testutil.ToFloat64(collector.statesPruned.WithLabelValues("24", "duplicate")))
	assert.Equal(t, 100.0, testutil.ToFloat64(collector.statesPruned.WithLabelValues("24", "bound")))
	assert.Equal(t, 80.0, testutil.ToFloat64(collector.peakFrontier.WithLabelValues("2")))
	assert.Equal(t, 12.0, testutil.ToFloat64(collector.bestYield.WithLabelValues("2", "24")))
}

func TestRecordEvaluation_CountsByStatus(t *testing.T) {
	collector := enableMetrics(t)

	RecordEvaluation(production.AggregateProduct, 3, time.Second, true)
	RecordEvaluation(production.AggregateProduct, 0, time.Second, false)

	assert.Equal(t, 1.0, testutil.ToFloat64(collector.evaluationsTotal.WithLabelValues("product", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.evaluationsTotal.WithLabelValues("product", "error")))
}

func TestExtractCommandName(t *testing.T) {
	type EvaluateBlueprintsCommand struct{}

	assert.Equal(t, "EvaluateBlueprintsCommand", extractCommandName(&EvaluateBlueprintsCommand{}))
	assert.Equal(t, "UnknownCommand", extractCommandName(nil))
}

func TestStartServer_ServesRegistry(t *testing.T) {
	// Arrange
	enableMetrics(t)
	RecordEvaluation(production.AggregateQuality, 2, time.Second, true)

	server, err := StartServer(config.MetricsConfig{Host: "127.0.0.1", Port: 0, Path: "/metrics"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = server.Shutdown(context.Background()) })

	// Act
	resp, err := http.Get("http://" + server.Addr() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "blueprint_optimizer_evaluation_runs_total")
}

func TestStartServer_RequiresRegistry(t *testing.T) {
	Reset()

	_, err := StartServer(config.MetricsConfig{Host: "127.0.0.1", Port: 0})

	assert.Error(t, err)
}
