package commands

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/blueprint-optimizer/internal/adapters/metrics"
	"github.com/andrescamacho/blueprint-optimizer/internal/application/common"
	"github.com/andrescamacho/blueprint-optimizer/internal/domain/evaluation"
	"github.com/andrescamacho/blueprint-optimizer/internal/domain/production"
	"github.com/andrescamacho/blueprint-optimizer/internal/domain/shared"
)

// EvaluateBlueprintsCommand searches every selected blueprint and folds the
// per-blueprint maxima into one answer
type EvaluateBlueprintsCommand struct {
	Blueprints  []*production.Blueprint
	Source      string // where the list came from, recorded with persisted runs
	Mode        production.AggregationMode
	Horizon     int
	PrefixLimit int // product mode only; 0 scores every blueprint
	Persist     bool
}

// EvaluateBlueprintsResponse carries the evaluation and, when persisted, its run id
type EvaluateBlueprintsResponse struct {
	RunID      string
	Persisted  bool
	StartedAt  time.Time
	Duration   time.Duration
	Evaluation *production.Evaluation
}

// RunIDGenerator produces a new run id for an aggregation mode
type RunIDGenerator func(mode string) string

// EvaluateBlueprintsHandler handles the EvaluateBlueprints command
type EvaluateBlueprintsHandler struct {
	workers          int
	options          production.SearchOptions
	runRepo          evaluation.RunRepository
	clock            shared.Clock
	newRunID         RunIDGenerator
	progressInterval time.Duration
}

// NewEvaluateBlueprintsHandler creates a new EvaluateBlueprintsHandler.
// runRepo may be nil, in which case Persist requests fail.
func NewEvaluateBlueprintsHandler(
	workers int,
	options production.SearchOptions,
	runRepo evaluation.RunRepository,
	clock shared.Clock,
	newRunID RunIDGenerator,
	progressInterval time.Duration,
) *EvaluateBlueprintsHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &EvaluateBlueprintsHandler{
		workers:          workers,
		options:          options,
		runRepo:          runRepo,
		clock:            clock,
		newRunID:         newRunID,
		progressInterval: progressInterval,
	}
}

// Handle executes the EvaluateBlueprints command
func (h *EvaluateBlueprintsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*EvaluateBlueprintsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *EvaluateBlueprintsCommand")
	}

	if cmd.Persist && (h.runRepo == nil || h.newRunID == nil) {
		return nil, fmt.Errorf("persistence requested but no run repository is configured")
	}

	logger := common.LoggerFromContext(ctx)

	opts := h.options
	opts.Progress = h.progressReporter(logger)
	evaluator := production.NewEvaluator(h.workers, opts)

	logger.Log("INFO", "evaluation started", map[string]interface{}{
		"mode":         cmd.Mode.String(),
		"horizon":      cmd.Horizon,
		"blueprints":   len(cmd.Blueprints),
		"prefix_limit": cmd.PrefixLimit,
		"workers":      evaluator.Workers(),
	})

	startedAt := h.clock.Now()
	wallStart := time.Now()

	eval, err := evaluator.Evaluate(ctx, cmd.Blueprints, cmd.Horizon, cmd.Mode, cmd.PrefixLimit)
	duration := time.Since(wallStart)
	if err != nil {
		metrics.RecordEvaluation(cmd.Mode, 0, duration, false)
		logger.Log("ERROR", "evaluation failed", map[string]interface{}{
			"mode":  cmd.Mode.String(),
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to evaluate blueprints: %w", err)
	}

	for _, res := range eval.Results {
		metrics.RecordSearch(res.SearchResult, res.Duration)
		logger.Log("DEBUG", "blueprint searched", map[string]interface{}{
			"blueprint_id":  res.BlueprintID,
			"max_yield":     res.MaxYield,
			"explored":      res.Explored,
			"deduplicated":  res.Deduplicated,
			"bound_pruned":  res.BoundPruned,
			"peak_frontier": res.PeakFrontier,
			"duration":      res.Duration.String(),
		})
	}
	metrics.RecordEvaluation(cmd.Mode, len(eval.Results), duration, true)

	response := &EvaluateBlueprintsResponse{
		StartedAt:  startedAt,
		Duration:   duration,
		Evaluation: eval,
	}

	if cmd.Persist {
		runID := h.newRunID(cmd.Mode.String())
		run, err := evaluation.NewRun(runID, cmd.Source, startedAt, duration, eval)
		if err != nil {
			return nil, fmt.Errorf("failed to create evaluation run: %w", err)
		}
		if err := h.runRepo.Save(ctx, run); err != nil {
			return nil, fmt.Errorf("failed to persist evaluation run: %w", err)
		}
		response.RunID = runID
		response.Persisted = true
	}

	logger.Log("INFO", "evaluation completed", map[string]interface{}{
		"mode":      cmd.Mode.String(),
		"aggregate": eval.Aggregate,
		"duration":  duration.String(),
		"run_id":    response.RunID,
	})

	return response, nil
}

// progressReporter throttles search progress to one log line per interval
// across all concurrent searches. A non-positive interval disables it.
func (h *EvaluateBlueprintsHandler) progressReporter(logger common.Logger) production.ProgressFunc {
	if h.progressInterval <= 0 {
		return nil
	}

	sometimes := &rate.Sometimes{Interval: h.progressInterval}
	return func(p production.SearchProgress) {
		sometimes.Do(func() {
			logger.Log("DEBUG", "search progress", map[string]interface{}{
				"blueprint_id": p.BlueprintID,
				"elapsed":      p.Elapsed,
				"horizon":      p.Horizon,
				"frontier":     p.Frontier,
				"floor":        p.Floor,
			})
		})
	}
}
