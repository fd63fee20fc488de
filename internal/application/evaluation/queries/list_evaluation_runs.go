package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/blueprint-optimizer/internal/application/common"
	"github.com/andrescamacho/blueprint-optimizer/internal/domain/evaluation"
	"github.com/andrescamacho/blueprint-optimizer/internal/domain/production"
)

// maxListLimit caps a single page of runs
const maxListLimit = 500

// ListEvaluationRunsQuery lists persisted runs, newest first
type ListEvaluationRunsQuery struct {
	Mode   string // optional: "quality" or "product"
	Limit  int    // 0 uses the default page size
	Offset int
}

// ListEvaluationRunsResponse carries one page of runs
type ListEvaluationRunsResponse struct {
	Runs []*evaluation.Run
}

// ListEvaluationRunsHandler handles the ListEvaluationRuns query
type ListEvaluationRunsHandler struct {
	runRepo evaluation.RunRepository
}

// NewListEvaluationRunsHandler creates a new ListEvaluationRunsHandler
func NewListEvaluationRunsHandler(runRepo evaluation.RunRepository) *ListEvaluationRunsHandler {
	return &ListEvaluationRunsHandler{runRepo: runRepo}
}

// Handle executes the ListEvaluationRuns query
func (h *ListEvaluationRunsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ListEvaluationRunsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListEvaluationRunsQuery")
	}

	opts := evaluation.DefaultListOptions()

	if query.Mode != "" {
		mode, err := production.ParseAggregationMode(query.Mode)
		if err != nil {
			return nil, err
		}
		opts.Mode = mode.String()
	}

	if query.Limit < 0 || query.Offset < 0 {
		return nil, fmt.Errorf("limit and offset must not be negative")
	}
	if query.Limit > 0 {
		opts.Limit = query.Limit
	}
	if opts.Limit > maxListLimit {
		opts.Limit = maxListLimit
	}
	opts.Offset = query.Offset

	runs, err := h.runRepo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluation runs: %w", err)
	}

	common.LoggerFromContext(ctx).Log("DEBUG", "listed evaluation runs", map[string]interface{}{
		"mode":  opts.Mode,
		"count": len(runs),
	})

	return &ListEvaluationRunsResponse{Runs: runs}, nil
}
