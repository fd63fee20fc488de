package queries

import (
	"context"
	"fmt"
	"strings"

	"github.com/andrescamacho/blueprint-optimizer/internal/application/common"
	"github.com/andrescamacho/blueprint-optimizer/internal/domain/evaluation"
)

// GetEvaluationRunQuery fetches one persisted run by id
type GetEvaluationRunQuery struct {
	RunID string
}

// GetEvaluationRunResponse carries the run
type GetEvaluationRunResponse struct {
	Run *evaluation.Run
}

// GetEvaluationRunHandler handles the GetEvaluationRun query
type GetEvaluationRunHandler struct {
	runRepo evaluation.RunRepository
}

// NewGetEvaluationRunHandler creates a new GetEvaluationRunHandler
func NewGetEvaluationRunHandler(runRepo evaluation.RunRepository) *GetEvaluationRunHandler {
	return &GetEvaluationRunHandler{runRepo: runRepo}
}

// Handle executes the GetEvaluationRun query
func (h *GetEvaluationRunHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetEvaluationRunQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetEvaluationRunQuery")
	}

	runID := strings.TrimSpace(query.RunID)
	if runID == "" {
		return nil, fmt.Errorf("run id is required")
	}

	run, err := h.runRepo.FindByID(ctx, runID)
	if err != nil {
		return nil, err
	}

	return &GetEvaluationRunResponse{Run: run}, nil
}
