package evaluation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/blueprint-optimizer/internal/domain/production"
)

func TestNewRun_CopiesEvaluation(t *testing.T) {
	// Arrange
	started := time.Date(2024, 2, 2, 10, 0, 0, 0, time.UTC)
	eval := &production.Evaluation{
		Mode:        production.AggregateProduct,
		Horizon:     32,
		PrefixLimit: 3,
		Aggregate:   3472,
		Results: []*production.BlueprintResult{
			{SearchResult: &production.SearchResult{BlueprintID: 1, MaxYield: 56, Explored: 10, BoundPruned: 4}, Duration: time.Second},
			{SearchResult: &production.SearchResult{BlueprintID: 2, MaxYield: 62, Deduplicated: 3, PeakFrontier: 8}, Duration: 2 * time.Second},
		},
	}

	// Act
	run, err := NewRun("product-1", "input.txt", started, 3*time.Second, eval)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "product-1", run.ID())
	assert.Equal(t, production.AggregateProduct, run.Mode())
	assert.Equal(t, 3, run.PrefixLimit())
	assert.Equal(t, uint64(3472), run.Aggregate())
	require.Len(t, run.Results(), 2)
	assert.Equal(t, BlueprintOutcome{BlueprintID: 1, Yield: 56, Explored: 10, BoundPruned: 4, Duration: time.Second}, *run.Results()[0])
	assert.Equal(t, 8, run.Results()[1].PeakFrontier)
	assert.Equal(t, "Run[product-1, mode=product, horizon=32, blueprints=2, answer=3472]", run.String())
}

func TestNewRun_Validation(t *testing.T) {
	_, err := NewRun("", "x", time.Now(), 0, &production.Evaluation{})
	var invalid *ErrInvalidRun
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "id", invalid.Field)

	_, err = NewRun("run-1", "x", time.Now(), 0, nil)
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "evaluation", invalid.Field)
}

func TestErrRunNotFound(t *testing.T) {
	err := &ErrRunNotFound{RunID: "abc"}

	assert.Equal(t, "evaluation run not found: abc", err.Error())
}
