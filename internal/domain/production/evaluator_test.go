package production_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/blueprint-optimizer/internal/domain/production"
)

func TestEvaluator_QualityScenario(t *testing.T) {
	// Arrange
	bps := []*production.Blueprint{exampleBlueprintOne(t), exampleBlueprintTwo(t)}
	evaluator := production.NewEvaluator(2, production.DefaultSearchOptions())

	// Act
	eval, err := evaluator.Evaluate(context.Background(), bps, 24, production.AggregateQuality, 0)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint64(33), eval.Aggregate)
	require.Len(t, eval.Results, 2)
	assert.Equal(t, 1, eval.Results[0].BlueprintID)
	assert.Equal(t, uint64(9), eval.Results[0].MaxYield)
	assert.Equal(t, 2, eval.Results[1].BlueprintID)
	assert.Equal(t, uint64(12), eval.Results[1].MaxYield)
}

func TestEvaluator_ProductScenario(t *testing.T) {
	if testing.Short() {
		t.Skip("long horizon search skipped in short mode")
	}
	bps := []*production.Blueprint{exampleBlueprintOne(t), exampleBlueprintTwo(t)}

	eval, err := production.NewEvaluator(0, production.DefaultSearchOptions()).
		Evaluate(context.Background(), bps, 32, production.AggregateProduct, 3)

	require.NoError(t, err)
	assert.Equal(t, uint64(3472), eval.Aggregate)
	assert.Equal(t, uint64(56), eval.Results[0].MaxYield)
	assert.Equal(t, uint64(62), eval.Results[1].MaxYield)
}

func TestEvaluator_ProductUsesOnlyThePrefix(t *testing.T) {
	bps := cheapBlueprints(t)

	eval, err := production.NewEvaluator(3, production.DefaultSearchOptions()).
		Evaluate(context.Background(), bps, 8, production.AggregateProduct, 2)

	require.NoError(t, err)
	require.Len(t, eval.Results, 2)
	assert.Equal(t, bps[0].ID(), eval.Results[0].BlueprintID)
	assert.Equal(t, bps[1].ID(), eval.Results[1].BlueprintID)
	assert.Equal(t, eval.Results[0].MaxYield*eval.Results[1].MaxYield, eval.Aggregate)
}

func TestEvaluator_ProductOverflowFailsEvaluation(t *testing.T) {
	// Arrange: every machine costs one unit, so each blueprint yields well
	// over 16 in 20 steps and the product of sixteen yields exceeds 2^64
	costs := production.BlueprintCosts{
		OreMachineOre: 1, ClayMachineOre: 1, ObsidianMachineOre: 1,
		ObsidianMachineClay: 1, GeodeMachineOre: 1, GeodeMachineObs: 1,
	}
	bps := make([]*production.Blueprint, 0, 16)
	for id := 1; id <= 16; id++ {
		bp, err := production.NewBlueprintFromCosts(id, costs)
		require.NoError(t, err)
		bps = append(bps, bp)
	}

	// Act
	eval, err := production.NewEvaluator(4, production.DefaultSearchOptions()).
		Evaluate(context.Background(), bps, 20, production.AggregateProduct, 0)

	// Assert
	var overflow *production.ErrAggregateOverflow
	require.True(t, errors.As(err, &overflow), "expected overflow error, got %v", err)
	assert.Nil(t, eval, "no partial evaluation on overflow")
}

func TestEvaluator_SameAnswerForAnyWorkerCount(t *testing.T) {
	bps := cheapBlueprints(t)

	var answers []uint64
	for _, workers := range []int{1, 2, 8} {
		eval, err := production.NewEvaluator(workers, production.DefaultSearchOptions()).
			Evaluate(context.Background(), bps, 12, production.AggregateQuality, 0)
		require.NoError(t, err)
		answers = append(answers, eval.Aggregate)
	}

	assert.Equal(t, answers[0], answers[1])
	assert.Equal(t, answers[0], answers[2])
}

func TestEvaluator_RejectsInvalidInput(t *testing.T) {
	evaluator := production.NewEvaluator(1, production.DefaultSearchOptions())
	bp := exampleBlueprintOne(t)
	ctx := context.Background()

	t.Run("empty list", func(t *testing.T) {
		_, err := evaluator.Evaluate(ctx, nil, 24, production.AggregateQuality, 0)
		var emptyErr *production.ErrEmptyBlueprintList
		assert.True(t, errors.As(err, &emptyErr))
	})

	t.Run("zero horizon", func(t *testing.T) {
		_, err := evaluator.Evaluate(ctx, []*production.Blueprint{bp}, 0, production.AggregateQuality, 0)
		var horizonErr *production.ErrInvalidHorizon
		assert.True(t, errors.As(err, &horizonErr))
	})

	t.Run("duplicate ids", func(t *testing.T) {
		_, err := evaluator.Evaluate(ctx, []*production.Blueprint{bp, bp}, 24, production.AggregateQuality, 0)
		var dupErr *production.ErrDuplicateBlueprint
		require.True(t, errors.As(err, &dupErr))
		assert.Equal(t, 1, dupErr.BlueprintID)
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := evaluator.Evaluate(ctx, []*production.Blueprint{bp}, 24, production.AggregationMode("median"), 0)
		var modeErr *production.ErrUnknownAggregation
		assert.True(t, errors.As(err, &modeErr))
	})
}

func TestNewEvaluator_DefaultsToOneWorkerPerCPU(t *testing.T) {
	assert.Positive(t, production.NewEvaluator(0, production.DefaultSearchOptions()).Workers())
	assert.Equal(t, 4, production.NewEvaluator(4, production.DefaultSearchOptions()).Workers())
}
