package production_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/blueprint-optimizer/internal/domain/production"
)

func results(pairs ...[2]uint64) []*production.SearchResult {
	out := make([]*production.SearchResult, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, &production.SearchResult{BlueprintID: int(p[0]), MaxYield: p[1]})
	}
	return out
}

func TestAggregate_QualitySumsIDTimesYield(t *testing.T) {
	got, err := production.AggregateQuality.Aggregate(results([2]uint64{1, 9}, [2]uint64{2, 12}))

	require.NoError(t, err)
	assert.Equal(t, uint64(33), got)
}

func TestAggregate_ProductMultipliesYields(t *testing.T) {
	got, err := production.AggregateProduct.Aggregate(results([2]uint64{1, 56}, [2]uint64{2, 62}))

	require.NoError(t, err)
	assert.Equal(t, uint64(3472), got)
}

func TestAggregate_IsOrderIndependent(t *testing.T) {
	base := results([2]uint64{1, 3}, [2]uint64{2, 5}, [2]uint64{3, 7}, [2]uint64{4, 0})
	permutations := [][]int{
		{0, 1, 2, 3},
		{3, 2, 1, 0},
		{1, 3, 0, 2},
		{2, 0, 3, 1},
	}

	for _, mode := range []production.AggregationMode{production.AggregateQuality, production.AggregateProduct} {
		want, err := mode.Aggregate(base)
		require.NoError(t, err)
		for _, perm := range permutations {
			shuffled := make([]*production.SearchResult, len(base))
			for i, j := range perm {
				shuffled[i] = base[j]
			}
			got, err := mode.Aggregate(shuffled)
			require.NoError(t, err)
			assert.Equal(t, want, got, "%s %v", mode, perm)
		}
	}
}

func uniformResults(n int, yield uint64) []*production.SearchResult {
	out := make([]*production.SearchResult, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, &production.SearchResult{BlueprintID: i, MaxYield: yield})
	}
	return out
}

func TestAggregate_ProductOverflowReturnsError(t *testing.T) {
	tests := []struct {
		name  string
		count int
		yield uint64
		atID  int
	}{
		// 16^16 = 2^64 wraps to exactly zero
		{name: "wraps to zero", count: 16, yield: 16, atID: 16},
		{name: "thirty blueprints", count: 30, yield: 20, atID: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			input := uniformResults(tt.count, tt.yield)

			// Act
			got, err := production.AggregateProduct.Aggregate(input)

			// Assert
			var overflow *production.ErrAggregateOverflow
			require.True(t, errors.As(err, &overflow), "expected overflow error, got %v", err)
			assert.Equal(t, production.AggregateProduct, overflow.Mode)
			assert.Equal(t, tt.atID, overflow.BlueprintID)
			assert.Zero(t, got)
		})
	}
}

func TestAggregate_ProductAtUpperLimitSucceeds(t *testing.T) {
	// 2^63 × 1 still fits
	input := results([2]uint64{1, 1 << 63}, [2]uint64{2, 1})

	got, err := production.AggregateProduct.Aggregate(input)

	require.NoError(t, err)
	assert.Equal(t, uint64(1)<<63, got)
}

func TestAggregate_QualityOverflowReturnsError(t *testing.T) {
	t.Run("id times yield", func(t *testing.T) {
		_, err := production.AggregateQuality.Aggregate(results([2]uint64{2, 1 << 63}))

		var overflow *production.ErrAggregateOverflow
		require.True(t, errors.As(err, &overflow))
		assert.Equal(t, 2, overflow.BlueprintID)
	})

	t.Run("running sum", func(t *testing.T) {
		_, err := production.AggregateQuality.Aggregate(results([2]uint64{1, 1 << 63}, [2]uint64{1, 1 << 63}))

		var overflow *production.ErrAggregateOverflow
		require.True(t, errors.As(err, &overflow))
		assert.Equal(t, production.AggregateQuality, overflow.Mode)
	})
}

func TestAggregationMode_SelectBlueprints(t *testing.T) {
	bps := cheapBlueprints(t)

	assert.Len(t, production.AggregateProduct.SelectBlueprints(bps, 3), 3)
	assert.Equal(t, bps[:3], production.AggregateProduct.SelectBlueprints(bps, 3))
	assert.Len(t, production.AggregateProduct.SelectBlueprints(bps, 0), len(bps))
	assert.Len(t, production.AggregateProduct.SelectBlueprints(bps, 50), len(bps))
	assert.Len(t, production.AggregateQuality.SelectBlueprints(bps, 3), len(bps), "quality scores every blueprint")
}

func TestParseAggregationMode(t *testing.T) {
	mode, err := production.ParseAggregationMode(" Product ")
	require.NoError(t, err)
	assert.Equal(t, production.AggregateProduct, mode)

	mode, err = production.ParseAggregationMode("quality")
	require.NoError(t, err)
	assert.Equal(t, production.AggregateQuality, mode)

	_, err = production.ParseAggregationMode("average")
	var modeErr *production.ErrUnknownAggregation
	require.True(t, errors.As(err, &modeErr))
	assert.Equal(t, "average", modeErr.Mode)
}
