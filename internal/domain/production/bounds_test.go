package production_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/blueprint-optimizer/internal/domain/production"
)

func TestBoundEstimator_MaxUseful(t *testing.T) {
	estimator := production.NewBoundEstimator(exampleBlueprintOne(t))

	tests := []struct {
		resource production.Resource
		want     uint64
	}{
		{production.Ore, 4},
		{production.Clay, 14},
		{production.Obsidian, 7},
	}
	for _, tt := range tests {
		limit, capped := estimator.MaxUseful(tt.resource)
		assert.True(t, capped, tt.resource.String())
		assert.Equal(t, tt.want, limit, tt.resource.String())
	}

	_, capped := estimator.MaxUseful(production.Geode)
	assert.False(t, capped, "terminal resource has no cap")
	assert.True(t, estimator.CanUse(production.Geode, 1000))
}

func TestBoundEstimator_KeySaturatesNonTerminalResources(t *testing.T) {
	estimator := production.NewBoundEstimator(exampleBlueprintOne(t))
	s := production.State{
		Stock:    production.Amounts{50, 100, 3, 40},
		Machines: production.Amounts{9, 2, 1, 6},
		Elapsed:  22,
	}

	key := estimator.Key(s, 24)

	// two steps remain: at most 2 × costliest recipe can still be spent
	assert.Equal(t, production.Amounts{8, 28, 3, 40}, key.Stock)
	assert.Equal(t, production.Amounts{4, 2, 1, 6}, key.Machines)
	assert.Equal(t, 22, key.Elapsed)
}

func TestBoundEstimator_KeyMergesEquivalentStates(t *testing.T) {
	estimator := production.NewBoundEstimator(exampleBlueprintTwo(t))
	a := production.State{Stock: production.Amounts{30, 5, 0, 1}, Machines: production.Amounts{2, 1, 0, 1}, Elapsed: 23}
	b := production.State{Stock: production.Amounts{31, 5, 0, 1}, Machines: production.Amounts{2, 1, 0, 1}, Elapsed: 23}

	assert.Equal(t, estimator.Key(a, 24), estimator.Key(b, 24))

	c := b
	c.Stock[production.Geode] = 2
	assert.NotEqual(t, estimator.Key(a, 24), estimator.Key(c, 24))
}

func TestBoundEstimator_UpperBoundDominatesSearch(t *testing.T) {
	bp := exampleBlueprintOne(t)
	estimator := production.NewBoundEstimator(bp)

	for _, horizon := range []int{10, 18, 24} {
		yield, err := production.MaxYield(context.Background(), bp, horizon)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, estimator.UpperBound(production.InitialState(), horizon), yield)
	}
}

func TestBoundEstimator_UpperBound(t *testing.T) {
	estimator := production.NewBoundEstimator(exampleBlueprintOne(t))
	s := production.State{
		Stock:    production.Amounts{0, 0, 0, 3},
		Machines: production.Amounts{1, 0, 0, 2},
		Elapsed:  20,
	}

	// 3 held + 2 machines × 4 steps + (3+2+1+0) from a new machine every step
	assert.Equal(t, uint64(17), estimator.UpperBound(s, 24))
	assert.Equal(t, uint64(11), s.GuaranteedYield(24))
	assert.Equal(t, uint64(3), estimator.UpperBound(s, 20))
}
