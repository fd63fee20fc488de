package production_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/blueprint-optimizer/internal/domain/production"
)

func exampleBlueprintOne(t *testing.T) *production.Blueprint {
	t.Helper()
	bp, err := production.NewBlueprintFromCosts(1, production.BlueprintCosts{
		OreMachineOre:       4,
		ClayMachineOre:      2,
		ObsidianMachineOre:  3,
		ObsidianMachineClay: 14,
		GeodeMachineOre:     2,
		GeodeMachineObs:     7,
	})
	require.NoError(t, err)
	return bp
}

func exampleBlueprintTwo(t *testing.T) *production.Blueprint {
	t.Helper()
	bp, err := production.NewBlueprintFromCosts(2, production.BlueprintCosts{
		OreMachineOre:       2,
		ClayMachineOre:      3,
		ObsidianMachineOre:  3,
		ObsidianMachineClay: 8,
		GeodeMachineOre:     3,
		GeodeMachineObs:     12,
	})
	require.NoError(t, err)
	return bp
}

// cheapBlueprints produce geodes within a few steps, so exhaustive search
// over short horizons has something to find
func cheapBlueprints(t *testing.T) []*production.Blueprint {
	t.Helper()
	specs := []production.BlueprintCosts{
		{OreMachineOre: 1, ClayMachineOre: 1, ObsidianMachineOre: 1, ObsidianMachineClay: 1, GeodeMachineOre: 1, GeodeMachineObs: 1},
		{OreMachineOre: 2, ClayMachineOre: 1, ObsidianMachineOre: 1, ObsidianMachineClay: 2, GeodeMachineOre: 1, GeodeMachineObs: 2},
		{OreMachineOre: 1, ClayMachineOre: 2, ObsidianMachineOre: 2, ObsidianMachineClay: 1, GeodeMachineOre: 2, GeodeMachineObs: 1},
		{OreMachineOre: 3, ClayMachineOre: 1, ObsidianMachineOre: 2, ObsidianMachineClay: 2, GeodeMachineOre: 1, GeodeMachineObs: 3},
		{OreMachineOre: 0, ClayMachineOre: 1, ObsidianMachineOre: 1, ObsidianMachineClay: 0, GeodeMachineOre: 2, GeodeMachineObs: 1},
	}

	out := make([]*production.Blueprint, 0, len(specs))
	for i, c := range specs {
		bp, err := production.NewBlueprintFromCosts(100+i, c)
		require.NoError(t, err)
		out = append(out, bp)
	}
	return out
}

// exhaustiveYield tries every affordable action at every step with no
// pruning of any kind
func exhaustiveYield(bp *production.Blueprint, s production.State, horizon int) uint64 {
	if s.IsTerminal(horizon) {
		return s.Stock[production.Geode]
	}

	best := exhaustiveYield(bp, s.Wait(), horizon)
	for _, m := range production.AllResources() {
		next, err := s.Build(m, bp.Cost(m))
		if err != nil {
			continue
		}
		if y := exhaustiveYield(bp, next, horizon); y > best {
			best = y
		}
	}
	return best
}
