package helpers

import (
	"testing"

	"github.com/andrescamacho/blueprint-optimizer/internal/domain/production"
)

// ExampleBlueprintList is the two-blueprint sample whose quality answer at
// horizon 24 is 33 and whose product answer at horizon 32 is 3472
const ExampleBlueprintList = `Blueprint 1: Each ore robot costs 4 ore. Each clay robot costs 2 ore. Each obsidian robot costs 3 ore and 14 clay. Each geode robot costs 2 ore and 7 obsidian.
Blueprint 2: Each ore robot costs 2 ore. Each clay robot costs 3 ore. Each obsidian robot costs 3 ore and 8 clay. Each geode robot costs 3 ore and 12 obsidian.
`

// NewExampleBlueprints returns the two sample blueprints as domain objects
func NewExampleBlueprints(t *testing.T) []*production.Blueprint {
	t.Helper()

	first, err := production.NewBlueprintFromCosts(1, production.BlueprintCosts{
		OreMachineOre: 4, ClayMachineOre: 2,
		ObsidianMachineOre: 3, ObsidianMachineClay: 14,
		GeodeMachineOre: 2, GeodeMachineObs: 7,
	})
	if err != nil {
		t.Fatalf("failed to build blueprint 1: %v", err)
	}

	second, err := production.NewBlueprintFromCosts(2, production.BlueprintCosts{
		OreMachineOre: 2, ClayMachineOre: 3,
		ObsidianMachineOre: 3, ObsidianMachineClay: 8,
		GeodeMachineOre: 3, GeodeMachineObs: 12,
	})
	if err != nil {
		t.Fatalf("failed to build blueprint 2: %v", err)
	}

	return []*production.Blueprint{first, second}
}
