package production_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/blueprint-optimizer/internal/domain/production"
)

func TestNewBlueprintFromCosts_MapsCostsToMachines(t *testing.T) {
	bp := exampleBlueprintOne(t)

	assert.Equal(t, 1, bp.ID())
	assert.Equal(t, production.Amounts{4, 0, 0, 0}, bp.Cost(production.Ore))
	assert.Equal(t, production.Amounts{2, 0, 0, 0}, bp.Cost(production.Clay))
	assert.Equal(t, production.Amounts{3, 14, 0, 0}, bp.Cost(production.Obsidian))
	assert.Equal(t, production.Amounts{2, 0, 7, 0}, bp.Cost(production.Geode))
	assert.Equal(t, production.Amounts{4, 14, 7, 0}, bp.MaxSpend())
}

func TestNewBlueprint_RejectsNonPositiveID(t *testing.T) {
	_, err := production.NewBlueprintFromCosts(0, production.BlueprintCosts{OreMachineOre: 1})

	var bpErr *production.ErrInvalidBlueprint
	require.True(t, errors.As(err, &bpErr))
	assert.Equal(t, "id", bpErr.Field)
}

func TestNewBlueprintFromCosts_RejectsNegativeCost(t *testing.T) {
	_, err := production.NewBlueprintFromCosts(3, production.BlueprintCosts{
		OreMachineOre:   4,
		GeodeMachineObs: -7,
	})

	var bpErr *production.ErrInvalidBlueprint
	require.True(t, errors.As(err, &bpErr))
	assert.Equal(t, 3, bpErr.BlueprintID)
	assert.Equal(t, "geode_machine.obsidian", bpErr.Field)
}

func TestResource_StringAndParse(t *testing.T) {
	for _, r := range production.AllResources() {
		parsed, err := production.ParseResource(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
		assert.True(t, r.IsValid())
	}

	_, err := production.ParseResource("diamond")
	assert.Error(t, err)
	assert.False(t, production.Resource(9).IsValid())
}

func TestInitialState(t *testing.T) {
	s := production.InitialState()

	assert.Equal(t, production.Amounts{1, 0, 0, 0}, s.Machines)
	assert.Equal(t, production.Amounts{}, s.Stock)
	assert.Equal(t, 0, s.Elapsed)
	assert.False(t, s.IsTerminal(24))
	assert.Equal(t, 24, s.Remaining(24))
}
