package production_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/blueprint-optimizer/internal/domain/production"
)

func newBrancher(bp *production.Blueprint, greedy bool) *production.BranchGenerator {
	return production.NewBranchGenerator(bp, production.NewBoundEstimator(bp), greedy)
}

func TestBranchGenerator_InitialStateOnlyWaits(t *testing.T) {
	bp := exampleBlueprintOne(t)

	successors, err := newBrancher(bp, true).Successors(production.InitialState())

	require.NoError(t, err)
	require.Len(t, successors, 1)
	assert.Equal(t, 1, successors[0].Elapsed)
	assert.Equal(t, uint64(1), successors[0].Stock[production.Ore])
	assert.Equal(t, uint64(1), successors[0].Machines[production.Ore])
}

func TestBranchGenerator_GreedyTerminalIsOnlySuccessor(t *testing.T) {
	// Arrange
	bp := exampleBlueprintOne(t)
	s := production.State{
		Stock:    production.Amounts{10, 20, 7, 0},
		Machines: production.Amounts{1, 2, 1, 0},
		Elapsed:  10,
	}

	// Act
	successors, err := newBrancher(bp, true).Successors(s)

	// Assert
	require.NoError(t, err)
	require.Len(t, successors, 1)
	next := successors[0]
	assert.Equal(t, uint64(1), next.Machines[production.Geode])
	// paid 2 ore + 7 obsidian, then collected one step with the old machines
	assert.Equal(t, production.Amounts{9, 22, 1, 0}, next.Stock)
	assert.Equal(t, 11, next.Elapsed)
}

func TestBranchGenerator_WithoutGreedyEnumeratesTerminalAlongsideOthers(t *testing.T) {
	bp := exampleBlueprintOne(t)
	s := production.State{
		Stock:    production.Amounts{10, 20, 7, 0},
		Machines: production.Amounts{1, 2, 1, 0},
		Elapsed:  10,
	}

	successors, err := newBrancher(bp, false).Successors(s)

	require.NoError(t, err)
	// ore, clay, obsidian, geode machines plus waiting
	assert.Len(t, successors, 5)
}

func TestBranchGenerator_BuildsEveryAffordableMachineAndWaits(t *testing.T) {
	bp := exampleBlueprintOne(t)
	s := production.State{
		Stock:    production.Amounts{4, 14, 0, 0},
		Machines: production.Amounts{1, 1, 0, 0},
		Elapsed:  5,
	}

	successors, err := newBrancher(bp, true).Successors(s)

	require.NoError(t, err)
	require.Len(t, successors, 4)

	var built []production.Resource
	for _, next := range successors {
		for _, r := range production.AllResources() {
			if next.Machines[r] > s.Machines[r] {
				built = append(built, r)
			}
		}
	}
	assert.Equal(t, []production.Resource{production.Ore, production.Clay, production.Obsidian}, built)
	assert.Equal(t, s.Machines, successors[3].Machines, "last successor is the idle one")
}

func TestBranchGenerator_SkipsSaturatedMachineTypes(t *testing.T) {
	bp := exampleBlueprintOne(t)
	// 4 ore machines already cover the costliest ore recipe
	s := production.State{
		Stock:    production.Amounts{100, 0, 0, 0},
		Machines: production.Amounts{4, 14, 0, 0},
		Elapsed:  3,
	}

	successors, err := newBrancher(bp, true).Successors(s)

	require.NoError(t, err)
	for _, next := range successors {
		assert.Equal(t, uint64(4), next.Machines[production.Ore])
		assert.Equal(t, uint64(14), next.Machines[production.Clay])
	}
}

func TestBranchGenerator_NewMachineProducesFromNextStep(t *testing.T) {
	bp := exampleBlueprintTwo(t)
	s := production.State{
		Stock:    production.Amounts{2, 0, 0, 0},
		Machines: production.Amounts{1, 0, 0, 0},
		Elapsed:  2,
	}

	next, err := s.Build(production.Ore, bp.Cost(production.Ore))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), next.Stock[production.Ore], "only the old machine produced")
	assert.Equal(t, uint64(2), next.Machines[production.Ore])

	after := next.Wait()
	assert.Equal(t, uint64(3), after.Stock[production.Ore])
}

func TestState_BuildRejectsUnaffordableMachine(t *testing.T) {
	bp := exampleBlueprintOne(t)

	_, err := production.InitialState().Build(production.Geode, bp.Cost(production.Geode))

	assert.Error(t, err)
}

func TestBranchGenerator_MachineCountsNeverDecrease(t *testing.T) {
	bp := exampleBlueprintTwo(t)
	brancher := newBrancher(bp, true)

	frontier := []production.State{production.InitialState()}
	for step := 0; step < 10; step++ {
		var next []production.State
		for _, parent := range frontier {
			children, err := brancher.Successors(parent)
			require.NoError(t, err)
			for _, child := range children {
				if child.Elapsed != parent.Elapsed+1 {
					t.Fatalf("successor skipped time: %d -> %d", parent.Elapsed, child.Elapsed)
				}
				for _, r := range production.AllResources() {
					if child.Machines[r] < parent.Machines[r] {
						t.Fatalf("%s machines decreased: %v -> %v", r, parent, child)
					}
					// stock can only grow by one step of production
					if child.Stock[r] > parent.Stock[r]+parent.Machines[r] {
						t.Fatalf("%s stock wrapped or overgrew: %v -> %v", r, parent, child)
					}
				}
			}
			next = append(next, children...)
		}
		frontier = next
	}
	assert.NotEmpty(t, frontier)
}
