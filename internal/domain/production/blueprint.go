package production

// Blueprint is an immutable set of machine construction costs.
// costs[m] is what it takes to commission one machine producing m.
type Blueprint struct {
	id    int
	costs [ResourceCount]Amounts
}

// BlueprintCosts lists the six costs of the reference blueprint grammar in
// their textual order
type BlueprintCosts struct {
	OreMachineOre       int
	ClayMachineOre      int
	ObsidianMachineOre  int
	ObsidianMachineClay int
	GeodeMachineOre     int
	GeodeMachineObs     int
}

// NewBlueprint creates a blueprint from a full cost table
func NewBlueprint(id int, costs [ResourceCount]Amounts) (*Blueprint, error) {
	if id <= 0 {
		return nil, &ErrInvalidBlueprint{
			BlueprintID: id,
			Field:       "id",
			Reason:      "id must be a positive integer",
		}
	}

	return &Blueprint{id: id, costs: costs}, nil
}

// NewBlueprintFromCosts creates a blueprint from the six costs of the
// reference grammar. Negative costs are rejected.
func NewBlueprintFromCosts(id int, c BlueprintCosts) (*Blueprint, error) {
	fields := []struct {
		name  string
		value int
	}{
		{"ore_machine.ore", c.OreMachineOre},
		{"clay_machine.ore", c.ClayMachineOre},
		{"obsidian_machine.ore", c.ObsidianMachineOre},
		{"obsidian_machine.clay", c.ObsidianMachineClay},
		{"geode_machine.ore", c.GeodeMachineOre},
		{"geode_machine.obsidian", c.GeodeMachineObs},
	}
	for _, f := range fields {
		if f.value < 0 {
			return nil, &ErrInvalidBlueprint{
				BlueprintID: id,
				Field:       f.name,
				Reason:      "cost cannot be negative",
			}
		}
	}

	var costs [ResourceCount]Amounts
	costs[Ore][Ore] = uint64(c.OreMachineOre)
	costs[Clay][Ore] = uint64(c.ClayMachineOre)
	costs[Obsidian][Ore] = uint64(c.ObsidianMachineOre)
	costs[Obsidian][Clay] = uint64(c.ObsidianMachineClay)
	costs[Geode][Ore] = uint64(c.GeodeMachineOre)
	costs[Geode][Obsidian] = uint64(c.GeodeMachineObs)

	return NewBlueprint(id, costs)
}

// ID returns the blueprint identifier
func (b *Blueprint) ID() int {
	return b.id
}

// Cost returns the cost of commissioning one machine producing m
func (b *Blueprint) Cost(m Resource) Amounts {
	return b.costs[m]
}

// Costs returns a copy of the full cost table
func (b *Blueprint) Costs() [ResourceCount]Amounts {
	return b.costs
}

// MaxSpend returns, per resource, the largest amount any single recipe
// consumes. Only one machine can be commissioned per step, so a stockpile
// can never be drawn down faster than this per step.
func (b *Blueprint) MaxSpend() Amounts {
	var out Amounts
	for _, cost := range b.costs {
		for r, q := range cost {
			if q > out[r] {
				out[r] = q
			}
		}
	}
	return out
}
