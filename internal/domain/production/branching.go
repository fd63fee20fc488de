package production

// BranchGenerator enumerates the legal successors of a state, one step later
type BranchGenerator struct {
	blueprint      *Blueprint
	estimator      *BoundEstimator
	greedyTerminal bool
}

// NewBranchGenerator creates a generator for bp. With greedyTerminal set,
// a state that can afford a terminal machine has that build as its only
// successor.
func NewBranchGenerator(bp *Blueprint, estimator *BoundEstimator, greedyTerminal bool) *BranchGenerator {
	return &BranchGenerator{
		blueprint:      bp,
		estimator:      estimator,
		greedyTerminal: greedyTerminal,
	}
}

// Successors returns every successor of s
func (g *BranchGenerator) Successors(s State) ([]State, error) {
	return g.AppendSuccessors(make([]State, 0, ResourceCount+1), s)
}

// AppendSuccessors appends the successors of s to dst
func (g *BranchGenerator) AppendSuccessors(dst []State, s State) ([]State, error) {
	terminalCost := g.blueprint.Cost(Terminal)

	if g.greedyTerminal && s.Stock.Covers(terminalCost) {
		next, err := s.Build(Terminal, terminalCost)
		if err != nil {
			return dst, err
		}
		return append(dst, next), nil
	}

	for _, m := range AllResources() {
		if m == Terminal && g.greedyTerminal {
			continue
		}
		cost := g.blueprint.Cost(m)
		if !s.Stock.Covers(cost) || !g.estimator.CanUse(m, s.Machines[m]) {
			continue
		}
		next, err := s.Build(m, cost)
		if err != nil {
			return dst, err
		}
		dst = append(dst, next)
	}

	return append(dst, s.Wait()), nil
}
