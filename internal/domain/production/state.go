package production

import "fmt"

// State is a snapshot of a factory: what it holds, what it owns and how
// many steps have passed. States are values; every transition returns a
// new one.
type State struct {
	Stock    Amounts
	Machines Amounts
	Elapsed  int
}

// InitialState returns the starting factory: one ore machine and nothing else
func InitialState() State {
	var s State
	s.Machines[Ore] = 1
	return s
}

// IsTerminal reports whether the state sits at the horizon
func (s State) IsTerminal(horizon int) bool {
	return s.Elapsed >= horizon
}

// Remaining returns the number of steps left before the horizon
func (s State) Remaining(horizon int) int {
	if s.Elapsed >= horizon {
		return 0
	}
	return horizon - s.Elapsed
}

// Wait advances one step without commissioning anything
func (s State) Wait() State {
	s.Stock = s.Stock.Plus(s.Machines)
	s.Elapsed++
	return s
}

// Build pays cost, collects one step of production from the machines owned
// before this step, then brings the new machine online.
func (s State) Build(machine Resource, cost Amounts) (State, error) {
	if !s.Stock.Covers(cost) {
		return s, fmt.Errorf("cannot afford %s machine: have %s, need %s", machine, s.Stock, cost)
	}
	s.Stock = s.Stock.Minus(cost).Plus(s.Machines)
	s.Machines[machine]++
	s.Elapsed++
	return s, nil
}

// GuaranteedYield is the terminal stockpile reached by waiting from s to
// the horizon. It is achievable, so it is a lower bound on the optimum.
func (s State) GuaranteedYield(horizon int) uint64 {
	r := uint64(s.Remaining(horizon))
	return s.Stock[Terminal] + s.Machines[Terminal]*r
}
