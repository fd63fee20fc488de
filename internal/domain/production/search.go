package production

import (
	"context"
	"fmt"
)

// ctxCheckInterval is how many state expansions pass between context checks
const ctxCheckInterval = 4096

// SearchOptions tunes the branch-and-bound search. Neither option changes
// the reported maximum.
type SearchOptions struct {
	// GreedyTerminal commissions a terminal machine whenever one is
	// affordable and generates no other branch from that state.
	GreedyTerminal bool

	// UseUpperBound discards states whose optimistic yield is below a
	// yield already known to be achievable.
	UseUpperBound bool

	// Progress, when set, is called once per completed time step
	Progress ProgressFunc
}

// DefaultSearchOptions enables every pruning rule
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		GreedyTerminal: true,
		UseUpperBound:  true,
	}
}

// ProgressFunc receives search progress. It may be called from several
// goroutines when blueprints are evaluated in parallel.
type ProgressFunc func(SearchProgress)

// SearchProgress describes the frontier after one time step
type SearchProgress struct {
	BlueprintID int
	Elapsed     int
	Horizon     int
	Frontier    int
	Floor       uint64
}

// SearchResult is the outcome of one blueprint search
type SearchResult struct {
	BlueprintID int
	Horizon     int
	MaxYield    uint64

	Explored     int // states expanded into successors
	Deduplicated int // states dropped by the visited set
	BoundPruned  int // states dropped by the upper bound
	Terminal     int // states that reached the horizon
	PeakFrontier int
}

// Searcher finds the maximum terminal yield of one blueprint
type Searcher struct {
	blueprint *Blueprint
	estimator *BoundEstimator
	brancher  *BranchGenerator
	opts      SearchOptions
}

// NewSearcher creates a searcher for bp
func NewSearcher(bp *Blueprint, opts SearchOptions) *Searcher {
	estimator := NewBoundEstimator(bp)
	return &Searcher{
		blueprint: bp,
		estimator: estimator,
		brancher:  NewBranchGenerator(bp, estimator, opts.GreedyTerminal),
		opts:      opts,
	}
}

// MaxYield returns the maximum terminal stockpile bp can reach in horizon steps
func MaxYield(ctx context.Context, bp *Blueprint, horizon int) (uint64, error) {
	result, err := NewSearcher(bp, DefaultSearchOptions()).Run(ctx, horizon)
	if err != nil {
		return 0, err
	}
	return result.MaxYield, nil
}

// Run explores the state space breadth-first. Every transition advances
// time by exactly one step, so the frontier always holds a single time
// level and the visited set only needs the keys of that level.
func (s *Searcher) Run(ctx context.Context, horizon int) (*SearchResult, error) {
	if err := ValidateHorizon(horizon); err != nil {
		return nil, err
	}

	result := &SearchResult{
		BlueprintID: s.blueprint.ID(),
		Horizon:     horizon,
	}

	frontier := []State{InitialState()}
	var floor uint64
	expansions := 0

	for len(frontier) > 0 {
		elapsed := frontier[0].Elapsed
		if elapsed >= horizon {
			for _, st := range frontier {
				result.Terminal++
				if y := st.Stock[Terminal]; y > result.MaxYield {
					result.MaxYield = y
				}
			}
			break
		}

		seen := make(map[StateKey]struct{}, len(frontier))
		next := make([]State, 0, 2*len(frontier))

		for _, st := range frontier {
			expansions++
			if expansions%ctxCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return nil, fmt.Errorf("search for blueprint %d cancelled at t=%d: %w",
						s.blueprint.ID(), elapsed, err)
				}
			}

			if st.Elapsed != elapsed {
				return nil, &ErrInvariantViolation{
					BlueprintID: s.blueprint.ID(),
					Elapsed:     st.Elapsed,
					Description: fmt.Sprintf("frontier mixes time levels %d and %d", elapsed, st.Elapsed),
				}
			}

			if s.opts.UseUpperBound {
				if g := st.GuaranteedYield(horizon); g > floor {
					floor = g
				}
				if s.estimator.UpperBound(st, horizon) < floor {
					result.BoundPruned++
					continue
				}
			}

			key := s.estimator.Key(st, horizon)
			if _, dup := seen[key]; dup {
				result.Deduplicated++
				continue
			}
			seen[key] = struct{}{}
			result.Explored++

			before := len(next)
			var err error
			next, err = s.brancher.AppendSuccessors(next, st)
			if err != nil {
				return nil, &ErrInvariantViolation{
					BlueprintID: s.blueprint.ID(),
					Elapsed:     st.Elapsed,
					Description: err.Error(),
				}
			}
			if err := checkTransitions(st, next[before:]); err != nil {
				return nil, &ErrInvariantViolation{
					BlueprintID: s.blueprint.ID(),
					Elapsed:     st.Elapsed,
					Description: err.Error(),
				}
			}
		}

		if len(next) > result.PeakFrontier {
			result.PeakFrontier = len(next)
		}
		if s.opts.Progress != nil {
			s.opts.Progress(SearchProgress{
				BlueprintID: s.blueprint.ID(),
				Elapsed:     elapsed + 1,
				Horizon:     horizon,
				Frontier:    len(next),
				Floor:       floor,
			})
		}
		frontier = next
	}

	// floor is reached by waiting from some explored state, so it is a
	// valid answer even if that waiting path was later pruned or merged
	if floor > result.MaxYield {
		result.MaxYield = floor
	}

	return result, nil
}

// checkTransitions verifies that no successor loses a machine or skips time
func checkTransitions(parent State, children []State) error {
	for _, c := range children {
		if c.Elapsed != parent.Elapsed+1 {
			return fmt.Errorf("successor at t=%d does not follow parent at t=%d", c.Elapsed, parent.Elapsed)
		}
		for _, r := range AllResources() {
			if c.Machines[r] < parent.Machines[r] {
				return fmt.Errorf("%s machines decreased from %d to %d", r, parent.Machines[r], c.Machines[r])
			}
		}
	}
	return nil
}
