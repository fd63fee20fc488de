package production

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Evaluation is the outcome of scoring a blueprint list under one horizon
type Evaluation struct {
	Mode        AggregationMode
	Horizon     int
	PrefixLimit int
	Aggregate   uint64
	Results     []*BlueprintResult
}

// BlueprintResult pairs a search result with its wall-clock duration
type BlueprintResult struct {
	*SearchResult
	Duration time.Duration
}

// Evaluator runs one independent search per blueprint on a bounded worker pool
type Evaluator struct {
	workers int
	opts    SearchOptions
}

// NewEvaluator creates an evaluator. A non-positive worker count uses one
// worker per CPU.
func NewEvaluator(workers int, opts SearchOptions) *Evaluator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Evaluator{workers: workers, opts: opts}
}

// Workers returns the size of the worker pool
func (e *Evaluator) Workers() int {
	return e.workers
}

// Evaluate searches every selected blueprint and folds the yields with mode.
// Any failing search fails the whole evaluation; no partial aggregate is
// returned.
func (e *Evaluator) Evaluate(
	ctx context.Context,
	blueprints []*Blueprint,
	horizon int,
	mode AggregationMode,
	prefixLimit int,
) (*Evaluation, error) {
	if err := ValidateHorizon(horizon); err != nil {
		return nil, err
	}
	if !mode.IsValid() {
		return nil, &ErrUnknownAggregation{Mode: string(mode)}
	}
	if err := checkUniqueIDs(blueprints); err != nil {
		return nil, err
	}

	selected := mode.SelectBlueprints(blueprints, prefixLimit)
	if len(selected) == 0 {
		return nil, &ErrEmptyBlueprintList{Mode: mode}
	}

	// each task writes only its own slot
	results := make([]*BlueprintResult, len(selected))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, bp := range selected {
		i, bp := i, bp
		g.Go(func() error {
			start := time.Now()
			res, err := NewSearcher(bp, e.opts).Run(gctx, horizon)
			if err != nil {
				return fmt.Errorf("blueprint %d: %w", bp.ID(), err)
			}
			results[i] = &BlueprintResult{SearchResult: res, Duration: time.Since(start)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	searchResults := make([]*SearchResult, len(results))
	for i, r := range results {
		searchResults[i] = r.SearchResult
	}

	aggregate, err := mode.Aggregate(searchResults)
	if err != nil {
		return nil, err
	}

	return &Evaluation{
		Mode:        mode,
		Horizon:     horizon,
		PrefixLimit: prefixLimit,
		Aggregate:   aggregate,
		Results:     results,
	}, nil
}

func checkUniqueIDs(blueprints []*Blueprint) error {
	seen := make(map[int]struct{}, len(blueprints))
	for _, bp := range blueprints {
		if bp == nil {
			return &ErrInvalidBlueprint{Reason: "nil blueprint in list"}
		}
		if _, dup := seen[bp.ID()]; dup {
			return &ErrDuplicateBlueprint{BlueprintID: bp.ID()}
		}
		seen[bp.ID()] = struct{}{}
	}
	return nil
}
