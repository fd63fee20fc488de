package evaluation

import (
	"fmt"
	"time"

	"github.com/andrescamacho/blueprint-optimizer/internal/domain/production"
)

// Run is a recorded evaluation of a blueprint list. Runs are immutable once
// created and are kept only as an audit log of answers.
type Run struct {
	id          string
	source      string
	mode        production.AggregationMode
	horizon     int
	prefixLimit int
	aggregate   uint64
	startedAt   time.Time
	duration    time.Duration
	results     []*BlueprintOutcome
}

// BlueprintOutcome is the per-blueprint part of a run
type BlueprintOutcome struct {
	BlueprintID  int
	Yield        uint64
	Explored     int
	Deduplicated int
	BoundPruned  int
	PeakFrontier int
	Duration     time.Duration
}

// NewRun creates a run from a finished evaluation
func NewRun(id, source string, startedAt time.Time, duration time.Duration, eval *production.Evaluation) (*Run, error) {
	if id == "" {
		return nil, &ErrInvalidRun{Field: "id", Reason: "run id cannot be empty"}
	}
	if eval == nil {
		return nil, &ErrInvalidRun{Field: "evaluation", Reason: "evaluation cannot be nil"}
	}

	outcomes := make([]*BlueprintOutcome, 0, len(eval.Results))
	for _, r := range eval.Results {
		outcomes = append(outcomes, &BlueprintOutcome{
			BlueprintID:  r.BlueprintID,
			Yield:        r.MaxYield,
			Explored:     r.Explored,
			Deduplicated: r.Deduplicated,
			BoundPruned:  r.BoundPruned,
			PeakFrontier: r.PeakFrontier,
			Duration:     r.Duration,
		})
	}

	return &Run{
		id:          id,
		source:      source,
		mode:        eval.Mode,
		horizon:     eval.Horizon,
		prefixLimit: eval.PrefixLimit,
		aggregate:   eval.Aggregate,
		startedAt:   startedAt,
		duration:    duration,
		results:     outcomes,
	}, nil
}

// ReconstructRun rebuilds a run from persisted fields
func ReconstructRun(
	id string,
	source string,
	mode production.AggregationMode,
	horizon int,
	prefixLimit int,
	aggregate uint64,
	startedAt time.Time,
	duration time.Duration,
	results []*BlueprintOutcome,
) *Run {
	return &Run{
		id:          id,
		source:      source,
		mode:        mode,
		horizon:     horizon,
		prefixLimit: prefixLimit,
		aggregate:   aggregate,
		startedAt:   startedAt,
		duration:    duration,
		results:     results,
	}
}

func (r *Run) ID() string { return r.id }
func (r *Run) Source() string { return r.source }
func (r *Run) Mode() production.AggregationMode { return r.mode }
func (r *Run) Horizon() int { return r.horizon }
func (r *Run) PrefixLimit() int { return r.prefixLimit }
func (r *Run) Aggregate() uint64 { return r.aggregate }
func (r *Run) StartedAt() time.Time { return r.startedAt }
func (r *Run) Duration() time.Duration { return r.duration }
func (r *Run) Results() []*BlueprintOutcome { return r.results }

// String returns a one-line summary of the run
func (r *Run) String() string {
	return fmt.Sprintf("Run[%s, mode=%s, horizon=%d, blueprints=%d, answer=%d]",
		r.id, r.mode, r.horizon, len(r.results), r.aggregate)
}

// ErrInvalidRun indicates a run that cannot be constructed
type ErrInvalidRun struct {
	Field  string
	Reason string
}

func (e *ErrInvalidRun) Error() string {
	return fmt.Sprintf("invalid run: %s: %s", e.Field, e.Reason)
}

// ErrRunNotFound indicates no run exists with the given id
type ErrRunNotFound struct {
	RunID string
}

func (e *ErrRunNotFound) Error() string {
	return fmt.Sprintf("evaluation run not found: %s", e.RunID)
}
