package production

import "fmt"

// MaxHorizon is the largest horizon accepted by the search. Quantities are
// 64-bit, so this is a tractability limit rather than an overflow limit.
const MaxHorizon = 64

// ErrInvalidHorizon indicates a horizon outside 1..MaxHorizon
type ErrInvalidHorizon struct {
	Horizon int
}

func (e *ErrInvalidHorizon) Error() string {
	if e.Horizon <= 0 {
		return fmt.Sprintf("invalid horizon %d: must be a positive number of time steps", e.Horizon)
	}
	return fmt.Sprintf("invalid horizon %d: must not exceed %d time steps", e.Horizon, MaxHorizon)
}

// ErrInvalidBlueprint indicates a blueprint that cannot be constructed
type ErrInvalidBlueprint struct {
	BlueprintID int
	Field       string
	Reason      string
}

func (e *ErrInvalidBlueprint) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid blueprint %d: %s: %s", e.BlueprintID, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid blueprint %d: %s", e.BlueprintID, e.Reason)
}

// ErrInvariantViolation indicates the search reached a state that its own
// rules should make impossible. It is never retried.
type ErrInvariantViolation struct {
	BlueprintID int
	Elapsed     int
	Description string
}

func (e *ErrInvariantViolation) Error() string {
	return fmt.Sprintf("invariant violated for blueprint %d at t=%d: %s",
		e.BlueprintID, e.Elapsed, e.Description)
}

// ErrEmptyBlueprintList indicates an evaluation was requested over no blueprints
type ErrEmptyBlueprintList struct {
	Mode AggregationMode
}

func (e *ErrEmptyBlueprintList) Error() string {
	return fmt.Sprintf("no blueprints to evaluate in %s mode", e.Mode)
}

// ErrDuplicateBlueprint indicates two blueprints share an id
type ErrDuplicateBlueprint struct {
	BlueprintID int
}

func (e *ErrDuplicateBlueprint) Error() string {
	return fmt.Sprintf("duplicate blueprint id %d", e.BlueprintID)
}

// ErrAggregateOverflow indicates the folded answer does not fit in 64 bits
type ErrAggregateOverflow struct {
	Mode        AggregationMode
	BlueprintID int
}

func (e *ErrAggregateOverflow) Error() string {
	return fmt.Sprintf("%s aggregate overflows uint64 at blueprint %d", e.Mode, e.BlueprintID)
}

// ErrUnknownAggregation indicates an aggregation mode name that is not supported
type ErrUnknownAggregation struct {
	Mode string
}

func (e *ErrUnknownAggregation) Error() string {
	return fmt.Sprintf("unknown aggregation mode %q (expected %q or %q)",
		e.Mode, AggregateQuality, AggregateProduct)
}

// ValidateHorizon returns an *ErrInvalidHorizon for horizons outside 1..MaxHorizon
func ValidateHorizon(horizon int) error {
	if horizon <= 0 || horizon > MaxHorizon {
		return &ErrInvalidHorizon{Horizon: horizon}
	}
	return nil
}
