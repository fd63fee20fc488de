package production

// StateKey is the saturated projection of a State used to deduplicate the
// search. Two states with equal keys have the same best achievable yield.
type StateKey struct {
	Stock    Amounts
	Machines Amounts
	Elapsed  int
}

// BoundEstimator computes saturation caps and optimistic yield bounds for
// one blueprint
type BoundEstimator struct {
	maxUseful Amounts
}

// NewBoundEstimator precomputes the per-resource machine caps of bp
func NewBoundEstimator(bp *Blueprint) *BoundEstimator {
	return &BoundEstimator{maxUseful: bp.MaxSpend()}
}

// MaxUseful returns the largest machine count of r worth owning. The
// terminal resource has no cap, reported by ok == false.
func (e *BoundEstimator) MaxUseful(r Resource) (limit uint64, ok bool) {
	if r == Terminal {
		return 0, false
	}
	return e.maxUseful[r], true
}

// CanUse reports whether one more machine producing r could ever be spent
func (e *BoundEstimator) CanUse(r Resource, owned uint64) bool {
	limit, capped := e.MaxUseful(r)
	return !capped || owned < limit
}

// Key saturates s for deduplication. Machine counts are capped at their
// useful maximum and stockpiles at the most that could still be spent in
// the remaining steps. The terminal resource is never capped.
func (e *BoundEstimator) Key(s State, horizon int) StateKey {
	remaining := uint64(s.Remaining(horizon))
	key := StateKey{Elapsed: s.Elapsed}

	for _, r := range AllResources() {
		limit, capped := e.MaxUseful(r)
		if !capped {
			key.Stock[r] = s.Stock[r]
			key.Machines[r] = s.Machines[r]
			continue
		}
		key.Machines[r] = min(s.Machines[r], limit)
		key.Stock[r] = min(s.Stock[r], remaining*limit)
	}

	return key
}

// UpperBound is an optimistic terminal yield for s: current stock, plus
// what owned terminal machines produce, plus one new terminal machine
// commissioned on every remaining step.
func (e *BoundEstimator) UpperBound(s State, horizon int) uint64 {
	r := uint64(s.Remaining(horizon))
	if r == 0 {
		return s.Stock[Terminal]
	}
	return s.Stock[Terminal] + s.Machines[Terminal]*r + r*(r-1)/2
}
