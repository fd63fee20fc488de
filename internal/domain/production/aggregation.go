package production

import (
	"math/bits"
	"strings"
)

// AggregationMode selects how per-blueprint yields fold into one answer
type AggregationMode string

const (
	// AggregateQuality sums id × yield over every blueprint
	AggregateQuality AggregationMode = "quality"

	// AggregateProduct multiplies the yields of a prefix of the blueprint list
	AggregateProduct AggregationMode = "product"
)

// ParseAggregationMode converts a mode name into an AggregationMode
func ParseAggregationMode(s string) (AggregationMode, error) {
	mode := AggregationMode(strings.ToLower(strings.TrimSpace(s)))
	if !mode.IsValid() {
		return "", &ErrUnknownAggregation{Mode: s}
	}
	return mode, nil
}

// IsValid reports whether m is a supported mode
func (m AggregationMode) IsValid() bool {
	return m == AggregateQuality || m == AggregateProduct
}

func (m AggregationMode) String() string {
	return string(m)
}

// SelectBlueprints returns the blueprints m scores. Product mode keeps the
// first prefixLimit entries; a non-positive limit keeps all of them.
// Quality mode always scores the whole list.
func (m AggregationMode) SelectBlueprints(blueprints []*Blueprint, prefixLimit int) []*Blueprint {
	if m == AggregateProduct && prefixLimit > 0 && prefixLimit < len(blueprints) {
		return blueprints[:prefixLimit]
	}
	return blueprints
}

// Aggregate folds the yields in results. Both folds are commutative, so
// the order of results does not matter. A fold that does not fit in 64
// bits returns *ErrAggregateOverflow instead of a wrapped value.
func (m AggregationMode) Aggregate(results []*SearchResult) (uint64, error) {
	switch m {
	case AggregateProduct:
		total := uint64(1)
		for _, r := range results {
			hi, lo := bits.Mul64(total, r.MaxYield)
			if hi != 0 {
				return 0, &ErrAggregateOverflow{Mode: m, BlueprintID: r.BlueprintID}
			}
			total = lo
		}
		return total, nil
	default:
		var total uint64
		for _, r := range results {
			hi, score := bits.Mul64(uint64(r.BlueprintID), r.MaxYield)
			if hi != 0 {
				return 0, &ErrAggregateOverflow{Mode: m, BlueprintID: r.BlueprintID}
			}
			sum, carry := bits.Add64(total, score, 0)
			if carry != 0 {
				return 0, &ErrAggregateOverflow{Mode: m, BlueprintID: r.BlueprintID}
			}
			total = sum
		}
		return total, nil
	}
}
