package query

import (
	"math"
	"sort"
)

// Ordinal size tags for the spread and break-rate of a score
// distribution, largest first.
const (
	veryLarge = iota
	large
	mediumLarge
	medium
	mediumSmall
	small
	verySmall
)

// Empirically tuned lowering tables indexed by the spread tag.
var (
	cutoffCoeffs = [7]int{6, 5, 4, 4, 4, 3, 2}
	cutoffRates  = [7]int{3, 3, 2, 2, 2, 1, 1}
)

// tagOf classifies a spread or break-rate value into one of the seven
// ordinal tags via fixed thresholds.
func tagOf(value float64) int {
	switch {
	case value > 0.85:
		return veryLarge
	case value > 0.7:
		return large
	case value > 0.6:
		return mediumLarge
	case value > 0.4:
		return medium
	case value > 0.3:
		return mediumSmall
	case value > 0.15:
		return small
	default:
		return verySmall
	}
}

// Percentile computes the p-th percentile of values with linear
// interpolation between closest ranks.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	frac := rank - float64(lo)
	if lo+1 >= len(sorted) {
		return sorted[lo]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Cutoff returns the score percentile at which keyword addition stops.
//
// It walks the percentile buckets 90,80,...,0, measuring how fast the
// scores drop across each 10-point interval, and returns the bucket with
// the steepest drop. The overall spread and the ratio of the steepest
// drop to it additionally select a lowering amount from the tuned tables.
func Cutoff(scores []float64) int {
	cumulative := 0.0
	curMax := 0.0
	position := 0

	for p := 90; p >= 0; p -= 10 {
		diff := Percentile(scores, float64(p+10)) - Percentile(scores, float64(p))
		cumulative += diff
		if diff > curMax {
			position = p
			curMax = diff
		}
	}

	// A flat distribution has no drop to find.
	if cumulative == 0 {
		return position
	}

	spread := tagOf(cumulative)
	breakRate := tagOf(curMax / cumulative)

	// The lowered cutoff has never been applied; the raw steepest-drop
	// bucket is what query quality was tuned against.
	// TODO: benchmark query quality with the lowered cutoff enabled.
	_ = lowerByMax(position, cutoffCoeffs[spread]*(breakRate+1), cutoffRates[spread])

	return position
}

// lowerByMax lowers position by at most maximum, stepping the attempted
// amount down by change until the result stays non-negative. When no
// non-negative result exists, position is returned unchanged.
func lowerByMax(position, maximum, change int) int {
	for maximum >= 0 {
		if position-maximum >= 0 {
			return position - maximum
		}
		maximum -= change
	}
	return position
}
