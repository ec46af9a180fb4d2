// Package cost scores how evenly and completely a network's achievable
// resistances cover a target window.
package cost

import (
	"slices"

	"github.com/itohio/rnet/pkg/network"
)

// Sentinel is returned for networks with fewer than two values in the window.
const Sentinel = 1e6

// Params configures the score.
type Params struct {
	RegionMin     float64 // Lower bound of the target window (ohms)
	RegionMax     float64 // Upper bound of the target window (ohms)
	MinCount      int     // Desired number of values inside the window
	PenaltyWeight float64 // Weight of the squared count shortfall
}

// Breakdown holds the individual cost terms of a score.
type Breakdown struct {
	Count         int     // Values inside the window
	CountPenalty  float64 // PenaltyWeight * (MinCount - Count)^2 when short
	GapVariance   float64 // Variance of consecutive gaps between sorted values
	RangePenalty  float64 // (desired span - covered span)^2
	Total         float64
}

// Score returns the cost of n, lower is better.
func Score(n network.Network, p Params) float64 {
	return Evaluate(n, p).Total
}

// Evaluate computes the cost terms of n. The total is Sentinel when fewer
// than two achievable values fall inside the window.
func Evaluate(n network.Network, p Params) Breakdown {
	values := network.AchievableValues(n)

	region := make([]float64, 0, len(values))
	for _, v := range values {
		if v >= p.RegionMin && v <= p.RegionMax {
			region = append(region, v)
		}
	}

	b := Breakdown{Count: len(region)}
	if b.Count < p.MinCount {
		short := float64(p.MinCount - b.Count)
		b.CountPenalty = p.PenaltyWeight * short * short
	}
	if b.Count < 2 {
		b.Total = Sentinel
		return b
	}

	slices.Sort(region)
	b.GapVariance = gapVariance(region)

	shortfall := (p.RegionMax - p.RegionMin) - (region[len(region)-1] - region[0])
	b.RangePenalty = shortfall * shortfall

	b.Total = b.GapVariance + b.RangePenalty + b.CountPenalty
	return b
}

// gapVariance returns the population variance of consecutive differences of
// sorted values.
func gapVariance(sorted []float64) float64 {
	gaps := len(sorted) - 1
	var mean float64
	for i := 1; i < len(sorted); i++ {
		mean += sorted[i] - sorted[i-1]
	}
	mean /= float64(gaps)

	var variance float64
	for i := 1; i < len(sorted); i++ {
		d := sorted[i] - sorted[i-1] - mean
		variance += d * d
	}
	return variance / float64(gaps)
}
