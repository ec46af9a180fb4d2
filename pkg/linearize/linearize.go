// Package linearize thins a sorted resistance ladder to an evenly stepped
// subset.
package linearize

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/itohio/rnet/pkg/network"
)

// DefaultTolerance is the relative step tolerance used by the lab tables.
const DefaultTolerance = 0.87

// StepMode selects how the ideal step is derived from consecutive differences.
type StepMode int

const (
	// MaxStep uses the largest consecutive difference.
	MaxStep StepMode = iota
	// MedianStep uses the median consecutive difference.
	MedianStep
)

// String returns the mode name as used in configuration.
func (m StepMode) String() string {
	switch m {
	case MaxStep:
		return "max"
	case MedianStep:
		return "median"
	default:
		return fmt.Sprintf("StepMode(%d)", int(m))
	}
}

// ParseStepMode parses "max" or "median".
func ParseStepMode(s string) (StepMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "max":
		return MaxStep, nil
	case "median":
		return MedianStep, nil
	default:
		return MaxStep, fmt.Errorf("invalid step mode %q (want max or median)", s)
	}
}

// IdealStep returns the ideal step of an ascending sequence, or 0 when there
// are fewer than two finite values. Differences involving an open circuit
// (+Inf) are ignored.
func IdealStep(sorted []float64, mode StepMode) float64 {
	diffs := make([]float64, 0, len(sorted))
	for i := 1; i < len(sorted); i++ {
		if !finite(sorted[i-1]) || !finite(sorted[i]) {
			continue
		}
		diffs = append(diffs, sorted[i]-sorted[i-1])
	}
	if len(diffs) == 0 {
		return 0
	}

	if mode == MedianStep {
		slices.Sort(diffs)
		mid := len(diffs) / 2
		if len(diffs)%2 == 1 {
			return diffs[mid]
		}
		return (diffs[mid-1] + diffs[mid]) / 2
	}
	return slices.Max(diffs)
}

// Linearize keeps the first entry and then every entry whose distance from
// the last kept entry is within tolerance*ideal of the ideal step. Input must
// be sorted ascending by resistance. Open-circuit entries sort last; they are
// left out of the step scan and appended unchanged. The result is a new slice.
func Linearize(sorted []network.Entry, tolerance float64, mode StepMode) []network.Entry {
	end := len(sorted)
	for end > 0 && math.IsInf(sorted[end-1].Ohms, 1) {
		end--
	}
	ladder, open := sorted[:end], sorted[end:]
	if len(ladder) < 2 {
		return slices.Clone(sorted)
	}

	ideal := IdealStep(network.Ohms(ladder), mode)

	out := make([]network.Entry, 0, len(sorted))
	out = append(out, ladder[0])
	last := ladder[0].Ohms
	for _, e := range ladder[1:] {
		step := e.Ohms - last
		if math.Abs(step-ideal) <= tolerance*ideal {
			out = append(out, e)
			last = e.Ohms
		}
	}
	return append(out, open...)
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
