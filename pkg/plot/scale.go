package plot

import (
	"math"
	"strconv"
)

// autoscale returns the Y range covering every finite value of series with a
// 10% margin. Empty or non-finite input yields [0, 1].
func autoscale(series ...[]float64) (lo, hi float64) {
	found := false
	for _, s := range series {
		for _, v := range s {
			if math.IsInf(v, 0) || math.IsNaN(v) {
				continue
			}
			if !found {
				lo, hi = v, v
				found = true
				continue
			}
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	if !found {
		return 0, 1
	}

	// Add 10% margin
	span := hi - lo
	if span == 0 {
		span = 1.0
	}
	margin := span * 0.1
	return lo - margin, hi + margin
}

// project maps element i of an n point series to x in [0, 1] and v to y in
// [0, 1] relative to [yMin, yMax]. Series of different lengths share the
// full plot width.
func project(i, n int, v, yMin, yMax float64) (x, y float64) {
	if n > 1 {
		x = float64(i) / float64(n-1)
	}
	if yMax > yMin {
		y = (v - yMin) / (yMax - yMin)
	}
	return x, y
}

// Helper functions for formatting

func formatOhms(v float64) string {
	if math.Abs(v) < 0.001 {
		return "0Ω"
	}
	return strconv.FormatFloat(v, 'f', 2, 64) + "Ω"
}

func formatPercent(f float64) string {
	return strconv.FormatFloat(f*100, 'f', 0, 64) + "%"
}
