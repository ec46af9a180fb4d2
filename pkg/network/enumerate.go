package network

import (
	"math"
	"slices"
)

// Entry pairs a packed switch configuration with its effective resistance.
type Entry struct {
	Mask  uint64  // Switch bits, MSB-first in block order
	Width int     // Number of switch bits in Mask
	Ohms  float64 // Effective resistance; +Inf for an open circuit
}

// Switches unpacks the entry mask.
func (e Entry) Switches() Switches {
	return Unpack(e.Mask, e.Width)
}

// BlockConfigurations returns every non-redundant switch configuration of b.
//
// A single resistor yields off and on. A block of k resistors yields the
// canonical off configuration followed by the 2^k-1 enabled configurations
// with at least one resistor on; the enabled-but-empty state is left out
// because it equals off.
func BlockConfigurations(b Block) []Switches {
	if len(b) == 1 {
		return []Switches{{0}, {1}}
	}

	k := len(b)
	configs := make([]Switches, 0, 1<<k)
	configs = append(configs, make(Switches, k+1))
	for bits := 1; bits < 1<<k; bits++ {
		sw := make(Switches, k+1)
		sw[0] = 1
		for i := range k {
			sw[i+1] = uint8(bits >> (k - 1 - i) & 1)
		}
		configs = append(configs, sw)
	}
	return configs
}

// Enumerate returns the Cartesian product of the per-block configurations
// with the series resistance of each combination. The last block varies
// fastest. The result length is the product of the per-block counts; an
// empty network has no configurations.
func Enumerate(n Network) []Entry {
	if len(n) == 0 {
		return nil
	}

	type option struct {
		mask uint64
		ohms float64
	}

	options := make([][]option, len(n))
	widths := make([]int, len(n))
	total := 1
	for i, b := range n {
		configs := BlockConfigurations(b)
		opts := make([]option, len(configs))
		for j, sw := range configs {
			opts[j] = option{mask: sw.Mask(), ohms: blockResistance(b, sw)}
		}
		options[i] = opts
		widths[i] = b.Switches()
		total *= len(opts)
	}

	width := n.Switches()
	entries := make([]Entry, 0, total)
	idx := make([]int, len(n))
	for {
		var mask uint64
		var ohms float64
		for i, j := range idx {
			o := options[i][j]
			mask = mask<<widths[i] | o.mask
			ohms += o.ohms
		}
		entries = append(entries, Entry{Mask: mask, Width: width, Ohms: ohms})

		// Advance the odometer, last block first.
		i := len(idx) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(options[i]) {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			return entries
		}
	}
}

// Filter returns the entries for which keep returns true.
func Filter(entries []Entry, keep func(Entry) bool) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// NonZero keeps entries with a resistance other than 0.
func NonZero(e Entry) bool {
	return e.Ohms != 0
}

// AtMost keeps entries whose resistance does not exceed limit.
func AtMost(limit float64) func(Entry) bool {
	return func(e Entry) bool {
		return e.Ohms <= limit
	}
}

// SortByOhms sorts entries ascending by resistance. Equal resistances keep
// their enumeration order.
func SortByOhms(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		switch {
		case a.Ohms < b.Ohms:
			return -1
		case a.Ohms > b.Ohms:
			return 1
		default:
			return 0
		}
	})
}

// Ohms extracts the resistance column.
func Ohms(entries []Entry) []float64 {
	out := make([]float64, len(entries))
	for i, e := range entries {
		out[i] = e.Ohms
	}
	return out
}

// BlockValues returns every value the block can take over its 2^k raw
// resistor masks, mask 0 being 0 ohm. Values are in mask order and may repeat.
func BlockValues(b Block) []float64 {
	k := len(b)
	values := make([]float64, 1<<k)
	selected := make([]float64, 0, k)
	for mask := 1; mask < 1<<k; mask++ {
		selected = selected[:0]
		for i, r := range b {
			if mask&(1<<i) != 0 {
				selected = append(selected, r)
			}
		}
		values[mask] = Parallel(selected...)
	}
	return values
}

// AchievableValues returns the Cartesian sum of the block value sets: every
// series total reachable by picking one value per block.
func AchievableValues(n Network) []float64 {
	if len(n) == 0 {
		return nil
	}
	overall := BlockValues(n[0])
	for _, b := range n[1:] {
		values := BlockValues(b)
		next := make([]float64, 0, len(overall)*len(values))
		for _, a := range overall {
			for _, v := range values {
				next = append(next, a+v)
			}
		}
		overall = next
	}
	return overall
}

// IsOpen reports whether e is the open-circuit sentinel.
func (e Entry) IsOpen() bool {
	return math.IsInf(e.Ohms, 1)
}
