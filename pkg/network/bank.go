package network

import (
	"fmt"
	"math"
)

// MaxBank is the largest bank whose mask count fits in a uint64.
const MaxBank = MaxSwitches - 1

// Bank is a flat set of resistors, each behind its own switch, all in
// parallel. Bit i of a bank mask selects resistor i.
type Bank []float64

// Validate checks the bank values and its width.
func (b Bank) Validate() error {
	if err := Block(b).Validate(); err != nil {
		return err
	}
	if len(b) > MaxBank {
		return fmt.Errorf("%d resistors (max %d): %w", len(b), MaxBank, ErrTooWide)
	}
	return nil
}

// Resistance returns the parallel resistance selected by mask. With nothing
// selected the result depends on mode: 0 for ZeroOnDisable, +Inf for
// OpenOnDisable.
func (b Bank) Resistance(mask uint64, mode Mode) float64 {
	selected := make([]float64, 0, len(b))
	for i, r := range b {
		if mask&(1<<i) != 0 {
			selected = append(selected, r)
		}
	}
	if len(selected) == 0 && mode == OpenOnDisable {
		return math.Inf(1)
	}
	return Parallel(selected...)
}

// Enumerate returns one entry per mask, 0 through 2^len(b)-1, in mask order.
func (b Bank) Enumerate(mode Mode) []Entry {
	count := uint64(1) << len(b)
	entries := make([]Entry, 0, count)
	for mask := range count {
		entries = append(entries, Entry{
			Mask:  mask,
			Width: len(b),
			Ohms:  b.Resistance(mask, mode),
		})
	}
	return entries
}
