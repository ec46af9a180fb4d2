package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/itohio/rnet/pkg/config"
	"github.com/itohio/rnet/pkg/linearize"
	"github.com/itohio/rnet/pkg/lut"
	"github.com/itohio/rnet/pkg/network"
	"github.com/itohio/rnet/pkg/nodal"
)

// tableOptions controls how raw entries become a lookup table.
type tableOptions struct {
	ExcludeZero bool
	MaxOhms     float64 // 0 keeps every value
	Linearize   bool
	Tolerance   float64
	Step        linearize.StepMode
}

func tableOptionsFrom(cfg *config.Config) tableOptions {
	return tableOptions{
		ExcludeZero: cfg.Table.ExcludeZero,
		MaxOhms:     cfg.Table.MaxOhms,
		Linearize:   true,
		Tolerance:   cfg.Linearize.Tolerance,
		Step:        cfg.StepMode(),
	}
}

// buildTable filters and sorts raw entries and returns them together with
// the linearized subset. Without linearization both results are equal.
func buildTable(entries []network.Entry, opt tableOptions) (sorted, table []network.Entry) {
	sorted = entries
	if opt.ExcludeZero {
		sorted = network.Filter(sorted, network.NonZero)
	}
	if opt.MaxOhms > 0 {
		sorted = network.Filter(sorted, network.AtMost(opt.MaxOhms))
	}
	if !opt.ExcludeZero && opt.MaxOhms <= 0 {
		sorted = append([]network.Entry(nil), sorted...)
	}
	network.SortByOhms(sorted)

	if !opt.Linearize {
		return sorted, sorted
	}
	return sorted, linearize.Linearize(sorted, opt.Tolerance, opt.Step)
}

// writeTable writes entries to path, or stdout when path is empty or "-".
// With array set the lines are wrapped in the C array definition called name.
// Masks are checked for duplicates before anything is written.
func writeTable(path, name string, entries []network.Entry, array bool) (*lut.Table, error) {
	table, err := lut.New(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to build table: %w", err)
	}
	write := table.Write
	if array {
		write = func(w io.Writer) error {
			return lut.WriteArray(w, name, table.Entries())
		}
	}
	if err := withOutput(path, write); err != nil {
		return nil, err
	}
	return table, nil
}

// writeHeader writes the C header declaring the array that holds table.
func writeHeader(path, name string, table *lut.Table) error {
	return withOutput(path, func(w io.Writer) error {
		return lut.WriteHeader(w, name, table.Width(), table.Len())
	})
}

func withOutput(path string, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// verifyEntries recomputes every entry of n by nodal analysis and returns the
// number of entries whose closed-form value disagrees.
func verifyEntries(n network.Network, entries []network.Entry) (int, error) {
	mismatches := 0
	for _, e := range entries {
		got, err := nodal.Resistance(n, e.Switches())
		if err != nil {
			return mismatches, fmt.Errorf("failed to solve mask %#x: %w", e.Mask, err)
		}
		if !sameOhms(got, e.Ohms) {
			mismatches++
		}
	}
	return mismatches, nil
}

// sameOhms compares resistances with a relative tolerance; equal infinities
// match.
func sameOhms(a, b float64) bool {
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b))
}
