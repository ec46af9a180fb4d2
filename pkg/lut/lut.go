// Package lut turns switch/resistance entries into firmware lookup tables.
package lut

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/chewxy/math32"
	"github.com/itohio/rnet/pkg/network"
)

// Infinity is the token emitted for an open circuit.
const Infinity = "INFINITY"

var (
	// ErrDuplicateMask is returned when two entries share a switch mask.
	ErrDuplicateMask = errors.New("duplicate switch mask")
	// ErrMaskTooWide is returned for masks that do not fit the firmware type.
	ErrMaskTooWide = errors.New("switch mask wider than 32 bits")
)

// FormatValue formats a resistance as a C float literal, or Infinity for an
// open circuit.
func FormatValue(ohms float64) string {
	if math.IsInf(ohms, 1) {
		return Infinity
	}
	return strconv.FormatFloat(ohms, 'f', 6, 64) + "f"
}

// FormatEntry formats one table line without the trailing newline:
//
//	  {0x1A2B, 12.345678f},
func FormatEntry(e network.Entry) string {
	return fmt.Sprintf("  {0x%04X, %s},", e.Mask, FormatValue(e.Ohms))
}

// Write writes one line per entry in the given order.
func Write(w io.Writer, entries []network.Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := bw.WriteString(FormatEntry(e)); err != nil {
			return fmt.Errorf("failed to write table entry: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write table entry: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush table: %w", err)
	}
	return nil
}

// Table is a lookup table with unique masks, kept in caller order.
type Table struct {
	entries []network.Entry
	masks   *roaring.Bitmap
	width   int
}

// New builds a Table. Masks must be unique and fit in 32 bits.
func New(entries []network.Entry) (*Table, error) {
	t := &Table{
		entries: make([]network.Entry, 0, len(entries)),
		masks:   roaring.New(),
	}
	for _, e := range entries {
		if e.Width > 32 || e.Mask > math.MaxUint32 {
			return nil, fmt.Errorf("mask %#x (%d bits): %w", e.Mask, e.Width, ErrMaskTooWide)
		}
		if !t.masks.CheckedAdd(uint32(e.Mask)) {
			return nil, fmt.Errorf("mask 0x%04X: %w", e.Mask, ErrDuplicateMask)
		}
		t.entries = append(t.entries, e)
		t.width = max(t.width, e.Width)
	}
	return t, nil
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Width returns the widest mask in bits.
func (t *Table) Width() int {
	return t.width
}

// Entries returns a copy of the entries.
func (t *Table) Entries() []network.Entry {
	return append([]network.Entry(nil), t.entries...)
}

// Nearest returns the entry whose resistance is closest to target, skipping
// open circuits and any mask sharing a bit with exclude. Distances are
// computed in float32 like the firmware does; the first entry wins ties.
func (t *Table) Nearest(target float32, exclude uint32) (network.Entry, bool) {
	var best network.Entry
	var bestDiff float32
	found := false
	for _, e := range t.entries {
		if e.IsOpen() || uint32(e.Mask)&exclude != 0 {
			continue
		}
		diff := math32.Abs(target - float32(e.Ohms))
		if !found || diff < bestDiff {
			best = e
			bestDiff = diff
			found = true
		}
	}
	return best, found
}

// Write writes the table lines.
func (t *Table) Write(w io.Writer) error {
	return Write(w, t.entries)
}
