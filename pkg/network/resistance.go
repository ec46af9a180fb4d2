package network

import "fmt"

// Switches is a switch configuration: one 0/1 value per switch, blocks in
// order. Inside a multi-resistor block the block enable bit comes first,
// followed by one bit per resistor.
type Switches []uint8

// Mask packs the configuration MSB-first: the first switch is the most
// significant of len(s) bits.
func (s Switches) Mask() uint64 {
	var mask uint64
	for _, bit := range s {
		mask = mask<<1 | uint64(bit&1)
	}
	return mask
}

// Unpack expands the low width bits of mask into a configuration, MSB-first.
func Unpack(mask uint64, width int) Switches {
	s := make(Switches, width)
	for i := range width {
		s[i] = uint8(mask >> (width - 1 - i) & 1)
	}
	return s
}

// Parallel returns the parallel combination of values. An empty set is a
// short and yields 0.
func Parallel(values ...float64) float64 {
	var recip float64
	for _, v := range values {
		recip += 1.0 / v
	}
	if recip == 0 {
		return 0
	}
	return 1.0 / recip
}

// BlockResistance returns the effective resistance of b for its switch bits.
//
// A single resistor contributes its value when on and 0 when off. A larger
// block contributes 0 when its enable bit is off; otherwise it contributes the
// parallel combination of the enabled resistors, or 0 if none is enabled.
func BlockResistance(b Block, sw Switches) (float64, error) {
	if len(sw) != b.Switches() {
		return 0, fmt.Errorf("block of %d needs %d switches, got %d: %w", len(b), b.Switches(), len(sw), ErrSwitchCount)
	}
	return blockResistance(b, sw), nil
}

func blockResistance(b Block, sw Switches) float64 {
	if len(b) == 1 {
		if sw[0] == 1 {
			return b[0]
		}
		return 0
	}
	if sw[0] == 0 {
		return 0
	}

	enabled := make([]float64, 0, len(b))
	for i, r := range b {
		if sw[i+1] == 1 {
			enabled = append(enabled, r)
		}
	}
	return Parallel(enabled...)
}

// SeriesResistance splits cfg into per-block sub-vectors and sums the block
// resistances.
func SeriesResistance(n Network, cfg Switches) (float64, error) {
	if len(cfg) != n.Switches() {
		return 0, fmt.Errorf("network needs %d switches, got %d: %w", n.Switches(), len(cfg), ErrSwitchCount)
	}
	return seriesResistance(n, cfg), nil
}

func seriesResistance(n Network, cfg Switches) float64 {
	var total float64
	idx := 0
	for _, b := range n {
		w := b.Switches()
		total += blockResistance(b, cfg[idx:idx+w])
		idx += w
	}
	return total
}

// Split returns the per-block sub-vectors of cfg. The slices alias cfg.
func Split(n Network, cfg Switches) ([]Switches, error) {
	if len(cfg) != n.Switches() {
		return nil, fmt.Errorf("network needs %d switches, got %d: %w", n.Switches(), len(cfg), ErrSwitchCount)
	}
	parts := make([]Switches, len(n))
	idx := 0
	for i, b := range n {
		w := b.Switches()
		parts[i] = cfg[idx : idx+w]
		idx += w
	}
	return parts, nil
}
