package network

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxSwitches is the widest switch configuration that packs into an Entry mask.
const MaxSwitches = 64

var (
	// ErrEmptyBlock is returned for a block (or partition part) with no resistors.
	ErrEmptyBlock = errors.New("block must contain at least one resistor")
	// ErrNonPositive is returned for a resistor value that is not strictly positive.
	ErrNonPositive = errors.New("resistor value must be positive")
	// ErrPartitionSum is returned when partition sizes do not add up to the resistor count.
	ErrPartitionSum = errors.New("partition sizes do not sum to resistor count")
	// ErrSwitchCount is returned when a switch vector does not match the network layout.
	ErrSwitchCount = errors.New("switch configuration length mismatch")
	// ErrTooWide is returned when a network needs more switches than a mask can hold.
	ErrTooWide = errors.New("network has too many switches")
)

// Mode selects how a set with no enabled resistor is interpreted.
type Mode int

const (
	// ZeroOnDisable treats a block with nothing enabled as a short (0 ohm).
	ZeroOnDisable Mode = iota
	// OpenOnDisable treats a bank with nothing enabled as an open circuit (+Inf).
	OpenOnDisable
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ZeroOnDisable:
		return "zero-on-disable"
	case OpenOnDisable:
		return "open-on-disable"
	default:
		return "mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// Block is a parallel group of resistors (ohms) switched together.
type Block []float64

// NewBlock validates values and returns them as a Block.
func NewBlock(values ...float64) (Block, error) {
	b := Block(append([]float64(nil), values...))
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks that the block is non-empty and every value is positive.
func (b Block) Validate() error {
	if len(b) == 0 {
		return ErrEmptyBlock
	}
	for i, v := range b {
		if !(v > 0) {
			return fmt.Errorf("resistor %d = %g: %w", i, v, ErrNonPositive)
		}
	}
	return nil
}

// Switches returns the number of switch bits controlling the block.
// A single resistor has one switch; larger blocks add a block enable switch.
func (b Block) Switches() int {
	if len(b) == 1 {
		return 1
	}
	return len(b) + 1
}

// Max returns the largest resistor value in the block.
func (b Block) Max() float64 {
	var m float64
	for _, v := range b {
		if v > m {
			m = v
		}
	}
	return m
}

// Network is an ordered list of blocks wired in series.
type Network []Block

// New validates blocks and returns a Network that owns copies of them.
func New(blocks ...Block) (Network, error) {
	n := make(Network, len(blocks))
	for i, b := range blocks {
		n[i] = append(Block(nil), b...)
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}

// Validate checks every block and the total switch width.
func (n Network) Validate() error {
	if len(n) == 0 {
		return ErrEmptyBlock
	}
	for i, b := range n {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
	}
	if w := n.Switches(); w > MaxSwitches {
		return fmt.Errorf("%d switches (max %d): %w", w, MaxSwitches, ErrTooWide)
	}
	return nil
}

// Switches returns the total switch configuration length.
func (n Network) Switches() int {
	total := 0
	for _, b := range n {
		total += b.Switches()
	}
	return total
}

// Resistors returns the total number of resistors.
func (n Network) Resistors() int {
	total := 0
	for _, b := range n {
		total += len(b)
	}
	return total
}

// Partition returns the block sizes of the network.
func (n Network) Partition() Partition {
	p := make(Partition, len(n))
	for i, b := range n {
		p[i] = len(b)
	}
	return p
}

// Clone returns a deep copy.
func (n Network) Clone() Network {
	c := make(Network, len(n))
	for i, b := range n {
		c[i] = append(Block(nil), b...)
	}
	return c
}

// Partition is a list of block sizes.
type Partition []int

// Validate checks that every part is positive and the parts sum to total.
func (p Partition) Validate(total int) error {
	sum := 0
	for i, size := range p {
		if size <= 0 {
			return fmt.Errorf("part %d has size %d: %w", i, size, ErrEmptyBlock)
		}
		sum += size
	}
	if sum != total {
		return fmt.Errorf("%v sums to %d, want %d: %w", []int(p), sum, total, ErrPartitionSum)
	}
	return nil
}

// Fill builds a network with every resistor set to value.
func (p Partition) Fill(value float64) Network {
	n := make(Network, len(p))
	for i, size := range p {
		b := make(Block, size)
		for j := range b {
			b[j] = value
		}
		n[i] = b
	}
	return n
}

// String formats the partition as space separated sizes.
func (p Partition) String() string {
	parts := make([]string, len(p))
	for i, size := range p {
		parts[i] = strconv.Itoa(size)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
