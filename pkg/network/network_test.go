package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBlock(t *testing.T) {
	b, err := NewBlock(7, 22, 49)
	require.NoError(t, err)
	assert.Equal(t, Block{7, 22, 49}, b)
	assert.Equal(t, 4, b.Switches())
	assert.Equal(t, float64(49), b.Max())

	_, err = NewBlock()
	assert.ErrorIs(t, err, ErrEmptyBlock)

	_, err = NewBlock(5, 0)
	assert.ErrorIs(t, err, ErrNonPositive)

	_, err = NewBlock(-3)
	assert.ErrorIs(t, err, ErrNonPositive)
}

func TestBlock_Switches(t *testing.T) {
	assert.Equal(t, 1, Block{5}.Switches())
	assert.Equal(t, 3, Block{5, 6}.Switches())
	assert.Equal(t, 11, Block{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}.Switches())
}

func TestNew(t *testing.T) {
	src := Block{5}
	n, err := New(src, Block{18}, Block{7, 22})
	require.NoError(t, err)
	assert.Equal(t, 5, n.Switches())
	assert.Equal(t, 4, n.Resistors())
	assert.Equal(t, Partition{1, 1, 2}, n.Partition())

	// The network owns its blocks.
	src[0] = 99
	assert.Equal(t, float64(5), n[0][0])

	_, err = New()
	assert.ErrorIs(t, err, ErrEmptyBlock)

	_, err = New(Block{5}, Block{})
	assert.ErrorIs(t, err, ErrEmptyBlock)

	wide := make(Block, MaxSwitches)
	for i := range wide {
		wide[i] = 1
	}
	_, err = New(wide)
	assert.ErrorIs(t, err, ErrTooWide)
}

func TestNetwork_Clone(t *testing.T) {
	n := Network{{5}, {7, 22}}
	c := n.Clone()
	c[1][0] = 100
	assert.Equal(t, float64(7), n[1][0])
}

func TestPartition_Validate(t *testing.T) {
	tests := []struct {
		name    string
		p       Partition
		total   int
		wantErr error
	}{
		{name: "single block", p: Partition{12}, total: 12},
		{name: "singletons", p: Partition{1, 1, 1, 1}, total: 4},
		{name: "mixed", p: Partition{3, 3, 6}, total: 12},
		{name: "wrong sum", p: Partition{3, 3}, total: 7, wantErr: ErrPartitionSum},
		{name: "zero part", p: Partition{0, 7}, total: 7, wantErr: ErrEmptyBlock},
		{name: "negative part", p: Partition{-1, 8}, total: 7, wantErr: ErrEmptyBlock},
		{name: "empty", p: Partition{}, total: 3, wantErr: ErrPartitionSum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate(tt.total)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPartition_Fill(t *testing.T) {
	n := Partition{1, 3}.Fill(250)
	assert.Equal(t, Network{{250}, {250, 250, 250}}, n)
}

func TestPartition_String(t *testing.T) {
	assert.Equal(t, "[3 3 6]", Partition{3, 3, 6}.String())
	assert.Equal(t, "[]", Partition{}.String())
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "zero-on-disable", ZeroOnDisable.String())
	assert.Equal(t, "open-on-disable", OpenOnDisable.String())
	assert.Equal(t, "mode(7)", Mode(7).String())
}
