package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwitches_Mask(t *testing.T) {
	assert.Equal(t, uint64(0), Switches{}.Mask())
	assert.Equal(t, uint64(0b1), Switches{1}.Mask())
	assert.Equal(t, uint64(0b101), Switches{1, 0, 1}.Mask())
	assert.Equal(t, uint64(0b0110), Switches{0, 1, 1, 0}.Mask())
}

func TestUnpack(t *testing.T) {
	assert.Equal(t, Switches{0, 1, 1, 0}, Unpack(0b0110, 4))
	assert.Equal(t, Switches{}, Unpack(0, 0))

	sw := Switches{1, 0, 0, 1, 1, 0, 1}
	assert.Equal(t, sw, Unpack(sw.Mask(), len(sw)))
}

func TestParallel(t *testing.T) {
	assert.Equal(t, float64(0), Parallel())
	assert.Equal(t, float64(10), Parallel(10))
	assert.InDelta(t, 5.0, Parallel(10, 10), 1e-12)
	assert.InDelta(t, 2.0, Parallel(3, 6), 1e-12)
}

func TestBlockResistance_Single(t *testing.T) {
	b := Block{18}

	on, err := BlockResistance(b, Switches{1})
	require.NoError(t, err)
	assert.Equal(t, float64(18), on)

	off, err := BlockResistance(b, Switches{0})
	require.NoError(t, err)
	assert.Equal(t, float64(0), off)
}

func TestBlockResistance_Multi(t *testing.T) {
	b := Block{10, 10, 30}

	tests := []struct {
		name string
		sw   Switches
		want float64
	}{
		{name: "block off", sw: Switches{0, 0, 0, 0}, want: 0},
		{name: "block off ignores internal bits", sw: Switches{0, 1, 1, 1}, want: 0},
		{name: "enabled but empty is a short", sw: Switches{1, 0, 0, 0}, want: 0},
		{name: "one resistor", sw: Switches{1, 0, 0, 1}, want: 30},
		{name: "two equal", sw: Switches{1, 1, 1, 0}, want: 5},
		{name: "all", sw: Switches{1, 1, 1, 1}, want: 1.0 / (0.1 + 0.1 + 1.0/30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BlockResistance(b, tt.sw)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestBlockResistance_WrongLength(t *testing.T) {
	_, err := BlockResistance(Block{10, 20}, Switches{1, 1})
	assert.ErrorIs(t, err, ErrSwitchCount)

	_, err = BlockResistance(Block{10}, Switches{1, 1})
	assert.ErrorIs(t, err, ErrSwitchCount)
}

func TestBlockResistance_Bounds(t *testing.T) {
	blocks := []Block{
		{5},
		{7, 22},
		{7, 22, 49, 77, 100},
		{4, 4, 4},
	}

	for _, b := range blocks {
		for _, sw := range BlockConfigurations(b) {
			got, err := BlockResistance(b, sw)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, b.Max())
		}
	}
}

func TestSeriesResistance(t *testing.T) {
	n := Network{{5}, {18}, {10, 10}}

	got, err := SeriesResistance(n, Switches{1, 0, 1, 1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 10.0, got, 1e-12)

	got, err = SeriesResistance(n, Switches{1, 1, 0, 1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 23.0, got, 1e-12)

	_, err = SeriesResistance(n, Switches{1, 1})
	assert.ErrorIs(t, err, ErrSwitchCount)
}

func TestSeriesResistance_EqualsBlockSum(t *testing.T) {
	n := Network{{5}, {7, 22, 49}, {18, 33}}

	for _, e := range Enumerate(n) {
		cfg := e.Switches()
		parts, err := Split(n, cfg)
		require.NoError(t, err)

		var sum float64
		for i, b := range n {
			r, err := BlockResistance(b, parts[i])
			require.NoError(t, err)
			sum += r
		}

		series, err := SeriesResistance(n, cfg)
		require.NoError(t, err)
		assert.Equal(t, sum, series)
		assert.Equal(t, e.Ohms, series)
	}
}

func TestSplit(t *testing.T) {
	n := Network{{5}, {7, 22}}
	parts, err := Split(n, Switches{1, 1, 0, 1})
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Equal(t, Switches{1}, parts[0])
	assert.Equal(t, Switches{1, 0, 1}, parts[1])

	_, err = Split(n, Switches{1})
	assert.ErrorIs(t, err, ErrSwitchCount)
}

func TestParallel_SharedByBlockAndBank(t *testing.T) {
	b := Block{7, 22, 49}
	values := BlockValues(b)
	bank := Bank(b)

	for mask := 1; mask < 1<<len(b); mask++ {
		var selected []float64
		sw := Switches{1, 0, 0, 0}
		for i, r := range b {
			if mask&(1<<i) != 0 {
				selected = append(selected, r)
				sw[i+1] = 1
			}
		}
		want := Parallel(selected...)

		got, err := BlockResistance(b, sw)
		require.NoError(t, err)
		assert.Equal(t, want, got, "mask %b", mask)
		assert.Equal(t, want, values[mask], "mask %b", mask)
		assert.Equal(t, want, bank.Resistance(uint64(mask), OpenOnDisable), "mask %b", mask)
	}
}
