package cost

import (
	"math"
	"testing"

	"github.com/itohio/rnet/pkg/network"
	"github.com/stretchr/testify/assert"
)

func TestScore_Sentinel(t *testing.T) {
	tests := []struct {
		name string
		n    network.Network
		p    Params
	}{
		{
			name: "no value in window",
			n:    network.Network{{100}},
			p:    Params{RegionMin: 2, RegionMax: 40, MinCount: 50, PenaltyWeight: 1.5},
		},
		{
			name: "single value in window",
			n:    network.Network{{10}},
			p:    Params{RegionMin: 5, RegionMax: 20},
		},
		{
			name: "only zero reachable inside",
			n:    network.Network{{500}, {500}},
			p:    Params{RegionMin: 0, RegionMax: 40},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Sentinel, Score(tt.n, tt.p))
		})
	}
}

func TestEvaluate_Terms(t *testing.T) {
	// Achievable values: 0, 20, 10, 30. In [5, 30]: 10, 20, 30.
	n := network.Network{{10}, {20}}
	b := Evaluate(n, Params{RegionMin: 5, RegionMax: 30, MinCount: 5, PenaltyWeight: 1.5})

	assert.Equal(t, 3, b.Count)
	assert.InDelta(t, 6.0, b.CountPenalty, 1e-12)
	assert.InDelta(t, 0.0, b.GapVariance, 1e-12)
	assert.InDelta(t, 25.0, b.RangePenalty, 1e-12)
	assert.InDelta(t, 31.0, b.Total, 1e-12)
	assert.InDelta(t, 31.0, Score(n, Params{RegionMin: 5, RegionMax: 30, MinCount: 5, PenaltyWeight: 1.5}), 1e-12)
}

func TestEvaluate_GapVariance(t *testing.T) {
	// Achievable values: 0, 3, 1, 4. Gaps 1, 2, 1 -> mean 4/3, variance 2/9.
	n := network.Network{{1}, {3}}
	b := Evaluate(n, Params{RegionMin: 0, RegionMax: 4})

	assert.Equal(t, 4, b.Count)
	assert.Zero(t, b.CountPenalty)
	assert.InDelta(t, 2.0/9.0, b.GapVariance, 1e-12)
	assert.Zero(t, b.RangePenalty)
}

func TestScore_FiniteNonNegative(t *testing.T) {
	p := Params{RegionMin: 2, RegionMax: 40, MinCount: 50, PenaltyWeight: 1.5}
	networks := []network.Network{
		{{5}, {18}, {7, 22, 49, 77, 100, 107, 241, 49, 71, 4}},
		{{250, 250, 250}, {250, 250, 250}, {250, 250, 250, 250, 250, 250}},
		{{3}, {6}, {12}, {24}},
	}

	for _, n := range networks {
		got := Score(n, p)
		assert.False(t, math.IsNaN(got))
		assert.False(t, math.IsInf(got, 0))
		assert.GreaterOrEqual(t, got, 0.0)
	}
}

func TestScore_PrefersEvenLadder(t *testing.T) {
	p := Params{RegionMin: 1, RegionMax: 15, MinCount: 8, PenaltyWeight: 1.5}

	// Binary weighted series ladder reaches 1..15 in unit steps.
	even := network.Network{{1}, {2}, {4}, {8}}
	uneven := network.Network{{1}, {1}, {1}, {12}}

	assert.Less(t, Score(even, p), Score(uneven, p))
}
