package anneal

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/itohio/rnet/pkg/cost"
	"github.com/itohio/rnet/pkg/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toyParams(iterations int) Params {
	return Params{
		RMin:       1,
		RMax:       200,
		Iterations: iterations,
		Seed:       42,
		Cost: cost.Params{
			RegionMin:     1,
			RegionMax:     200,
			MinCount:      3,
			PenaltyWeight: 1.5,
		},
	}
}

func TestNew_Defaults(t *testing.T) {
	o := New(Params{RMin: 1, RMax: 500})
	p := o.Params()

	assert.Equal(t, DefaultStep, p.Step)
	assert.Equal(t, DefaultTemperature, p.Temperature)
	assert.Equal(t, DefaultCooling, p.Cooling)
	assert.Equal(t, DefaultMinTemperature, p.MinTemperature)
	assert.Equal(t, 1, p.Chains)
}

func TestInitial(t *testing.T) {
	n := Initial(network.Partition{1, 2}, 1, 500)
	assert.Equal(t, network.Network{{250}, {250, 250}}, n)

	// Integer midpoint.
	n = Initial(network.Partition{1}, 1, 4)
	assert.Equal(t, network.Network{{2}}, n)
}

func TestOptimize_ZeroIterations(t *testing.T) {
	p := toyParams(0)
	initial := Initial(network.Partition{2}, p.RMin, p.RMax)

	res, err := New(p).Optimize(context.Background(), initial)
	require.NoError(t, err)

	assert.Equal(t, initial, res.Network)
	assert.Equal(t, cost.Score(initial, p.Cost), res.Cost)
	assert.Equal(t, 0, res.Iterations)
}

func TestOptimize_DoesNotModifyInitial(t *testing.T) {
	p := toyParams(500)
	initial := Initial(network.Partition{1, 2}, p.RMin, p.RMax)
	snapshot := initial.Clone()

	_, err := New(p).Optimize(context.Background(), initial)
	require.NoError(t, err)
	assert.Equal(t, snapshot, initial)
}

func TestOptimize_BestTraceMonotone(t *testing.T) {
	p := toyParams(3000)
	o := New(p)

	var trace []float64
	o.OnStep(func(s Step) {
		trace = append(trace, s.Best)
		assert.GreaterOrEqual(t, s.Current, s.Best)
		assert.GreaterOrEqual(t, s.Temperature, DefaultMinTemperature)
	})

	res, err := o.Optimize(context.Background(), Initial(network.Partition{2}, p.RMin, p.RMax))
	require.NoError(t, err)
	require.Len(t, trace, 3000)

	for i := 1; i < len(trace); i++ {
		assert.LessOrEqual(t, trace[i], trace[i-1])
	}
	assert.Equal(t, trace[len(trace)-1], res.Cost)
}

func TestOptimize_BeatsRandomBaseline(t *testing.T) {
	p := toyParams(5000)
	initial := Initial(network.Partition{2}, p.RMin, p.RMax)

	res, err := New(p).Optimize(context.Background(), initial)
	require.NoError(t, err)
	assert.LessOrEqual(t, res.Cost, cost.Score(initial, p.Cost))

	rng := rand.New(rand.NewPCG(7, 7))
	for range 20 {
		sample := network.Network{{
			float64(p.RMin + rng.IntN(p.RMax-p.RMin+1)),
			float64(p.RMin + rng.IntN(p.RMax-p.RMin+1)),
		}}
		assert.LessOrEqual(t, res.Cost, cost.Score(sample, p.Cost), "baseline %v", sample)
	}
}

func TestOptimize_ValuesInBounds(t *testing.T) {
	p := toyParams(2000)
	p.RMin = 5
	p.RMax = 60

	res, err := New(p).Optimize(context.Background(), Initial(network.Partition{1, 3}, p.RMin, p.RMax))
	require.NoError(t, err)
	require.Equal(t, network.Partition{1, 3}, res.Network.Partition())

	for _, b := range res.Network {
		for _, v := range b {
			assert.GreaterOrEqual(t, v, 5.0)
			assert.LessOrEqual(t, v, 60.0)
			assert.Equal(t, math.Round(v), v)
		}
	}
	assert.Equal(t, cost.Score(res.Network, p.Cost), res.Cost)
}

func TestOptimize_Reproducible(t *testing.T) {
	p := toyParams(1500)
	initial := Initial(network.Partition{1, 2}, p.RMin, p.RMax)

	a, err := New(p).Optimize(context.Background(), initial)
	require.NoError(t, err)
	b, err := New(p).Optimize(context.Background(), initial)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestOptimize_Patience(t *testing.T) {
	p := toyParams(100000)
	p.Patience = 50

	res, err := New(p).Optimize(context.Background(), Initial(network.Partition{2}, p.RMin, p.RMax))
	require.NoError(t, err)
	assert.Less(t, res.Iterations, 100000)
	assert.Greater(t, res.Iterations, 0)
}

func TestOptimize_Chains(t *testing.T) {
	p := toyParams(1000)
	initial := Initial(network.Partition{1, 2}, p.RMin, p.RMax)

	single, err := New(p).Optimize(context.Background(), initial)
	require.NoError(t, err)

	p.Chains = 4
	o := New(p)
	var mu sync.Mutex
	seen := make(map[int]bool)
	o.OnStep(func(s Step) {
		mu.Lock()
		seen[s.Chain] = true
		mu.Unlock()
	})

	multi, err := o.Optimize(context.Background(), initial)
	require.NoError(t, err)

	// Chain 0 replays the single chain run, so the best of four is no worse.
	assert.LessOrEqual(t, multi.Cost, single.Cost)
	assert.Len(t, seen, 4)

	again, err := New(p).Optimize(context.Background(), initial)
	require.NoError(t, err)
	assert.Equal(t, multi, again)
}

func TestOptimize_Cancelled(t *testing.T) {
	p := toyParams(1000)
	initial := Initial(network.Partition{2}, p.RMin, p.RMax)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := New(p).Optimize(ctx, initial)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, initial, res.Network)
	assert.Equal(t, 0, res.Iterations)
}

func TestPerturb(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	p := Params{RMin: 1, RMax: 20, Step: 10}
	n := network.Network{{10}, {10, 10}}

	for range 200 {
		out := perturb(rng, n, n.Resistors(), p)

		changed := 0
		for bi := range out {
			for ri, v := range out[bi] {
				assert.GreaterOrEqual(t, v, 1.0)
				assert.LessOrEqual(t, v, 20.0)
				if v != n[bi][ri] {
					changed++
					assert.LessOrEqual(t, math.Abs(v-n[bi][ri]), 10.0)
				}
			}
		}
		assert.LessOrEqual(t, changed, 1)
	}
	assert.Equal(t, network.Network{{10}, {10, 10}}, n)
}
