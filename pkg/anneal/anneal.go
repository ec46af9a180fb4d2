// Package anneal searches resistor values for a fixed block partition with
// simulated annealing.
package anneal

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/itohio/rnet/pkg/cost"
	"github.com/itohio/rnet/pkg/network"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultStep is the largest integer perturbation applied to a resistor.
	DefaultStep = 10
	// DefaultTemperature is the starting temperature.
	DefaultTemperature = 1.0
	// DefaultCooling is the geometric temperature decay per iteration.
	DefaultCooling = 0.999
	// DefaultMinTemperature is the temperature floor.
	DefaultMinTemperature = 1e-6
)

// Params configures an annealing run.
type Params struct {
	RMin       int // Smallest allowed resistor value (ohms)
	RMax       int // Largest allowed resistor value (ohms)
	Iterations int // Fixed iteration budget per chain

	Step           int     // Perturbation range [-Step, Step]; 0 means DefaultStep
	Temperature    float64 // Starting temperature; 0 means DefaultTemperature
	Cooling        float64 // Per-iteration decay; 0 means DefaultCooling
	MinTemperature float64 // Temperature floor; 0 means DefaultMinTemperature

	// Patience stops a chain after this many iterations without a new best.
	// Zero disables the early exit.
	Patience int
	// Chains is the number of independent chains; the best one wins.
	Chains int
	// Seed seeds chain i with Seed+i.
	Seed uint64

	Cost cost.Params
}

// Step reports the state of a chain after one iteration.
type Step struct {
	Chain       int
	Iteration   int
	Temperature float64
	Current     float64 // Cost of the current assignment
	Best        float64 // Best cost seen so far
	Accepted    bool
}

// Result is the outcome of an optimization.
type Result struct {
	Network    network.Network
	Cost       float64
	Iterations int // Iterations run by the winning chain
	Chain      int // Index of the winning chain
}

// Optimizer runs simulated annealing over resistor values.
type Optimizer struct {
	params Params
	onStep func(Step)
}

// New creates an Optimizer, filling unset tuning fields with defaults.
func New(p Params) *Optimizer {
	if p.Step <= 0 {
		p.Step = DefaultStep
	}
	if p.Temperature <= 0 {
		p.Temperature = DefaultTemperature
	}
	if p.Cooling <= 0 {
		p.Cooling = DefaultCooling
	}
	if p.MinTemperature <= 0 {
		p.MinTemperature = DefaultMinTemperature
	}
	if p.Chains <= 0 {
		p.Chains = 1
	}
	return &Optimizer{params: p}
}

// Params returns the effective parameters.
func (o *Optimizer) Params() Params {
	return o.params
}

// OnStep registers a callback invoked after every iteration of every chain.
// With more than one chain the callback is called concurrently.
func (o *Optimizer) OnStep(callback func(Step)) {
	o.onStep = callback
}

// Initial returns the starting network for p: every resistor at the integer
// midpoint of [rmin, rmax].
func Initial(p network.Partition, rmin, rmax int) network.Network {
	return p.Fill(float64((rmin + rmax) / 2))
}

// Optimize anneals the values of initial and returns the best network found
// by any chain. initial is not modified. On cancellation the best result so
// far is returned together with the context error.
func (o *Optimizer) Optimize(ctx context.Context, initial network.Network) (Result, error) {
	if o.params.Chains == 1 {
		return o.chain(ctx, 0, initial)
	}

	results := make([]Result, o.params.Chains)
	g, gctx := errgroup.WithContext(ctx)
	for i := range o.params.Chains {
		g.Go(func() error {
			res, err := o.chain(gctx, i, initial)
			results[i] = res
			return err
		})
	}
	err := g.Wait()

	best := results[0]
	for _, res := range results[1:] {
		if res.Network != nil && (best.Network == nil || res.Cost < best.Cost) {
			best = res
		}
	}
	return best, err
}

// chain runs a single Markov chain.
func (o *Optimizer) chain(ctx context.Context, index int, initial network.Network) (Result, error) {
	p := o.params
	rng := rand.New(rand.NewPCG(p.Seed+uint64(index), 0x9e3779b97f4a7c15))

	current := initial.Clone()
	currentCost := cost.Score(current, p.Cost)
	best := current
	bestCost := currentCost

	total := current.Resistors()
	temperature := p.Temperature
	stale := 0

	it := 0
	for ; it < p.Iterations; it++ {
		if err := ctx.Err(); err != nil {
			return Result{Network: best, Cost: bestCost, Iterations: it, Chain: index}, err
		}

		candidate := perturb(rng, current, total, p)
		candidateCost := cost.Score(candidate, p.Cost)

		accepted := candidateCost < currentCost ||
			rng.Float64() < math.Exp(-(candidateCost-currentCost)/temperature)
		if accepted {
			current = candidate
			currentCost = candidateCost
		}

		if candidateCost < bestCost {
			best = candidate
			bestCost = candidateCost
			stale = 0
		} else {
			stale++
		}

		temperature = math.Max(temperature*p.Cooling, p.MinTemperature)

		if o.onStep != nil {
			o.onStep(Step{
				Chain:       index,
				Iteration:   it,
				Temperature: temperature,
				Current:     currentCost,
				Best:        bestCost,
				Accepted:    accepted,
			})
		}

		if p.Patience > 0 && stale >= p.Patience {
			it++
			break
		}
	}

	return Result{Network: best, Cost: bestCost, Iterations: it, Chain: index}, nil
}

// perturb copies n and moves one uniformly chosen resistor by a random
// integer in [-Step, Step], clamped to [RMin, RMax] and rounded to whole ohms.
func perturb(rng *rand.Rand, n network.Network, total int, p Params) network.Network {
	out := n.Clone()

	pick := rng.IntN(total)
	for bi := range out {
		if pick >= len(out[bi]) {
			pick -= len(out[bi])
			continue
		}
		delta := float64(rng.IntN(2*p.Step+1) - p.Step)
		v := out[bi][pick] + delta
		v = math.Max(float64(p.RMin), math.Min(float64(p.RMax), v))
		out[bi][pick] = math.Round(v)
		break
	}
	return out
}
