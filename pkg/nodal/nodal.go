// Package nodal computes effective resistance by modified nodal analysis on a
// sparse conductance matrix. It is an independent check of the closed-form
// series/parallel formulas in package network.
package nodal

import (
	"fmt"
	"math"

	"github.com/edp1096/sparse"
	"github.com/itohio/rnet/pkg/network"
)

// branch is a resistor between two nodes; node 0 is ground.
type branch struct {
	n1, n2 int
	ohms   float64
}

// circuit is a resistor netlist driven by a 1 A source into node top.
type circuit struct {
	nodes    int
	top      int
	branches []branch
}

// Resistance returns the effective resistance of n for cfg.
//
// Blocks are stacked from ground upward. A block that contributes nothing
// (switched off, or enabled with no resistor on) merges its two nodes.
func Resistance(n network.Network, cfg network.Switches) (float64, error) {
	parts, err := network.Split(n, cfg)
	if err != nil {
		return 0, err
	}

	c := circuit{}
	lower := 0
	for i := len(n) - 1; i >= 0; i-- {
		enabled := enabledResistors(n[i], parts[i])
		if len(enabled) == 0 {
			continue
		}
		c.nodes++
		upper := c.nodes
		for _, r := range enabled {
			c.branches = append(c.branches, branch{n1: upper, n2: lower, ohms: r})
		}
		lower = upper
	}
	c.top = lower

	if c.top == 0 {
		return 0, nil
	}
	return c.solve()
}

// BankResistance returns the resistance of a parallel bank for mask, where
// bit i selects resistor i. An empty selection is an open circuit.
func BankResistance(b network.Bank, mask uint64) (float64, error) {
	c := circuit{nodes: 1, top: 1}
	for i, r := range b {
		if mask&(1<<i) != 0 {
			c.branches = append(c.branches, branch{n1: 1, n2: 0, ohms: r})
		}
	}
	if len(c.branches) == 0 {
		return math.Inf(1), nil
	}
	return c.solve()
}

func enabledResistors(b network.Block, sw network.Switches) []float64 {
	if len(b) == 1 {
		if sw[0] == 1 {
			return []float64{b[0]}
		}
		return nil
	}
	if sw[0] == 0 {
		return nil
	}
	var out []float64
	for i, r := range b {
		if sw[i+1] == 1 {
			out = append(out, r)
		}
	}
	return out
}

// solve stamps the conductances, injects 1 A into the top node and returns
// the top node voltage.
func (c *circuit) solve() (float64, error) {
	config := &sparse.Configuration{
		Real:                    true,
		Complex:                 false,
		SeparatedComplexVectors: false,
		Expandable:              true,
		Translate:               false,
		ModifiedNodal:           true,
		TiesMultiplier:          5,
		PrinterWidth:            140,
		Annotate:                0,
	}

	mat, err := sparse.Create(int64(c.nodes), config)
	if err != nil {
		return 0, fmt.Errorf("failed to create matrix: %w", err)
	}
	defer mat.Destroy()

	for _, br := range c.branches {
		g := 1.0 / br.ohms
		n1, n2 := int64(br.n1), int64(br.n2)
		if n1 != 0 {
			mat.GetElement(n1, n1).Real += g
			if n2 != 0 {
				mat.GetElement(n1, n2).Real -= g
			}
		}
		if n2 != 0 {
			if n1 != 0 {
				mat.GetElement(n2, n1).Real -= g
			}
			mat.GetElement(n2, n2).Real += g
		}
	}

	rhs := make([]float64, c.nodes+1) // 1-based
	rhs[c.top] = 1

	if err := mat.Factor(); err != nil {
		return 0, fmt.Errorf("matrix factorization failed: %w", err)
	}
	solution, err := mat.Solve(rhs)
	if err != nil {
		return 0, fmt.Errorf("matrix solve failed: %w", err)
	}
	return solution[c.top], nil
}
