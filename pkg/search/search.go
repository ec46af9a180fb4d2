// Package search runs the annealing optimizer over every admissible block
// partition of the resistor count and keeps the best network.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/itohio/rnet/pkg/anneal"
	"github.com/itohio/rnet/pkg/logging"
	"github.com/itohio/rnet/pkg/network"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxBlocks is the largest number of series blocks considered.
const DefaultMaxBlocks = 4

var (
	// ErrResistorCount is returned for a resistor count below one.
	ErrResistorCount = errors.New("resistor count must be positive")
	// ErrTooManyBlocks is returned when MaxBlocks is below one.
	ErrTooManyBlocks = errors.New("max blocks must be positive")
)

// Attempt is the outcome of annealing one partition.
type Attempt struct {
	Index      int // Position in partition enumeration order
	Partition  network.Partition
	Network    network.Network
	Cost       float64
	Iterations int
	Elapsed    time.Duration
}

// Result is the best partition found plus every attempt in enumeration order.
type Result struct {
	Partition network.Partition
	Network   network.Network
	Cost      float64
	Attempts  []Attempt
}

// Driver searches partitions in parallel.
type Driver struct {
	Params    anneal.Params
	MaxBlocks int          // Partitions with more parts are skipped; 0 means DefaultMaxBlocks
	Workers   int          // Concurrent partitions; 0 means runtime.NumCPU()
	Logger    *slog.Logger // nil disables logging

	onAttempt func(Attempt)
}

// OnAttempt registers a callback invoked as each partition finishes. It may be
// called concurrently from several workers.
func (d *Driver) OnAttempt(callback func(Attempt)) {
	d.onAttempt = callback
}

// Run anneals every partition of n with at most MaxBlocks parts and returns
// the lowest cost. Ties go to the partition that comes first in enumeration
// order. Partition i uses seed Params.Seed + i<<16 so runs are reproducible
// regardless of scheduling.
func (d *Driver) Run(ctx context.Context, n int) (Result, error) {
	if n < 1 {
		return Result{}, fmt.Errorf("n = %d: %w", n, ErrResistorCount)
	}
	maxBlocks := d.MaxBlocks
	if maxBlocks == 0 {
		maxBlocks = DefaultMaxBlocks
	}
	if maxBlocks < 0 {
		return Result{}, fmt.Errorf("max blocks = %d: %w", maxBlocks, ErrTooManyBlocks)
	}
	workers := d.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := d.Logger
	if logger == nil {
		logger = logging.Noop()
	}

	var partitions []network.Partition
	for p := range Bounded(n, maxBlocks) {
		partitions = append(partitions, p)
	}
	logger.Info("searching partitions", "n", n, "candidates", len(partitions), "max_blocks", maxBlocks, "workers", workers)

	attempts := make([]Attempt, len(partitions))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range partitions {
		g.Go(func() error {
			a, err := d.attempt(gctx, i, p, logger)
			attempts[i] = a
			return err
		})
	}
	err := g.Wait()

	result := Result{Attempts: attempts}
	found := false
	for _, a := range attempts {
		if a.Network == nil {
			continue
		}
		if !found || a.Cost < result.Cost {
			result.Partition = a.Partition
			result.Network = a.Network
			result.Cost = a.Cost
			found = true
		}
	}
	if err != nil {
		return result, err
	}

	logger.Info("best partition", "partition", result.Partition.String(), "cost", result.Cost, "values", result.Network)
	return result, nil
}

// RunPartition anneals a single caller-supplied partition of n. The
// partition is validated first; its size limit is not applied.
func (d *Driver) RunPartition(ctx context.Context, n int, p network.Partition) (Result, error) {
	if n < 1 {
		return Result{}, fmt.Errorf("n = %d: %w", n, ErrResistorCount)
	}
	if err := p.Validate(n); err != nil {
		return Result{}, fmt.Errorf("invalid partition: %w", err)
	}
	logger := d.Logger
	if logger == nil {
		logger = logging.Noop()
	}

	a, err := d.attempt(ctx, 0, p, logger)
	result := Result{
		Partition: a.Partition,
		Network:   a.Network,
		Cost:      a.Cost,
		Attempts:  []Attempt{a},
	}
	if err != nil {
		return result, err
	}
	logger.Info("partition annealed", "partition", p.String(), "cost", result.Cost, "values", result.Network)
	return result, nil
}

// attempt anneals partition p with the seed of enumeration index i.
func (d *Driver) attempt(ctx context.Context, i int, p network.Partition, logger *slog.Logger) (Attempt, error) {
	params := d.Params
	params.Seed += uint64(i) << 16
	start := time.Now()
	res, err := anneal.New(params).Optimize(ctx, anneal.Initial(p, params.RMin, params.RMax))
	a := Attempt{
		Index:      i,
		Partition:  p,
		Network:    res.Network,
		Cost:       res.Cost,
		Iterations: res.Iterations,
		Elapsed:    time.Since(start),
	}
	if err != nil {
		return a, fmt.Errorf("failed to optimize partition %v: %w", p, err)
	}

	logger.Debug("partition done", "partition", p.String(), "cost", a.Cost, "iterations", a.Iterations, "elapsed", a.Elapsed)
	if d.onAttempt != nil {
		d.onAttempt(a)
	}
	return a, nil
}
