package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/itohio/rnet/pkg/cost"
	"github.com/itohio/rnet/pkg/lut"
	"github.com/itohio/rnet/pkg/network"
	"github.com/itohio/rnet/pkg/search"
	"github.com/itohio/rnet/pkg/topology"
	"github.com/spf13/cobra"
)

var (
	searchResistors  int
	searchIterations int
	searchSeed       uint64
	searchWorkers    int
	searchChains     int
	searchOutput     string
	searchHeader     string
	searchPartition  string
	searchArray      bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search block partitions for the best resistor network",
	Long: `Anneal resistor values for every partition of the resistor count into at
most max_blocks series blocks and report the lowest cost network. With
--partition only the given block sizes are annealed.

Examples:
  rnet search
  rnet search --resistors 10 --iterations 20000 --seed 7
  rnet search --output lut.txt --header resistor_lookup.h
  rnet search --partition "3 3 6" --array --output lut.c`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVarP(&searchResistors, "resistors", "n", 0,
		"total resistor count (overrides config)")
	searchCmd.Flags().IntVarP(&searchIterations, "iterations", "i", 0,
		"annealing iterations per partition (overrides config)")
	searchCmd.Flags().Uint64Var(&searchSeed, "seed", 0,
		"random seed (overrides config)")
	searchCmd.Flags().IntVarP(&searchWorkers, "workers", "w", 0,
		"partitions annealed in parallel (overrides config)")
	searchCmd.Flags().IntVar(&searchChains, "chains", 0,
		"annealing chains per partition (overrides config)")
	searchCmd.Flags().StringVarP(&searchOutput, "output", "o", "",
		"write the winning network's lookup table to this file")
	searchCmd.Flags().StringVar(&searchHeader, "header", "",
		"write the C header for the lookup table to this file")
	searchCmd.Flags().StringVarP(&searchPartition, "partition", "p", "",
		`anneal only these block sizes, e.g. "3 3 6" (must sum to the resistor count)`)
	searchCmd.Flags().BoolVar(&searchArray, "array", false,
		"write the table as a C array definition")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	if searchResistors > 0 {
		cfg.Synthesis.Resistors = searchResistors
	}
	if searchIterations > 0 {
		cfg.Synthesis.Iterations = searchIterations
	}
	if cmd.Flags().Changed("seed") {
		cfg.Synthesis.Seed = searchSeed
	}
	if searchWorkers > 0 {
		cfg.Synthesis.Workers = searchWorkers
	}
	if searchChains > 0 {
		cfg.Synthesis.Chains = searchChains
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	driver := &search.Driver{
		Params:    cfg.AnnealParams(),
		MaxBlocks: cfg.Synthesis.MaxBlocks,
		Workers:   cfg.Synthesis.Workers,
		Logger:    logger,
	}
	if verbose {
		driver.OnAttempt(func(a search.Attempt) {
			logger.Info("partition", "index", a.Index, "partition", a.Partition.String(), "cost", a.Cost)
		})
	}

	var result search.Result
	if searchPartition != "" {
		var p network.Partition
		if p, err = topology.ParsePartition(searchPartition); err != nil {
			return err
		}
		result, err = driver.RunPartition(ctx, cfg.Synthesis.Resistors, p)
	} else {
		result, err = driver.Run(ctx, cfg.Synthesis.Resistors)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	breakdown := cost.Evaluate(result.Network, cfg.AnnealParams().Cost)
	fmt.Printf("Partition:  %s\n", result.Partition)
	fmt.Printf("Network:    %s\n", topology.Format(result.Network))
	fmt.Printf("Cost:       %g\n", result.Cost)
	fmt.Printf("  in window:     %d (want %d)\n", breakdown.Count, cfg.Synthesis.MinCount)
	fmt.Printf("  gap variance:  %g\n", breakdown.GapVariance)
	fmt.Printf("  range penalty: %g\n", breakdown.RangePenalty)
	fmt.Printf("  count penalty: %g\n", breakdown.CountPenalty)
	fmt.Printf("Switches:   %d\n", result.Network.Switches())

	if searchOutput == "" && searchHeader == "" {
		return nil
	}

	_, entries := buildTable(network.Enumerate(result.Network), tableOptionsFrom(cfg))
	if searchOutput == "" {
		// Header only; nothing goes to stdout after the report.
		table, err := lut.New(entries)
		if err != nil {
			return fmt.Errorf("failed to build table: %w", err)
		}
		return writeHeader(searchHeader, cfg.Table.Name, table)
	}

	table, err := writeTable(searchOutput, cfg.Table.Name, entries, searchArray)
	if err != nil {
		return err
	}
	logger.Info("lookup table written", "path", searchOutput, "entries", table.Len())
	if searchHeader != "" {
		return writeHeader(searchHeader, cfg.Table.Name, table)
	}
	return nil
}
