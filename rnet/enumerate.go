package main

import (
	"fmt"
	"strconv"

	"github.com/itohio/rnet/pkg/lut"
	"github.com/itohio/rnet/pkg/network"
	"github.com/itohio/rnet/pkg/topology"
	"github.com/spf13/cobra"
)

var (
	enumNetwork     string
	enumExcludeZero bool
	enumMaxOhms     float64
	enumRaw         bool
	enumVerify      bool
	enumOutput      string
	enumHeader      string
	enumNearest     float64
	enumBadMask     string
	enumArray       bool
)

var enumerateCmd = &cobra.Command{
	Use:   "enumerate",
	Short: "Enumerate switch configurations of a network and write its lookup table",
	Long: `Enumerate every switch configuration of a series network of parallel
blocks, filter and sort the resistances and write the linearized lookup table.

Examples:
  rnet enumerate --network "[5] [18] [7, 22, 49, 77, 100, 107, 241, 49, 71, 4]"
  rnet enumerate --network "[5] [18] [7, 22]" --raw --max-ohms 0
  rnet enumerate --network "[5] [18] [7, 22]" --verify --output lut.txt
  rnet enumerate --network "[5] [18] [7, 22]" --array --output lut.c
  rnet enumerate --network "[5] [18] [7, 22]" --nearest 12.5 --bad-mask 0x0004`,
	Args: cobra.NoArgs,
	RunE: runEnumerate,
}

func init() {
	rootCmd.AddCommand(enumerateCmd)

	enumerateCmd.Flags().StringVarP(&enumNetwork, "network", "n", "",
		`network topology, e.g. "[5] [18] [7, 22, 49]"`)
	enumerateCmd.Flags().BoolVar(&enumExcludeZero, "exclude-zero", true,
		"drop 0 ohm configurations")
	enumerateCmd.Flags().Float64Var(&enumMaxOhms, "max-ohms", 0,
		"drop configurations above this resistance, 0 keeps all (overrides config)")
	enumerateCmd.Flags().BoolVar(&enumRaw, "raw", false,
		"skip linearization")
	enumerateCmd.Flags().BoolVar(&enumVerify, "verify", false,
		"cross-check every configuration by nodal analysis")
	enumerateCmd.Flags().StringVarP(&enumOutput, "output", "o", "",
		"output file (default stdout)")
	enumerateCmd.Flags().StringVar(&enumHeader, "header", "",
		"write the C header for the lookup table to this file")
	enumerateCmd.Flags().Float64Var(&enumNearest, "nearest", 0,
		"print the table entry closest to this resistance instead of the table")
	enumerateCmd.Flags().StringVar(&enumBadMask, "bad-mask", "0",
		"switch bits to avoid in --nearest, e.g. 0x0004")
	enumerateCmd.Flags().BoolVar(&enumArray, "array", false,
		"write the table as a C array definition")

	enumerateCmd.MarkFlagRequired("network")
}

func runEnumerate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	n, err := topology.ParseNetwork(enumNetwork)
	if err != nil {
		return err
	}

	opt := tableOptionsFrom(cfg)
	if cmd.Flags().Changed("exclude-zero") {
		opt.ExcludeZero = enumExcludeZero
	}
	if cmd.Flags().Changed("max-ohms") {
		opt.MaxOhms = enumMaxOhms
	}
	opt.Linearize = !enumRaw

	entries := network.Enumerate(n)
	logger.Debug("enumerated", "network", topology.Format(n), "configurations", len(entries))

	if enumVerify {
		mismatches, err := verifyEntries(n, entries)
		if err != nil {
			return err
		}
		if mismatches > 0 {
			return fmt.Errorf("nodal analysis disagrees on %d of %d configurations", mismatches, len(entries))
		}
		logger.Info("verified", "configurations", len(entries))
	}

	sorted, table := buildTable(entries, opt)
	logger.Debug("table built", "sorted", len(sorted), "entries", len(table))

	if cmd.Flags().Changed("nearest") {
		return printNearest(table, enumNearest, enumBadMask)
	}

	written, err := writeTable(enumOutput, cfg.Table.Name, table, enumArray)
	if err != nil {
		return err
	}
	if enumHeader != "" {
		return writeHeader(enumHeader, cfg.Table.Name, written)
	}
	return nil
}

// printNearest prints the entry closest to target avoiding the badMask bits.
func printNearest(entries []network.Entry, target float64, badMask string) error {
	exclude, err := strconv.ParseUint(badMask, 0, 32)
	if err != nil {
		return fmt.Errorf("invalid bad mask %q: %w", badMask, err)
	}
	table, err := lut.New(entries)
	if err != nil {
		return fmt.Errorf("failed to build table: %w", err)
	}
	e, ok := table.Nearest(float32(target), uint32(exclude))
	if !ok {
		return fmt.Errorf("no usable entry for %g ohms with bad mask %#x", target, exclude)
	}
	fmt.Println(lut.FormatEntry(e))
	return nil
}
