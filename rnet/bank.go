package main

import (
	"fmt"

	"github.com/itohio/rnet/pkg/network"
	"github.com/itohio/rnet/pkg/nodal"
	"github.com/spf13/cobra"
)

// maxBankSize bounds the table at 2^24 entries.
const maxBankSize = 24

var (
	bankValues  []float64
	bankOutput  string
	bankHeader  string
	bankVerify  bool
	bankNearest float64
	bankBadMask string
	bankArray   bool
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Write the lookup table of a flat parallel resistor bank",
	Long: `Enumerate every mask of a bank of individually switched parallel resistors.
Bit i of a mask selects resistor i; the empty mask is an open circuit and is
written as INFINITY. The full table is sorted by resistance.

Examples:
  rnet bank
  rnet bank --values 3,11,40,45,59,115,158,236 --output bank.txt`,
	Args: cobra.NoArgs,
	RunE: runBank,
}

func init() {
	rootCmd.AddCommand(bankCmd)

	bankCmd.Flags().Float64SliceVar(&bankValues, "values", nil,
		"resistor values in bit order (overrides config)")
	bankCmd.Flags().StringVarP(&bankOutput, "output", "o", "",
		"output file (default stdout)")
	bankCmd.Flags().StringVar(&bankHeader, "header", "",
		"write the C header for the lookup table to this file")
	bankCmd.Flags().BoolVar(&bankVerify, "verify", false,
		"cross-check every mask by nodal analysis")
	bankCmd.Flags().Float64Var(&bankNearest, "nearest", 0,
		"print the table entry closest to this resistance instead of the table")
	bankCmd.Flags().StringVar(&bankBadMask, "bad-mask", "0",
		"switch bits to avoid in --nearest, e.g. 0x04")
	bankCmd.Flags().BoolVar(&bankArray, "array", false,
		"write the table as a C array definition")
}

func runBank(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	bank := network.Bank(cfg.Bank.Values)
	if len(bankValues) > 0 {
		bank = network.Bank(bankValues)
	}
	if err := bank.Validate(); err != nil {
		return fmt.Errorf("invalid bank: %w", err)
	}
	if len(bank) > maxBankSize {
		return fmt.Errorf("bank of %d resistors exceeds %d", len(bank), maxBankSize)
	}

	entries := bank.Enumerate(network.OpenOnDisable)
	if bankVerify {
		for _, e := range entries {
			got, err := nodal.BankResistance(bank, e.Mask)
			if err != nil {
				return fmt.Errorf("failed to solve mask %#x: %w", e.Mask, err)
			}
			if !sameOhms(got, e.Ohms) {
				return fmt.Errorf("nodal analysis gives %g for mask %#x, want %g", got, e.Mask, e.Ohms)
			}
		}
		logger.Info("verified", "masks", len(entries))
	}

	network.SortByOhms(entries)

	if cmd.Flags().Changed("nearest") {
		return printNearest(entries, bankNearest, bankBadMask)
	}

	table, err := writeTable(bankOutput, cfg.Table.Name, entries, bankArray)
	if err != nil {
		return err
	}
	if bankHeader != "" {
		return writeHeader(bankHeader, cfg.Table.Name, table)
	}
	return nil
}
