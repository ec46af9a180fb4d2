package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/itohio/rnet/pkg/config"
	"github.com/itohio/rnet/pkg/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "rnet",
	Short: "Switched resistor network synthesis",
	Long: `Synthesize switched resistor networks for a programmable load, enumerate
their switch configurations and emit linearized firmware lookup tables.

Examples:
  rnet search --resistors 12 --output lut.txt          # Find the best block partition
  rnet enumerate --network "[5] [18] [7, 22, 49, 77]"  # Table for a known network
  rnet bank --values 3,11,40,45,59,115,158,236         # Table for a flat parallel bank
  rnet view --network "[5] [18] [7, 22, 49, 77]"       # Plot raw vs linearized ladder`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Fix Fyne locale parsing error when LANG=C
	if lang := os.Getenv("LANG"); lang == "" || lang == "C" {
		os.Setenv("LANG", "en_US.UTF-8")
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "rnet.yaml", "configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the configuration and builds the logger it describes.
// --verbose forces debug level.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}
	logger, err := logging.New(level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
