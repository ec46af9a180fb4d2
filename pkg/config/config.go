package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/itohio/rnet/pkg/anneal"
	"github.com/itohio/rnet/pkg/cost"
	"github.com/itohio/rnet/pkg/linearize"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Synthesis SynthesisConfig `yaml:"synthesis"`
	Linearize LinearizeConfig `yaml:"linearize"`
	Table     TableConfig     `yaml:"table"`
	Bank      BankConfig      `yaml:"bank"`
	Log       LogConfig       `yaml:"log"`
}

// SynthesisConfig contains the partition and annealing search parameters.
type SynthesisConfig struct {
	Resistors     int     `yaml:"resistors"`      // Total resistor count N
	RMin          int     `yaml:"r_min"`          // Smallest resistor value (ohms)
	RMax          int     `yaml:"r_max"`          // Largest resistor value (ohms)
	RegionMin     float64 `yaml:"region_min"`     // Target window lower bound (ohms)
	RegionMax     float64 `yaml:"region_max"`     // Target window upper bound (ohms)
	MinCount      int     `yaml:"min_count"`      // Desired values inside the window
	PenaltyWeight float64 `yaml:"penalty_weight"` // Weight of the count shortfall
	Iterations    int     `yaml:"iterations"`     // Annealing iterations per partition
	MaxBlocks     int     `yaml:"max_blocks"`     // Largest number of series blocks
	Chains        int     `yaml:"chains"`         // Independent annealing chains per partition
	Patience      int     `yaml:"patience"`       // Early exit after this many stale iterations (0 = off)
	Workers       int     `yaml:"workers"`        // Partitions annealed in parallel (0 = CPU count)
	Seed          uint64  `yaml:"seed"`
}

// LinearizeConfig contains the lookup table thinning parameters.
type LinearizeConfig struct {
	Tolerance float64 `yaml:"tolerance"` // Relative step tolerance
	Step      string  `yaml:"step"`      // "max" or "median"
}

// TableConfig contains lookup table generation parameters.
type TableConfig struct {
	ExcludeZero bool    `yaml:"exclude_zero"` // Drop 0 ohm (all shorted) entries
	MaxOhms     float64 `yaml:"max_ohms"`     // Drop entries above this value (0 = keep all)
	Name        string  `yaml:"name"`         // Firmware array name
}

// BankConfig contains the fixed parallel bank values.
type BankConfig struct {
	Values []float64 `yaml:"values"`
}

// LogConfig contains logging parameters.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Synthesis: SynthesisConfig{
			Resistors:     12,
			RMin:          1,
			RMax:          500,
			RegionMin:     2,
			RegionMax:     40,
			MinCount:      50,
			PenaltyWeight: 1.5,
			Iterations:    5000,
			MaxBlocks:     4,
			Chains:        1,
			Seed:          1,
		},
		Linearize: LinearizeConfig{
			Tolerance: linearize.DefaultTolerance,
			Step:      "max",
		},
		Table: TableConfig{
			ExcludeZero: true,
			MaxOhms:     40,
			Name:        "resistorLookup",
		},
		Bank: BankConfig{
			Values: []float64{3, 11, 40, 45, 59, 115, 158, 236},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filename, err)
	}

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	s := c.Synthesis
	var errs []error
	if s.Resistors < 1 {
		errs = append(errs, fmt.Errorf("synthesis.resistors must be positive, got %d", s.Resistors))
	}
	if s.RMin < 1 {
		errs = append(errs, fmt.Errorf("synthesis.r_min must be positive, got %d", s.RMin))
	}
	if s.RMax < s.RMin {
		errs = append(errs, fmt.Errorf("synthesis.r_max (%d) below r_min (%d)", s.RMax, s.RMin))
	}
	if s.RegionMax <= s.RegionMin {
		errs = append(errs, fmt.Errorf("synthesis.region_max (%g) must exceed region_min (%g)", s.RegionMax, s.RegionMin))
	}
	if s.Iterations < 0 {
		errs = append(errs, fmt.Errorf("synthesis.iterations must not be negative, got %d", s.Iterations))
	}
	if s.MaxBlocks < 1 {
		errs = append(errs, fmt.Errorf("synthesis.max_blocks must be positive, got %d", s.MaxBlocks))
	}
	if c.Linearize.Tolerance < 0 {
		errs = append(errs, fmt.Errorf("linearize.tolerance must not be negative, got %g", c.Linearize.Tolerance))
	}
	if _, err := linearize.ParseStepMode(c.Linearize.Step); err != nil {
		errs = append(errs, fmt.Errorf("linearize.step: %w", err))
	}
	for i, v := range c.Bank.Values {
		if !(v > 0) {
			errs = append(errs, fmt.Errorf("bank.values[%d] must be positive, got %g", i, v))
		}
	}
	return errors.Join(errs...)
}

// AnnealParams converts the synthesis settings to optimizer parameters.
func (c *Config) AnnealParams() anneal.Params {
	s := c.Synthesis
	return anneal.Params{
		RMin:       s.RMin,
		RMax:       s.RMax,
		Iterations: s.Iterations,
		Patience:   s.Patience,
		Chains:     s.Chains,
		Seed:       s.Seed,
		Cost: cost.Params{
			RegionMin:     s.RegionMin,
			RegionMax:     s.RegionMax,
			MinCount:      s.MinCount,
			PenaltyWeight: s.PenaltyWeight,
		},
	}
}

// StepMode returns the parsed linearization step mode.
func (c *Config) StepMode() linearize.StepMode {
	mode, err := linearize.ParseStepMode(c.Linearize.Step)
	if err != nil {
		return linearize.MaxStep
	}
	return mode
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Synthesis.Resistors == 0 {
		c.Synthesis.Resistors = def.Synthesis.Resistors
	}
	if c.Synthesis.RMin == 0 {
		c.Synthesis.RMin = def.Synthesis.RMin
	}
	if c.Synthesis.RMax == 0 {
		c.Synthesis.RMax = def.Synthesis.RMax
	}
	if c.Synthesis.RegionMin == 0 && c.Synthesis.RegionMax == 0 {
		c.Synthesis.RegionMin = def.Synthesis.RegionMin
		c.Synthesis.RegionMax = def.Synthesis.RegionMax
	}
	if c.Synthesis.PenaltyWeight == 0 {
		c.Synthesis.PenaltyWeight = def.Synthesis.PenaltyWeight
	}
	if c.Synthesis.MaxBlocks == 0 {
		c.Synthesis.MaxBlocks = def.Synthesis.MaxBlocks
	}
	if c.Synthesis.Chains == 0 {
		c.Synthesis.Chains = def.Synthesis.Chains
	}

	if c.Linearize.Tolerance == 0 {
		c.Linearize.Tolerance = def.Linearize.Tolerance
	}
	if c.Linearize.Step == "" {
		c.Linearize.Step = def.Linearize.Step
	}

	if c.Table.Name == "" {
		c.Table.Name = def.Table.Name
	}

	if len(c.Bank.Values) == 0 {
		c.Bank.Values = def.Bank.Values
	}

	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
}
