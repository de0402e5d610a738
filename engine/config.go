package engine

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Strategy selects how work is distributed across execution units.
type Strategy string

const (
	// StrategyAuto tries the collective strategy and degrades from there.
	StrategyAuto Strategy = "auto"
	// StrategyCollective runs an in-process group of equal peers joined by
	// a blocking gather.
	StrategyCollective Strategy = "collective"
	// StrategySocket runs a TCP coordinator that ships work to separately
	// started worker processes.
	StrategySocket Strategy = "socket"
	// StrategyLocal runs one sieving goroutine per worker in this process.
	StrategyLocal Strategy = "local"
	// StrategySingle skips distribution entirely and sieves the full range
	// in one pass.
	StrategySingle Strategy = "single"
)

const (
	defaultLimit   = 10_000_000
	defaultWorkers = 4
	defaultAddr    = "127.0.0.1:7878"
)

// Config holds the engine's constructor parameters. Flag and environment
// parsing belong to the CLI layer; the engine only sees resolved values.
type Config struct {
	Limit    uint64   `toml:"limit,omitempty"`
	Workers  int      `toml:"workers,omitempty"`
	Strategy Strategy `toml:"strategy,omitempty"`
	Addr     string   `toml:"addr,omitempty"`
}

func (c *Config) applyDefaults() {
	if c.Limit == 0 {
		c.Limit = defaultLimit
	}
	if c.Workers == 0 {
		c.Workers = defaultWorkers
	}
	if c.Strategy == "" {
		c.Strategy = StrategyAuto
	}
	if c.Addr == "" {
		c.Addr = defaultAddr
	}
}

// LoadConfigFromFile reads a TOML job file describing one run.
func LoadConfigFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out Config
	if _, err := toml.NewDecoder(f).Decode(&out); err != nil {
		return nil, fmt.Errorf("parsing job file %s: %w", path, err)
	}
	return &out, nil
}
