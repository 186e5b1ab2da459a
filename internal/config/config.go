package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arcanastate/engine-go/internal/fusion"
	"github.com/arcanastate/engine-go/internal/patterns"
	"github.com/arcanastate/engine-go/internal/selector"
)

// #region types

// GraphConfig tunes the pattern co-occurrence graph tooling.
type GraphConfig struct {
	// MinWeight filters edges during walks and neighbor listings.
	MinWeight float64 `yaml:"min_weight"`
	// MaxDepth bounds BFS walks.
	MaxDepth int `yaml:"max_depth"`
	// MaxNodes bounds the number of nodes a walk returns.
	MaxNodes int `yaml:"max_nodes"`
	// HalfLifeHours drives exponential edge decay.
	HalfLifeHours float64 `yaml:"half_life_hours"`
	// SeedDelta is the per-pair weight increment when seeding co-occurrence.
	SeedDelta float64 `yaml:"seed_delta"`
}

// MiningConfig tunes pattern extraction runs in the cmd tools.
type MiningConfig struct {
	// MinFrequency is the minimum occurrence count for a mined pattern.
	MinFrequency int `yaml:"min_frequency"`
}

// Config aggregates every subsystem's configuration.
type Config struct {
	// DBPath locates the snapshot/provenance SQLite database.
	DBPath string `yaml:"db_path"`

	Selector selector.Config `yaml:"selector"`
	Patterns patterns.Config `yaml:"patterns"`
	Fusion   fusion.Config   `yaml:"fusion"`
	Graph    GraphConfig     `yaml:"graph"`
	Mining   MiningConfig    `yaml:"mining"`
}

// #endregion types

// #region defaults

// Default returns the full default configuration.
func Default() Config {
	return Config{
		DBPath:   "arcana_state.db",
		Selector: selector.DefaultConfig(),
		Patterns: patterns.DefaultConfig(),
		Fusion:   fusion.DefaultConfig(),
		Graph: GraphConfig{
			MinWeight:     0.1,
			MaxDepth:      3,
			MaxNodes:      10,
			HalfLifeHours: 168,
			SeedDelta:     0.1,
		},
		Mining: MiningConfig{MinFrequency: 2},
	}
}

// #endregion defaults

// #region load

// Load reads a YAML config file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return config, nil
}

// #endregion load
