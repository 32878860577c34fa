package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds node-wide configuration, loaded from environment variables
// via envconfig with hardcoded defaults.
type Config struct {
	DataDir    string `envconfig:"DATA_DIR" default:"./data"`
	APIAddr    string `envconfig:"API_ADDR" default:"127.0.0.1:8080"`
	P2PPort    string `envconfig:"P2P_PORT" default:"1701"`
	EnableUPnP bool   `envconfig:"ENABLE_UPNP" default:"false"`
	RegionFile string `envconfig:"REGION_FILE" default:""`
}

// LoadConfig loads configuration from CARBON_-prefixed environment
// variables, falling back to defaults.
func LoadConfig() (*Config, error) {
	var c Config
	if err := envconfig.Process("carbon", &c); err != nil {
		return nil, fmt.Errorf("%w: load config: %v", ErrIO, err)
	}
	return &c, nil
}

// EnsureDataDir creates the configured data directory if needed.
func (c *Config) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return fmt.Errorf("%w: create data dir: %v", ErrIO, err)
	}
	return nil
}

// regionOverlay is the YAML shape for overriding the region/grid tables
// without recompiling.
type regionOverlay struct {
	GridFactors map[string]float64 `yaml:"gridFactors"`
	Locations   []struct {
		Substrings []string `yaml:"substrings"`
		Region     string   `yaml:"region"`
	} `yaml:"locations"`
}

// LoadRegionOverlay reads an optional YAML file overriding the default grid
// factor table and location resolution rules. A missing path returns the
// hardcoded defaults unchanged.
func LoadRegionOverlay(path string) (GridFactorTable, []locationRule, error) {
	grid := DefaultGridFactorTable()
	rules := DefaultLocationRules()

	if path == "" {
		return grid, rules, nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return grid, rules, nil
		}
		return nil, nil, fmt.Errorf("%w: read region overlay: %v", ErrIO, err)
	}

	var overlay regionOverlay
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, nil, fmt.Errorf("%w: parse region overlay: %v", ErrIO, err)
	}

	for region, factor := range overlay.GridFactors {
		grid[region] = factor
	}
	if len(overlay.Locations) > 0 {
		rules = make([]locationRule, 0, len(overlay.Locations))
		for _, loc := range overlay.Locations {
			rules = append(rules, locationRule{substrings: loc.Substrings, region: loc.Region})
		}
	}

	return grid, rules, nil
}
