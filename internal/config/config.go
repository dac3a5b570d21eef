package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// EnvVar names the environment variable that points at the config file.
const EnvVar = "ENGINEER_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general"`
	Catalog CatalogConfig `toml:"catalog"`
	Search  SearchConfig  `toml:"search"`
	Newton  NewtonConfig  `toml:"newton"`
	Output  OutputConfig  `toml:"output"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name    string `toml:"name"`
	Verbose bool   `toml:"verbose"`
}

// CatalogConfig selects the value-set catalog and the sets used when a
// calculator is not given one.
type CatalogConfig struct {
	Path         string `toml:"path"` // empty: built-in catalog
	ResistorSet  string `toml:"resistor_set"`
	CapacitorSet string `toml:"capacitor_set"`
}

// SearchConfig holds value-matching search settings
type SearchConfig struct {
	TopK             int     `toml:"top_k"`
	MaxParallelError float64 `toml:"max_parallel_error"`
	DividerTolerance float64 `toml:"divider_tolerance"` // percent
}

// NewtonConfig holds root finder settings
type NewtonConfig struct {
	MaxResidual   float64 `toml:"max_residual"`
	MaxIterations int     `toml:"max_iterations"`
}

// OutputConfig holds result formatting settings
type OutputConfig struct {
	SignificantDigits int `toml:"significant_digits"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return finish(&cfg)
}

// Parse reads configuration from TOML text.
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return finish(&cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.applyDefaults()
	cfg.Catalog.Path = os.ExpandEnv(cfg.Catalog.Path)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv loads configuration from ENGINEER_CONFIG or the default
// locations. Without any file the defaults are returned.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}

	defaultPaths := []string{
		"./configs/config.toml",
		"./config.toml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		defaultPaths = append(defaultPaths, filepath.Join(home, ".config", "toy-engineer", "config.toml"))
	}
	for _, p := range defaultPaths {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.General.Name == "" {
		c.General.Name = "toy-engineer"
	}

	if c.Catalog.ResistorSet == "" {
		c.Catalog.ResistorSet = "E12"
	}
	if c.Catalog.CapacitorSet == "" {
		c.Catalog.CapacitorSet = "E6"
	}

	if c.Search.TopK == 0 {
		c.Search.TopK = 15
	}
	if c.Search.MaxParallelError == 0 {
		c.Search.MaxParallelError = 0.75
	}
	if c.Search.DividerTolerance == 0 {
		c.Search.DividerTolerance = 35
	}

	if c.Newton.MaxResidual == 0 {
		c.Newton.MaxResidual = 1e-7
	}
	if c.Newton.MaxIterations == 0 {
		c.Newton.MaxIterations = 10
	}

	if c.Output.SignificantDigits == 0 {
		c.Output.SignificantDigits = 3
	}
}

// Validate checks value ranges after defaults were applied.
func (c *Config) Validate() error {
	if c.Search.TopK < 0 {
		return fmt.Errorf("search.top_k must not be negative: %d", c.Search.TopK)
	}
	if c.Search.MaxParallelError < 0 {
		return fmt.Errorf("search.max_parallel_error must not be negative: %g", c.Search.MaxParallelError)
	}
	if c.Search.DividerTolerance < 0 || c.Search.DividerTolerance >= 100 {
		return fmt.Errorf("search.divider_tolerance must be in [0, 100): %g", c.Search.DividerTolerance)
	}
	if c.Newton.MaxResidual < 0 {
		return fmt.Errorf("newton.max_residual must be positive: %g", c.Newton.MaxResidual)
	}
	if c.Newton.MaxIterations < 0 {
		return fmt.Errorf("newton.max_iterations must be positive: %d", c.Newton.MaxIterations)
	}
	if c.Output.SignificantDigits < 1 || c.Output.SignificantDigits > 15 {
		return fmt.Errorf("output.significant_digits must be in [1, 15]: %d", c.Output.SignificantDigits)
	}
	return nil
}
