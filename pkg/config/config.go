// Package config loads the optional locheck configuration file, which
// holds the defaults the CLI flags can override.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/locheck/locheck/pkg/engine"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config represents the checker configuration
type Config struct {
	Version  string       `yaml:"version"`
	Baseline string       `yaml:"baseline"`
	Output   OutputConfig `yaml:"output"`
}

// OutputConfig controls how diagnostics are rendered
type OutputConfig struct {
	Format          string `yaml:"format"` // "text" or "json"
	GroupByLanguage bool   `yaml:"group_by_language"`
}

// DefaultConfig returns the default checker configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  "v1",
		Baseline: engine.DefaultBaseline,
		Output: OutputConfig{
			Format:          FormatText,
			GroupByLanguage: false,
		},
	}
}

// Validate checks the configuration for contradictions
func (c *Config) Validate() error {
	if c.Baseline == "" {
		return fmt.Errorf("baseline locale must not be empty")
	}
	switch c.Output.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("unknown output format: %s", c.Output.Format)
	}
	return nil
}

// LoadConfig loads configuration from a file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadConfigFromDir searches for a config file in the checked directory
func LoadConfigFromDir(dir string) (*Config, error) {
	configNames := []string{".locheck.yaml", ".locheck.yml", "locheck.yaml", "locheck.yml"}

	for _, name := range configNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadConfig(path)
		}
	}

	// Return default if no config found
	return DefaultConfig(), nil
}
