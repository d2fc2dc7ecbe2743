// Package config loads the optional YAML configuration file controlling
// cmd/reqlang's defaults. Absence of the file is never an error — Load
// falls back to DefaultConfig.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the cmd/reqlang CLI's tunable defaults.
type Config struct {
	// Subject is a fixture JSON path decoded from the config file. No
	// subcommand reads it: `eval` takes its fixture only from the required
	// --subject flag.
	Subject string `yaml:"subject"`

	// Superscript selects Unicode-superscript footnote markers in
	// eval.RenderEvaluation output; false falls back to plain "[n]" marks.
	Superscript bool `yaml:"superscript"`

	// TestConcurrency bounds how many fixtures `reqlang test` evaluates at
	// once via golang.org/x/sync/errgroup.
	TestConcurrency int `yaml:"test_concurrency"`
}

// DefaultConfig is used whenever no config file is present.
func DefaultConfig() *Config {
	return &Config{
		Superscript:     true,
		TestConcurrency: 4,
	}
}

// Load reads path as YAML into a Config seeded from DefaultConfig. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
