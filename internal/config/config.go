// Package config holds the run configuration of the payments engine:
// defaults, an optional YAML file, then environment overrides. Command-line
// flags are applied on top by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	EnvLogLevel = "PAYMENTS_LOG_LEVEL"
	EnvWorkers  = "PAYMENTS_WORKERS"
)

// Config is the complete run configuration
type Config struct {
	Log     LogConfig    `yaml:"log"`
	Workers int          `yaml:"workers"`
	Output  OutputConfig `yaml:"output"`
}

type LogConfig struct {
	Environment string `yaml:"environment"`
	Level       string `yaml:"level"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
	Pretty bool   `yaml:"pretty"`
	File   string `yaml:"file"`
}

// Default returns the configuration used when nothing else is given
func Default() Config {
	return Config{
		Log: LogConfig{
			Environment: "production",
		},
		Workers: 1,
		Output: OutputConfig{
			Format: "csv",
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path. An empty path means defaults only.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decoding config file %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv overrides fields from environment variables found through lookup (usually os.LookupEnv).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}

	if v, ok := lookup(EnvWorkers); ok && v != "" {
		workers, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvWorkers, err)
		}
		c.Workers = workers
	}

	return nil
}

// Validate checks the values that cannot be checked by their consumers later
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}

	switch c.Output.Format {
	case "csv", "json":
	default:
		return fmt.Errorf("unsupported output format: %s", c.Output.Format)
	}

	return nil
}
