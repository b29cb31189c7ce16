package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DecayConfig controls the background load decay worker.
type DecayConfig struct {
	Step            float64 `yaml:"step"`             // work units removed per tick for a capacity-10 center
	IntervalSeconds float64 `yaml:"interval_seconds"` // seconds between ticks
}

// Interval returns the tick interval as a duration.
func (d DecayConfig) Interval() time.Duration {
	return time.Duration(d.IntervalSeconds * float64(time.Second))
}

// CenterConfig seeds one center at startup.
type CenterConfig struct {
	Name     string `yaml:"name"`
	Capacity int    `yaml:"capacity"`
}

// TracingConfig controls span export.
type TracingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	OutputFile string `yaml:"output_file"` // empty means stdout
}

// Config is the root configuration structure.
type Config struct {
	HTTPAddr string         `yaml:"http_addr"`
	LogLevel string         `yaml:"log_level"`
	Decay    DecayConfig    `yaml:"decay"`
	Tracing  TracingConfig  `yaml:"tracing"`
	Centers  []CenterConfig `yaml:"centers"` // optional: centers created at startup
}

// Default returns the configuration used when no file is given: listen
// on :8000 and complete one work unit per second for a capacity-10
// center.
func Default() *Config {
	return &Config{
		HTTPAddr: ":8000",
		LogLevel: "info",
		Decay: DecayConfig{
			Step:            1.0,
			IntervalSeconds: 1.0,
		},
	}
}

// Load reads and validates a YAML configuration file. Missing fields
// fall back to defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for values that would misbehave at
// runtime. Degenerate center capacities are allowed on purpose: the
// router excludes them from candidacy instead of rejecting them here.
func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("http_addr is required")
	}
	if c.Decay.Step < 0 {
		return fmt.Errorf("decay step must not be negative, got %g", c.Decay.Step)
	}
	if c.Decay.IntervalSeconds <= 0 {
		return fmt.Errorf("decay interval must be positive, got %g", c.Decay.IntervalSeconds)
	}
	for i, cc := range c.Centers {
		if cc.Name == "" {
			return fmt.Errorf("center %d: name is required", i)
		}
	}
	return nil
}
