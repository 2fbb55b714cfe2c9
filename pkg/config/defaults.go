package config

import (
	"os"

	"github.com/dgarrick/logweave/pkg/parser"
)

// Default values for configuration.
const (
	DefaultOutputFormat = "text"
)

// Environment variable names.
const (
	EnvOutputFormat = "LOGWEAVE_OUTPUT_FORMAT"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Sources: []SourceGroup{},
		Output: OutputConfig{
			Format: DefaultOutputFormat,
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides.
func (c *Config) applyEnvironmentOverrides() {
	if format := os.Getenv(EnvOutputFormat); format != "" {
		c.Output.Format = format
	}
}

// DefaultPattern re-exports the built-in extraction pattern applied to
// groups that do not set one.
const DefaultPattern = parser.DefaultPattern
