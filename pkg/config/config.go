package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/dgarrick/logweave/pkg/parser"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors and compiles each group's
// pattern. Patterns are fully validated here, before any log line is read.
func Validate(cfg *Config) error {
	if len(cfg.Sources) == 0 {
		return errors.New("sources: at least one source group is required")
	}

	for i := range cfg.Sources {
		if err := validateGroup(&cfg.Sources[i]); err != nil {
			return fmt.Errorf("sources[%d]: %w", i, err)
		}
	}

	if err := validateOutput(&cfg.Output); err != nil {
		return fmt.Errorf("output: %w", err)
	}

	return nil
}

func validateGroup(g *SourceGroup) error {
	if len(g.Files) == 0 {
		return errors.New("files: at least one file or glob is required")
	}

	pattern := g.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}
	g.compiled = re

	spec, err := parser.CompileSpec(re)
	if err != nil {
		return err
	}
	g.spec = spec

	return nil
}

func validateOutput(o *OutputConfig) error {
	switch o.Format {
	case "", "text", "json":
		return nil
	default:
		return fmt.Errorf("invalid format %q (must be text or json)", o.Format)
	}
}
