// Package config provides configuration loading and validation for logweave.
package config

import (
	"regexp"

	"github.com/dgarrick/logweave/pkg/parser"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Sources is the ordered list of source groups. Group order is the tie
	// break for lines with equal timestamps.
	Sources []SourceGroup `yaml:"sources"`

	// Output controls how merged lines are written.
	Output OutputConfig `yaml:"output,omitempty"`
}

// SourceGroup assigns one timestamp extraction pattern to a set of files.
type SourceGroup struct {
	// Pattern is a regex extracting the timestamp from each line, using
	// either named component groups (s y m b d H M S f) or a single
	// positional capture. Empty means the built-in default pattern.
	Pattern string `yaml:"pattern,omitempty"`

	// Files are the log files for this group; globs are allowed.
	Files []string `yaml:"files"`

	// Populated during validation.
	compiled *regexp.Regexp
	spec     *parser.TimestampSpec
}

// Compiled returns the pre-compiled pattern (populated during validation).
func (g *SourceGroup) Compiled() *regexp.Regexp {
	return g.compiled
}

// Spec returns the validated timestamp extraction spec for this group.
func (g *SourceGroup) Spec() *parser.TimestampSpec {
	return g.spec
}

// OutputConfig controls the emission format.
type OutputConfig struct {
	// Format is "text" (verbatim lines, the default) or "json"
	// (one record per line with time, source, and line).
	Format string `yaml:"format,omitempty"`
}
