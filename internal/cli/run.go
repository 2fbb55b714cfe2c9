package cli

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dgarrick/logweave/pkg/config"
	"github.com/dgarrick/logweave/pkg/output"
	"github.com/dgarrick/logweave/pkg/parser"
)

// runInterleave executes one merge run: build sources, interleave, emit.
func runInterleave(cmd *cobra.Command, spec *runSpec) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger := newLogger(cmd.ErrOrStderr(), spec.verbose)

	groups := spec.groups
	format := spec.format

	if spec.configPath != "" {
		cfg, err := config.Load(ctx, spec.configPath)
		if err != nil {
			return err
		}
		configGroups, err := groupsFromConfig(cfg)
		if err != nil {
			return err
		}
		groups = append(groups, configGroups...)
		if format == "" {
			format = cfg.Output.Format
		}
	}

	if len(groups) == 0 {
		return parser.ErrNoSources
	}

	emitter, err := output.New(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	// The reference instant is sampled exactly once per run; every default
	// (year, timezone, free-text seed) comes from it.
	resolver := parser.NewResolver(time.Now())

	sources, err := openSources(groups, resolver, logger)
	if err != nil {
		return err
	}

	merge := parser.NewMerge(sources...)
	defer func() {
		if err := merge.Close(); err != nil {
			logger.Warn().Err(err).Msg("closing sources")
		}
	}()

	start := time.Now()
	emitted := 0
	for {
		line, err := merge.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if err := emitter.Emit(line); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		emitted++
	}

	logger.Debug().
		Int("lines", emitted).
		Int("sources", len(sources)).
		Dur("elapsed", time.Since(start)).
		Msg("merge complete")

	return nil
}

// groupsFromConfig converts validated config source groups, expanding globs.
func groupsFromConfig(cfg *config.Config) ([]sourceGroup, error) {
	var groups []sourceGroup
	for _, g := range cfg.Sources {
		files, err := parser.ExpandGlobs(g.Files)
		if err != nil {
			return nil, err
		}
		groups = append(groups, sourceGroup{
			pattern: g.Compiled().String(),
			files:   files,
		})
	}
	return groups, nil
}

// openSources validates every group's pattern, then opens one cursor per
// file. Validation happens for all patterns before the first open, so a bad
// pattern is reported without touching any file. On any open failure, every
// cursor opened so far is closed before returning.
func openSources(groups []sourceGroup, resolver *parser.Resolver, logger zerolog.Logger) ([]parser.Source, error) {
	specs := make([]*parser.TimestampSpec, len(groups))
	for i, g := range groups {
		pattern := g.pattern
		if pattern == "" {
			pattern = parser.DefaultPattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex %q: %w", pattern, err)
		}
		spec, err := parser.CompileSpec(re)
		if err != nil {
			return nil, err
		}
		specs[i] = spec
	}

	var sources []parser.Source
	for i, g := range groups {
		for _, file := range g.files {
			cursor, err := parser.OpenCursor(file, specs[i], resolver)
			if err != nil {
				for _, s := range sources {
					_ = s.Close()
				}
				return nil, err
			}
			logger.Debug().
				Str("file", file).
				Str("pattern", specs[i].Pattern()).
				Msg("opened source")
			sources = append(sources, cursor)
		}
	}
	return sources, nil
}

// newLogger builds the stderr diagnostic logger. Merged lines go to stdout
// only; diagnostics never do.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger().Level(level)
}
