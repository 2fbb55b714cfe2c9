// Package cli provides the command-line interface for logweave.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgarrick/logweave/internal/cli/commands"
	"github.com/dgarrick/logweave/internal/cli/plugins"
	"github.com/dgarrick/logweave/pkg/parser"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	// Check if the first argument might be a plugin command
	if len(os.Args) > 1 {
		potentialCommand := os.Args[1]
		if len(potentialCommand) > 0 && potentialCommand[0] != '-' {
			if !isBuiltinCommand(rootCmd, potentialCommand) && !looksLikeFile(potentialCommand) {
				if pluginPath, err := plugins.FindPlugin(potentialCommand); err == nil {
					return plugins.Execute(pluginPath, os.Args[2:])
				}
			}
		}
	}

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return 0
}

// isBuiltinCommand checks if a command name is a built-in cobra command.
func isBuiltinCommand(rootCmd *cobra.Command, name string) bool {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name || cmd.HasAlias(name) {
			return true
		}
	}
	return name == "help" || name == "completion"
}

// looksLikeFile reports whether an argument names an existing path, in which
// case it is a merge input rather than a plugin command.
func looksLikeFile(arg string) bool {
	_, err := os.Stat(arg)
	return err == nil
}

// NewRootCommand creates the root cobra command. The root command itself
// performs the interleave; -r grouping is order-sensitive, so the root
// parses its own tokens instead of using pflag.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "logweave [flags] [file ...] [-r regex file ...] ...",
		Short: "Interleave log files by timestamp",
		Long: `logweave merges lines from multiple log files into a single stream
ordered by timestamp.

Each file's timestamp is extracted with a regular expression. The default
pattern is '` + parser.DefaultPattern + `': the text inside a leading "[...]"
or before a ": " separator, handed to a general date parser. A -r flag sets
a custom pattern for all files that follow it.

Custom patterns either capture one timestamp string positionally, or name
its components with capture groups from a fixed vocabulary:

  s  unix epoch seconds (float)     H  hour
  y  year (2 or 4 digits)           M  minute
  m  month number                   S  second
  b  month name or prefix           f  fractional second (1-6 digits)
  d  day of month

A named-group pattern must capture either s, or d plus one of m/b. Missing
fields default from the time the run started. Files ending in .gz are
decompressed transparently.

Flags:
  -r, --regex REGEX    timestamp pattern for the files that follow
  -c, --config FILE    load source groups from a YAML config file
  -o, --output FORMAT  output format: text (default) or json
  -v, --verbose        diagnostic logging on stderr
  -h, --help           this help

Examples:
  logweave api.log worker.log
  logweave -r '^Date: ([^ ]+)' app.log
  logweave api.log -r '^(?P<y>\d{4})-(?P<m>\d{2})-(?P<d>\d{2})' app.log db.log

PLUGINS:
  logweave supports plugins for extended functionality. Plugins are
  standalone binaries named logweave-<command> that are automatically
  discovered and invoked.

  Plugin locations (searched in order):
    1. Same directory as the logweave binary
    2. ~/.logweave/plugins/
    3. Anywhere in PATH`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := parseRunArgs(args)
			if err != nil {
				return err
			}
			if spec.help {
				return cmd.Help()
			}
			if len(spec.groups) == 0 && spec.configPath == "" {
				_ = cmd.Usage()
				return parser.ErrNoSources
			}
			return runInterleave(cmd, spec)
		},
	}

	// Add subcommands
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
