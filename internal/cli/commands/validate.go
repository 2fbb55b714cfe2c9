package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgarrick/logweave/pkg/config"
	"github.com/dgarrick/logweave/pkg/parser"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a logweave configuration file without reading any log source.

Checks:
  - YAML syntax
  - Regex pattern validity and capture-group requirements
  - Output format
  - Log file existence (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Source groups: %d\n", len(cfg.Sources))
	fmt.Fprintf(out, "  Output format: %s\n", cfg.Output.Format)

	fmt.Fprintf(out, "\nGroups:\n")
	for i := range cfg.Sources {
		g := &cfg.Sources[i]
		fmt.Fprintf(out, "  %d. pattern: %s\n", i+1, g.Compiled().String())

		files, err := parser.ExpandGlobs(g.Files)
		if err != nil {
			fmt.Fprintf(out, "     Warning: error expanding file patterns: %v\n", err)
			continue
		}
		for _, f := range files {
			fmt.Fprintf(out, "     - %s\n", f)
		}
	}

	return nil
}
