package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgarrick/logweave/pkg/detector"
)

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	var sampleSize int

	cmd := &cobra.Command{
		Use:   "detect <log-file>",
		Short: "Suggest a timestamp extraction pattern for a log file",
		Long: `Sample a log file and suggest the timestamp extraction regex to use
with -r or in a config file.

Candidate patterns are checked end to end: a suggestion is only printed if
its matches resolve to real timestamps.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args[0], sampleSize)
		},
	}

	cmd.Flags().IntVar(&sampleSize, "sample-size", 50, "number of lines to sample")

	return cmd
}

func runDetect(cmd *cobra.Command, path string, sampleSize int) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	d, err := detector.New(detector.WithSampleSize(sampleSize))
	if err != nil {
		return err
	}

	result, err := d.DetectFromFile(ctx, path)
	if err != nil {
		return err
	}

	best := result.Best()
	if best == nil {
		return fmt.Errorf("no known timestamp format found in the first %d lines of %s", result.SampledLines, path)
	}

	fmt.Fprintf(out, "Detected format: %s\n", best.Format.Name)
	fmt.Fprintf(out, "  Confidence: %.0f%% (%d of %d sampled lines)\n",
		best.Confidence*100, best.MatchCount, result.SampledLines)
	fmt.Fprintf(out, "  Sample:     %s\n", best.SampleLine)
	fmt.Fprintf(out, "  Resolved:   %s\n", best.ParsedTime)

	fmt.Fprintf(out, "\nPattern:\n  %s\n", best.Format.Extract)
	fmt.Fprintf(out, "\nUsage:\n")
	fmt.Fprintf(out, "  logweave -r '%s' %s\n", best.Format.Extract, path)
	fmt.Fprintf(out, "\nConfig snippet:\n")
	fmt.Fprintf(out, "  sources:\n    - pattern: '%s'\n      files:\n        - %s\n", best.Format.Extract, path)

	if len(result.Matches) > 1 {
		fmt.Fprintf(out, "\nOther candidates:\n")
		for _, m := range result.Matches[1:] {
			fmt.Fprintf(out, "  - %s (%d lines)\n", m.Format.Name, m.MatchCount)
		}
	}

	return nil
}
