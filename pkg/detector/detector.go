// Package detector suggests a timestamp extraction pattern for a log file by
// sampling its lines against a table of known formats.
package detector

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/dgarrick/logweave/pkg/parser"
)

// DetectionResult holds the result of analyzing a log file.
type DetectionResult struct {
	Matches      []FormatMatch // Formats that matched, sorted by confidence descending
	SampledLines int           // Number of lines sampled
}

// Best returns the highest-confidence match, or nil when nothing matched.
func (r *DetectionResult) Best() *FormatMatch {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// FormatMatch is one format that matched, with its confidence score.
type FormatMatch struct {
	Format     *TimestampFormat
	Confidence float64   // 0.0 to 1.0 (share of sampled lines matched)
	MatchCount int       // Number of lines that matched
	SampleLine string    // Example line that matched
	ParsedTime time.Time // Resolved timestamp from the sample line
}

// Detector analyzes log files to identify timestamp formats. Every candidate
// match is pushed through the same spec validation and resolver the merge
// uses, so a suggested pattern is guaranteed to be accepted by a real run.
type Detector struct {
	formats    []*TimestampFormat
	specs      []*parser.TimestampSpec
	resolver   *parser.Resolver
	sampleSize int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of lines to sample (default 50).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// WithReference sets the resolver reference instant (default: now).
func WithReference(ref time.Time) Option {
	return func(d *Detector) {
		d.resolver = parser.NewResolver(ref)
	}
}

// New creates a Detector with the default format table.
func New(opts ...Option) (*Detector, error) {
	d := &Detector{
		formats:    DefaultFormats(),
		sampleSize: 50,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.resolver == nil {
		d.resolver = parser.NewResolver(time.Now())
	}

	for _, format := range d.formats {
		spec, err := parser.CompileSpec(regexp.MustCompile(format.Extract))
		if err != nil {
			return nil, fmt.Errorf("built-in format %q: %w", format.Name, err)
		}
		d.specs = append(d.specs, spec)
	}
	return d, nil
}

// DetectFromFile samples a log file and returns the formats that matched.
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*DetectionResult, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for len(lines) < d.sampleSize && scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return d.DetectFromLines(lines), nil
}

// DetectFromLines analyzes a slice of log lines.
func (d *Detector) DetectFromLines(lines []string) *DetectionResult {
	result := &DetectionResult{SampledLines: len(lines)}
	if len(lines) == 0 {
		return result
	}

	type stats struct {
		matchCount int
		sampleLine string
		parsedTime time.Time
	}
	counts := make([]stats, len(d.formats))

	sampled := 0
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		sampled++

		for i, spec := range d.specs {
			match := spec.Match(line)
			if match == nil {
				continue
			}
			when, err := d.resolver.Resolve(spec, match, "sample", line)
			if err != nil {
				continue
			}
			if counts[i].matchCount == 0 {
				counts[i].sampleLine = line
				counts[i].parsedTime = when
			}
			counts[i].matchCount++
		}
	}

	if sampled == 0 {
		return result
	}

	for i, s := range counts {
		if s.matchCount == 0 {
			continue
		}
		result.Matches = append(result.Matches, FormatMatch{
			Format:     d.formats[i],
			Confidence: float64(s.matchCount) / float64(sampled),
			MatchCount: s.matchCount,
			SampleLine: s.sampleLine,
			ParsedTime: s.parsedTime,
		})
	}

	sort.SliceStable(result.Matches, func(i, j int) bool {
		return result.Matches[i].MatchCount > result.Matches[j].MatchCount
	})

	return result
}
