package parser

import (
	"errors"
	"fmt"
)

// ErrNoSources is returned when a run is started with no source groups at
// all. An empty run is a configuration mistake, not an empty success.
var ErrNoSources = errors.New("no log sources given")

// PatternError reports a pattern that can never yield a usable timestamp.
// It is detected before any source is read.
type PatternError struct {
	Pattern string
	Reason  string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid timestamp pattern %q: %s", e.Pattern, e.Reason)
}

// MatchError reports a line that did not match its source's pattern. Skipping
// the line would silently corrupt the merged ordering, so this is fatal.
type MatchError struct {
	Pattern string
	Source  string
	Line    string
}

func (e *MatchError) Error() string {
	return fmt.Sprintf("unmatched line with pattern %q in %s: %s", e.Pattern, e.Source, e.Line)
}

// ValueError reports a captured field that failed to parse, or date
// components that do not form a real instant.
type ValueError struct {
	Field   string // component name (s, y, m, b, d, H, M, S, f) or "timestamp"
	Value   string // the offending captured text
	Pattern string
	Source  string
	Line    string
	Reason  string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid %s %q with pattern %q in %s (%s): %s",
		e.Field, e.Value, e.Pattern, e.Source, e.Reason, e.Line)
}
