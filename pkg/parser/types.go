// Package parser provides timestamp extraction and the k-way merge that
// interleaves log lines from multiple sources into a single chronological
// stream.
package parser

import "time"

// PendingLine is a single log line with its resolved timestamp, held by the
// merge frontier until it is emitted.
type PendingLine struct {
	// Raw is the original line content, without the trailing newline.
	Raw string

	// When is the resolved absolute timestamp for the line.
	When time.Time

	// Source is the file path (or reader name) this line came from.
	Source string

	// LineNum is the 1-based line number in the source.
	LineNum int
}

// DefaultPattern is the extraction regex applied to files given without an
// explicit -r group: everything past an optional leading "[" up to a closing
// "]" or ": " is treated as a free-text timestamp.
const DefaultPattern = `^\[?([^]]+)(]|: )`
