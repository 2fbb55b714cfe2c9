package parser

import "context"

// Source yields pending lines one at a time, in the order they appear in the
// underlying stream. Implementations are for sequential use only.
type Source interface {
	// Next returns the next pending line.
	// Returns io.EOF once the source is exhausted.
	Next(ctx context.Context) (*PendingLine, error)

	// Close releases any resources held by the source.
	Close() error
}
