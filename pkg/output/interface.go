// Package output writes merged log lines in a selectable format.
package output

import (
	"fmt"
	"io"

	"github.com/dgarrick/logweave/pkg/parser"
)

// Emitter writes merged lines one at a time, in emission order.
type Emitter interface {
	// Emit writes a single merged line.
	Emit(line *parser.PendingLine) error

	// Name returns the format name (text, json).
	Name() string
}

// New returns the emitter for a format name.
func New(format string, w io.Writer) (Emitter, error) {
	switch format {
	case "", "text":
		return NewText(w), nil
	case "json":
		return NewJSON(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
