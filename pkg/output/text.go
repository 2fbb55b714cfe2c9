package output

import (
	"fmt"
	"io"

	"github.com/dgarrick/logweave/pkg/parser"
)

// Text writes each merged line verbatim, one per line, with nothing added.
// This is the default format.
type Text struct {
	w io.Writer
}

// NewText creates a text emitter writing to w.
func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

// Name returns the format name.
func (t *Text) Name() string {
	return "text"
}

// Emit writes the raw line text followed by a newline.
func (t *Text) Emit(line *parser.PendingLine) error {
	_, err := fmt.Fprintln(t.w, line.Raw)
	return err
}
