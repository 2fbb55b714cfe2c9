package output

import (
	"io"
	"time"

	"github.com/goccy/go-json"

	"github.com/dgarrick/logweave/pkg/parser"
)

// JSON writes one record per merged line, carrying the resolved instant and
// the source alongside the verbatim line text.
type JSON struct {
	enc *json.Encoder
}

// Record is the shape of each emitted JSON line.
type Record struct {
	Time   string `json:"time"`
	Source string `json:"source"`
	Line   string `json:"line"`
}

// NewJSON creates a JSON emitter writing to w.
func NewJSON(w io.Writer) *JSON {
	return &JSON{enc: json.NewEncoder(w)}
}

// Name returns the format name.
func (j *JSON) Name() string {
	return "json"
}

// Emit writes one JSON record for the line.
func (j *JSON) Emit(line *parser.PendingLine) error {
	return j.enc.Encode(Record{
		Time:   line.When.Format(time.RFC3339Nano),
		Source: line.Source,
		Line:   line.Raw,
	})
}
