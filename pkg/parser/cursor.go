package parser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Cursor reads one source line by line, matching each line against the
// source's pattern and resolving its timestamp. It implements Source.
//
// A line that fails to match is a fatal MatchError: skipping it would let the
// merge silently emit a misordered stream.
type Cursor struct {
	name     string
	spec     *TimestampSpec
	resolver *Resolver

	closer  io.Closer
	gz      *gzip.Reader
	scanner *bufio.Scanner
	lineNum int
}

// OpenCursor opens a file as a merge source. Paths ending in .gz are
// decompressed transparently, so rotated logs interleave like plain files.
func OpenCursor(path string, spec *TimestampSpec, resolver *Resolver) (*Cursor, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	var r io.Reader = f
	c := &Cursor{name: path, spec: spec, resolver: resolver, closer: f}
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("opening gzip log file %s: %w", path, err)
		}
		c.gz = gz
		r = gz
	}
	c.scanner = newLineScanner(r)
	return c, nil
}

// NewReaderCursor wraps an already-open reader as a merge source. name is
// used in diagnostics only. The reader is not closed by Close.
func NewReaderCursor(name string, r io.Reader, spec *TimestampSpec, resolver *Resolver) *Cursor {
	return &Cursor{
		name:     name,
		spec:     spec,
		resolver: resolver,
		scanner:  newLineScanner(r),
	}
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size
	return s
}

// Next returns the next pending line, or io.EOF once the source is drained.
func (c *Cursor) Next(ctx context.Context) (*PendingLine, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", c.name, err)
		}
		return nil, io.EOF
	}
	c.lineNum++
	line := c.scanner.Text()

	match := c.spec.Match(line)
	if match == nil {
		return nil, &MatchError{Pattern: c.spec.Pattern(), Source: c.name, Line: line}
	}

	when, err := c.resolver.Resolve(c.spec, match, c.name, line)
	if err != nil {
		return nil, err
	}

	return &PendingLine{
		Raw:     line,
		When:    when,
		Source:  c.name,
		LineNum: c.lineNum,
	}, nil
}

// Close releases the underlying file, if any.
func (c *Cursor) Close() error {
	if c.gz != nil {
		_ = c.gz.Close()
		c.gz = nil
	}
	if c.closer != nil {
		err := c.closer.Close()
		c.closer = nil
		return err
	}
	return nil
}

// Name returns the source's diagnostic name.
func (c *Cursor) Name() string {
	return c.name
}
