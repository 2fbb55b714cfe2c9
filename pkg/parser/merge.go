package parser

import (
	"container/heap"
	"context"
	"io"
)

// Merge interleaves multiple sources into one timestamp-ordered stream. It
// holds at most one pending line per still-open source (the frontier), so
// memory stays bounded regardless of source size.
//
// Equal timestamps are emitted in ascending source order (the order sources
// were given). The same-source fast path only skips the frontier when the
// refilled line is strictly below the frontier's minimum, so output is
// byte-identical to an always-resort merge.
type Merge struct {
	sources []Source
	heap    *lineHeap

	// held is a refilled line already known to precede everything in the
	// heap; it is emitted next without heap traffic.
	held *heapItem

	// refill is the source index to pull from before the next emission,
	// -1 when nothing is owed. Refilling lazily keeps already-returned
	// lines valid even when a later pull fails.
	refill int

	initialized bool
	closed      bool
}

// NewMerge creates a merge over the given sources. Source order is the tie
// break for equal timestamps.
func NewMerge(sources ...Source) *Merge {
	return &Merge{
		sources: sources,
		heap:    &lineHeap{},
		refill:  -1,
	}
}

// Next returns the next line in global timestamp order.
// Returns io.EOF when every source is exhausted. Any cursor or resolver
// error is fatal to the merge; lines already returned remain valid.
func (m *Merge) Next(ctx context.Context) (*PendingLine, error) {
	if !m.initialized {
		if err := m.initFrontier(ctx); err != nil {
			return nil, err
		}
		m.initialized = true
	}

	if m.refill >= 0 {
		src := m.refill
		m.refill = -1
		if err := m.pull(ctx, src); err != nil {
			return nil, err
		}
	}

	var item *heapItem
	switch {
	case m.held != nil:
		item = m.held
		m.held = nil
	case m.heap.Len() > 0:
		item = heap.Pop(m.heap).(*heapItem)
	default:
		return nil, io.EOF
	}

	m.refill = item.sourceIdx
	return item.line, nil
}

// initFrontier pulls the first line from every source. Sources empty at the
// first pull contribute nothing and never will.
func (m *Merge) initFrontier(ctx context.Context) error {
	heap.Init(m.heap)
	for i, src := range m.sources {
		line, err := src.Next(ctx)
		if err == io.EOF {
			continue
		}
		if err != nil {
			return err
		}
		heap.Push(m.heap, &heapItem{line: line, sourceIdx: i})
	}
	return nil
}

// pull reads the next line from one source and places it. A line strictly
// below the frontier minimum bypasses the heap entirely (the fast path for
// a source dominating a run of consecutive timestamps); an equal one goes
// through the heap so the source-order tie break applies.
func (m *Merge) pull(ctx context.Context, sourceIdx int) error {
	line, err := m.sources[sourceIdx].Next(ctx)
	if err == io.EOF {
		return nil // source exhausted, drops out of the frontier for good
	}
	if err != nil {
		return err
	}

	item := &heapItem{line: line, sourceIdx: sourceIdx}
	if m.heap.Len() == 0 || line.When.Before((*m.heap)[0].line.When) {
		m.held = item
		return nil
	}
	heap.Push(m.heap, item)
	return nil
}

// Close releases all source resources, returning the first error seen.
func (m *Merge) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	var firstErr error
	for _, src := range m.sources {
		if err := src.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// heapItem wraps a PendingLine with its source index for the priority queue.
type heapItem struct {
	line      *PendingLine
	sourceIdx int
}

// lineHeap implements heap.Interface ordered by (timestamp, source index).
type lineHeap []*heapItem

func (h lineHeap) Len() int { return len(h) }

func (h lineHeap) Less(i, j int) bool {
	if h[i].line.When.Equal(h[j].line.When) {
		return h[i].sourceIdx < h[j].sourceIdx
	}
	return h[i].line.When.Before(h[j].line.When)
}

func (h lineHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *lineHeap) Push(x interface{}) {
	*h = append(*h, x.(*heapItem))
}

func (h *lineHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}
