package body

import (
	"context"
	"net/http"

	"github.com/vnykmshr/bodyflow/pkg/buf"
)

// Collected is the aggregate produced by Collect: every data frame of a
// body folded into a zero-copy segment list, plus the merged trailer
// map if the body produced one.
type Collected struct {
	list     buf.List
	trailers http.Header
}

// Trailers returns the merged trailer map without consuming the
// aggregate, or nil if the body yielded no trailers.
func (c *Collected) Trailers() http.Header {
	return c.trailers
}

// Remaining returns the number of aggregated data bytes not yet
// drained.
func (c *Collected) Remaining() int {
	return c.list.Remaining()
}

// Bytes drains the aggregate into a single contiguous slice. It is a
// one-shot operation; a second call returns an empty slice.
func (c *Collected) Bytes() []byte {
	return c.list.CopyToBytes(c.list.Remaining())
}

// Buf returns the underlying segment list for callers that want to
// re-emit the bytes without a contiguous copy.
func (c *Collected) Buf() *buf.List {
	return &c.list
}

// push folds one frame into the aggregate.
func (c *Collected) push(f Frame) {
	if data, ok := f.Data(); ok {
		c.list.Push(data)
		return
	}
	if t, ok := f.Trailers(); ok {
		c.trailers = MergeTrailers(c.trailers, t)
	}
}

// Collect drives b to completion, folding data frames into a zero-copy
// aggregate and merging trailer frames field-by-field (duplicate field
// values are appended, not overwritten). An error from the body aborts
// the collection and discards the partial aggregate.
func Collect(ctx context.Context, b Body) (*Collected, error) {
	collected := &Collected{}
	for {
		frame, ok, err := b.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return collected, nil
		}
		collected.push(frame)
	}
}
