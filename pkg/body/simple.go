package body

import (
	"context"
	"net/http"

	"github.com/vnykmshr/bodyflow/pkg/buf"
)

// EmptyBody is a body that yields no frames.
type EmptyBody struct{}

// Empty returns a body that is already at end of stream.
func Empty() *EmptyBody {
	return &EmptyBody{}
}

// Next reports end of stream.
func (*EmptyBody) Next(context.Context) (Frame, bool, error) {
	return Frame{}, false, nil
}

// IsEndStream always reports true.
func (*EmptyBody) IsEndStream() bool { return true }

// SizeHint is exactly zero.
func (*EmptyBody) SizeHint() SizeHint { return Exact(0) }

// Close is a no-op.
func (*EmptyBody) Close() error { return nil }

// FullBody is a body that yields a single data frame.
type FullBody struct {
	data *buf.Bytes
	done bool
}

// Full returns a body yielding b as one data frame. An empty b yields
// no frames at all.
func Full(b []byte) *FullBody {
	return &FullBody{data: buf.NewBytes(b)}
}

// Next yields the single chunk, then end of stream.
func (f *FullBody) Next(context.Context) (Frame, bool, error) {
	if f.done || f.data.Remaining() == 0 {
		f.done = true
		return Frame{}, false, nil
	}
	f.done = true
	return DataFrame(f.data), true, nil
}

// IsEndStream reports whether the chunk has been yielded.
func (f *FullBody) IsEndStream() bool {
	return f.done || f.data.Remaining() == 0
}

// SizeHint is exactly the undelivered length.
func (f *FullBody) SizeHint() SizeHint {
	if f.done {
		return Exact(0)
	}
	return Exact(uint64(f.data.Remaining()))
}

// Close discards the remaining chunk.
func (f *FullBody) Close() error {
	f.done = true
	return nil
}

// ChunksBody is a body that yields a fixed, ordered sequence of data
// chunks, optionally followed by a trailers frame.
type ChunksBody struct {
	chunks   [][]byte
	trailers http.Header
	index    int
	sent     bool
}

// FromChunks returns a body yielding the given chunks in order.
func FromChunks(chunks ...[]byte) *ChunksBody {
	return &ChunksBody{chunks: chunks}
}

// WithTrailers sets a trailers frame to be yielded after the last
// chunk, and returns the body.
func (c *ChunksBody) WithTrailers(t http.Header) *ChunksBody {
	c.trailers = t
	return c
}

// Next yields chunks in order, then trailers if set, then end of
// stream. Empty chunks are skipped.
func (c *ChunksBody) Next(context.Context) (Frame, bool, error) {
	for c.index < len(c.chunks) {
		chunk := c.chunks[c.index]
		c.index++
		if len(chunk) > 0 {
			return DataFrame(buf.NewBytes(chunk)), true, nil
		}
	}
	if c.trailers != nil && !c.sent {
		c.sent = true
		return TrailersFrame(c.trailers), true, nil
	}
	return Frame{}, false, nil
}

// IsEndStream reports whether every chunk and trailer has been yielded.
func (c *ChunksBody) IsEndStream() bool {
	return c.index >= len(c.chunks) && (c.trailers == nil || c.sent)
}

// SizeHint is exactly the undelivered data length.
func (c *ChunksBody) SizeHint() SizeHint {
	var n uint64
	for _, chunk := range c.chunks[c.index:] {
		n += uint64(len(chunk))
	}
	return Exact(n)
}

// Close discards the remaining chunks.
func (c *ChunksBody) Close() error {
	c.index = len(c.chunks)
	c.sent = true
	return nil
}
