package fuse

import (
	"context"
	"errors"

	"github.com/vnykmshr/bodyflow/pkg/body"
)

// Body wraps an inner body and guarantees the "never poll again after
// completion" contract on its behalf: after the inner body ends or
// fails, the inner body is closed and released, and every further Next
// reports end of stream without touching it.
//
// This is akin to what a fused iterator provides: the inner producer is
// polled at most once past true completion.
type Body struct {
	inner body.Body // nil once the stream has ended
}

// New returns a fused body. If inner already reports end of stream it
// is released immediately, without ever being polled.
func New(inner body.Body) *Body {
	if inner.IsEndStream() {
		_ = inner.Close()
		return &Body{}
	}
	return &Body{inner: inner}
}

// Next polls the inner body. End of stream, an error, or a frame after
// which the inner body reports end of stream all release the inner body
// before the result is returned. A context cancellation leaves the
// state unchanged, so polling may resume later.
func (f *Body) Next(ctx context.Context) (body.Frame, bool, error) {
	if f.inner == nil {
		return body.Frame{}, false, nil
	}

	frame, ok, err := f.inner.Next(ctx)
	if err != nil {
		// The caller stopped waiting; the stream itself has not failed.
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return body.Frame{}, false, err
		}
		f.release()
		return body.Frame{}, false, err
	}
	if !ok || f.inner.IsEndStream() {
		f.release()
	}
	return frame, ok, nil
}

func (f *Body) release() {
	if f.inner != nil {
		_ = f.inner.Close()
		f.inner = nil
	}
}

// IsEndStream reports whether the inner body has been released.
func (f *Body) IsEndStream() bool {
	return f.inner == nil
}

// SizeHint forwards to the inner body, or reports exactly zero once it
// has been released.
func (f *Body) SizeHint() body.SizeHint {
	if f.inner == nil {
		return body.Exact(0)
	}
	return f.inner.SizeHint()
}

// Close releases the inner body.
func (f *Body) Close() error {
	if f.inner == nil {
		return nil
	}
	err := f.inner.Close()
	f.inner = nil
	return err
}
