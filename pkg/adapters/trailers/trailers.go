package trailers

import (
	"context"
	"net/http"

	"github.com/vnykmshr/bodyflow/pkg/body"
)

// Func computes a trailer map once the wrapped body has finished its
// own frames. It may block; cancellation arrives through the context.
// A nil map with a nil error means "no trailers to add".
type Func func(ctx context.Context) (http.Header, error)

type state int

const (
	statePollBody state = iota
	statePollTrailers
	stateTrailers
	stateDone
)

// Body appends or merges an asynchronously obtained trailer map after a
// wrapped body completes. The body's own frames are always observed
// first; if the body produced trailers of its own, the computed map's
// fields are merged in after them (appending, never overwriting).
type Body struct {
	inner body.Body
	fn    Func

	state state
	prev  http.Header // the inner body's own trailers, if any
	out   http.Header // the merged map held for the final frame
}

// New wraps inner so that the trailer map computed by fn is delivered
// after inner's frames.
func New(inner body.Body, fn Func) *Body {
	return &Body{inner: inner, fn: fn, state: statePollBody}
}

// Next forwards the inner body's frames, then resolves fn and emits one
// merged trailers frame, then ends.
func (w *Body) Next(ctx context.Context) (body.Frame, bool, error) {
	for {
		switch w.state {
		case statePollBody:
			frame, ok, err := w.inner.Next(ctx)
			if err != nil {
				return body.Frame{}, false, err
			}
			if !ok {
				w.state = statePollTrailers
				continue
			}
			if t, isTrailers := frame.Trailers(); isTrailers {
				w.prev = t
				w.state = statePollTrailers
				continue
			}
			return frame, true, nil

		case statePollTrailers:
			extra, err := w.fn(ctx)
			if err != nil {
				return body.Frame{}, false, err
			}
			merged := body.MergeTrailers(w.prev, extra)
			if merged == nil {
				w.state = stateDone
				return body.Frame{}, false, nil
			}
			w.out = merged
			w.state = stateTrailers

		case stateTrailers:
			out := w.out
			w.out = nil
			w.state = stateDone
			return body.TrailersFrame(out), true, nil

		default: // stateDone
			return body.Frame{}, false, nil
		}
	}
}

// IsEndStream reports true only once the merged trailers frame (if any)
// has been delivered; a conservative false is reported while one may
// still be emitted.
func (w *Body) IsEndStream() bool {
	return w.state == stateDone
}

// SizeHint forwards the inner hint while data may still flow; trailers
// carry no data bytes.
func (w *Body) SizeHint() body.SizeHint {
	if w.state == statePollBody {
		return w.inner.SizeHint()
	}
	return body.Exact(0)
}

// Close forwards to the inner body and drops any held trailers.
func (w *Body) Close() error {
	w.state = stateDone
	w.out = nil
	return w.inner.Close()
}
