package body

import "context"

// Body represents an in-progress stream of frames: zero or more data
// frames, at most one trailers frame, then end of stream.
//
// A Body is driven by repeatedly calling Next until it reports end of
// stream or an error. Blocking happens only inside Next, and only while
// waiting on an inner producer, a pacing timer, or channel capacity;
// cancellation is delivered through the context. Closing the body is
// the structural cancellation primitive: it releases held resources
// (timers, channel halves, inner bodies) without a separate shutdown
// call.
//
// A well-behaved body is not polled again after it has ended; adapters
// such as fuse exist for producers that cannot uphold that themselves.
type Body interface {
	// Next returns the next frame of the stream. ok is false when the
	// stream has ended; err is terminal and ends the stream.
	Next(ctx context.Context) (frame Frame, ok bool, err error)

	// IsEndStream reports whether the stream has permanently ended.
	// It is cheap and never blocks. It may conservatively return false,
	// but once it returns true no further frames will be produced and
	// no further polling is required.
	IsEndStream() bool

	// SizeHint estimates the bytes remaining in the stream. The hint
	// must stay consistent with delivered byte counts: after n bytes
	// have been yielded, the bounds shrink accordingly.
	SizeHint() SizeHint

	// Close releases any resources held by the body. Closing a body
	// that is mid-stream cancels it.
	Close() error
}
