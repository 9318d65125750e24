package channel

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/vnykmshr/bodyflow/pkg/body"
	"github.com/vnykmshr/bodyflow/pkg/buf"
)

// ErrDisconnected is returned by Sender operations after the body side
// has been closed. The failure is local to the send; nothing observable
// happens on the body side.
var ErrDisconnected = errors.New("channel body is disconnected")

// ErrSenderClosed is returned when sending on a Sender that has been
// closed or aborted.
var ErrSenderClosed = errors.New("channel sender is closed")

// New creates a bounded channel-backed body. The producer feeds frames
// through the Sender from any goroutine; the consumer polls the Body.
// Up to buffer frames are queued before Send blocks; a buffer below one
// is clamped to one.
func New(buffer int) (*Sender, *Body) {
	if buffer < 1 {
		buffer = 1
	}

	frames := make(chan body.Frame, buffer)
	abort := make(chan error, 1)
	done := make(chan struct{})

	tx := &Sender{frames: frames, abort: abort, done: done}
	rx := &Body{frames: frames, abort: abort, done: done}
	return tx, rx
}

// Sender is the producer half of a channel body. It is not safe for
// concurrent use by multiple goroutines.
type Sender struct {
	frames chan<- body.Frame
	abort  chan<- error
	done   <-chan struct{}

	once   sync.Once
	closed bool
}

// Send enqueues a frame, blocking while the buffer is full. It fails
// with ErrDisconnected once the body side has been closed; it never
// panics.
func (s *Sender) Send(ctx context.Context, f body.Frame) error {
	if s.closed {
		return ErrSenderClosed
	}

	// Don't enqueue into a buffer nobody will drain.
	select {
	case <-s.done:
		return ErrDisconnected
	default:
	}

	select {
	case s.frames <- f:
		return nil
	case <-s.done:
		return ErrDisconnected
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SendData enqueues a data frame.
func (s *Sender) SendData(ctx context.Context, b buf.Buf) error {
	return s.Send(ctx, body.DataFrame(b))
}

// SendTrailers enqueues a trailers frame.
func (s *Sender) SendTrailers(ctx context.Context, t http.Header) error {
	return s.Send(ctx, body.TrailersFrame(t))
}

// Close completes the stream normally. Frames already queued are still
// delivered, then the body reports end of stream.
func (s *Sender) Close() error {
	s.once.Do(func() {
		s.closed = true
		close(s.frames)
	})
	return nil
}

// Abort terminates the stream abnormally. It is single-use and consumes
// the sender: the body surfaces err on its next poll, taking priority
// over any frames still queued.
func (s *Sender) Abort(err error) {
	s.once.Do(func() {
		s.closed = true
		s.abort <- err
		close(s.frames)
	})
}

// Body is the consumer half of a channel body.
type Body struct {
	frames <-chan body.Frame
	abort  <-chan error
	done   chan<- struct{}

	closeOnce sync.Once
	err       error // latched abort error
	ended     bool
}

// Next returns the next queued frame in FIFO order. An abort error is
// surfaced on the first poll after Abort, ahead of queued frames, and
// latches as the terminal result. With no queued frame, no abort and an
// open sender, Next blocks until one arrives or ctx is canceled.
func (b *Body) Next(ctx context.Context) (body.Frame, bool, error) {
	if b.err != nil {
		return body.Frame{}, false, b.err
	}
	if b.ended {
		return body.Frame{}, false, nil
	}

	select {
	case err := <-b.abort:
		b.err = err
		return body.Frame{}, false, err
	default:
	}

	select {
	case frame, ok := <-b.frames:
		if !ok {
			b.ended = true
			return body.Frame{}, false, nil
		}
		return frame, true, nil
	case err := <-b.abort:
		b.err = err
		return body.Frame{}, false, err
	case <-ctx.Done():
		return body.Frame{}, false, ctx.Err()
	}
}

// IsEndStream reports whether the stream has ended, normally or by
// abort.
func (b *Body) IsEndStream() bool {
	return b.ended || b.err != nil
}

// SizeHint is unknown: the producer decides how much it will send.
func (b *Body) SizeHint() body.SizeHint {
	return body.SizeHint{}
}

// Close disconnects the body from its sender. Subsequent Sender
// operations fail with ErrDisconnected.
func (b *Body) Close() error {
	b.closeOnce.Do(func() {
		close(b.done)
	})
	return nil
}
