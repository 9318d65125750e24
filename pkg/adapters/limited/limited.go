package limited

import (
	"context"
	"errors"

	"github.com/vnykmshr/bodyflow/pkg/body"
)

// ErrLengthLimitExceeded is returned when a wrapped body yields more
// data than the configured byte budget allows. It is terminal: once
// returned, the limited body yields no further frames.
var ErrLengthLimitExceeded = errors.New("length limit exceeded")

// Body wraps an inner body and enforces a byte budget over its data
// frames. The budget is a one-way ratchet: it only shrinks, never grows
// back, even across frames. A frame that would push the cumulative byte
// count past the budget is never forwarded, even partially.
type Body struct {
	inner     body.Body
	remaining uint64
}

// New wraps inner with a byte budget of limit.
func New(inner body.Body, limit uint64) *Body {
	return &Body{inner: inner, remaining: limit}
}

// Next forwards the inner body's frames, debiting data frames against
// the budget. An over-budget frame zeroes the budget and yields
// ErrLengthLimitExceeded instead of the frame. Trailers pass through
// untouched.
func (l *Body) Next(ctx context.Context) (body.Frame, bool, error) {
	frame, ok, err := l.inner.Next(ctx)
	if err != nil || !ok {
		return frame, ok, err
	}

	data, isData := frame.Data()
	if !isData {
		return frame, true, nil
	}

	n := uint64(data.Remaining())
	if n > l.remaining {
		l.remaining = 0
		return body.Frame{}, false, ErrLengthLimitExceeded
	}
	l.remaining -= n
	return frame, true, nil
}

// IsEndStream forwards to the inner body.
func (l *Body) IsEndStream() bool {
	return l.inner.IsEndStream()
}

// SizeHint intersects the inner hint with the remaining budget: if the
// inner lower bound already meets the budget the hint is exactly the
// budget, otherwise the upper bound is capped at the budget.
func (l *Body) SizeHint() body.SizeHint {
	hint := l.inner.SizeHint()
	if hint.Lower() >= l.remaining {
		hint.SetExact(l.remaining)
	} else if upper, ok := hint.Upper(); ok {
		if l.remaining < upper {
			hint.SetUpper(l.remaining)
		}
	} else {
		hint.SetUpper(l.remaining)
	}
	return hint
}

// Close forwards to the inner body.
func (l *Body) Close() error {
	return l.inner.Close()
}
