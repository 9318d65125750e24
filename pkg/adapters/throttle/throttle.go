package throttle

import (
	"context"
	"sync"
	"time"

	"github.com/vnykmshr/bodyflow/pkg/body"
)

// maxElapsedCredit caps the wall time credited back to the budget
// cursor after a wait, so one extremely long pause cannot create a
// credit windfall.
const maxElapsedCredit = 2 * time.Second

type state int

const (
	stateInit state = iota
	stateReady
	stateWaiting
)

// Config holds configuration options for a throttled body.
type Config struct {
	// Bytes is the number of bytes released per window.
	Bytes int

	// Per is the window duration. If zero, one second is used.
	Per time.Duration

	// Clock provides time and timed suspension. If nil, SystemClock
	// is used.
	Clock Clock

	// OnWait, if set, is called once with the duration of each pacing
	// pause, when the pause is armed.
	OnWait func(d time.Duration)
}

// Body paces a wrapped body's data delivery to a target byte rate,
// emulating a slow producer or enforcing fairness among streams.
//
// The delay is enforced before the next chunk, not the current one: the
// first chunk is always delivered without delay, and each chunk debits
// a floating-point budget cursor that, once negative, arms a timed wait
// before the following poll of the inner body. End of stream, trailers
// and errors pass straight through uninvolved in pacing.
type Body struct {
	inner  body.Body
	clock  Clock
	onWait func(time.Duration)

	mu       sync.Mutex
	byteRate float64 // bytes per second

	state      state
	cursor     float64
	lastResume time.Time
	wait       time.Duration
	waitStart  time.Time
}

// New wraps inner so that at most bytes bytes are delivered per window
// per. Non-positive values are clamped to one.
func New(inner body.Body, per time.Duration, bytes int) *Body {
	return NewWithConfig(inner, Config{Bytes: bytes, Per: per})
}

// NewWithConfig wraps inner with the given configuration.
func NewWithConfig(inner body.Body, config Config) *Body {
	if config.Per <= 0 {
		config.Per = time.Second
	}
	if config.Bytes < 1 {
		config.Bytes = 1
	}
	if config.Clock == nil {
		config.Clock = SystemClock{}
	}

	return &Body{
		inner:    inner,
		clock:    config.Clock,
		onWait:   config.OnWait,
		byteRate: float64(config.Bytes) / config.Per.Seconds(),
		state:    stateInit,
	}
}

// SetRate changes the target rate to bytesPerSecond. It is safe to call
// while the body is being polled, which is how scheduled rate windows
// adjust a live transfer.
func (t *Body) SetRate(bytesPerSecond float64) {
	if bytesPerSecond <= 0 {
		return
	}
	t.mu.Lock()
	t.byteRate = bytesPerSecond
	t.mu.Unlock()
}

// Rate returns the current target rate in bytes per second.
func (t *Body) Rate() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.byteRate
}

// Next delivers the inner body's next frame, pacing data frames to the
// configured byte rate.
func (t *Body) Next(ctx context.Context) (body.Frame, bool, error) {
	for {
		switch t.state {
		case stateInit:
			t.state = stateReady
			t.lastResume = t.clock.Now()

		case stateWaiting:
			// A canceled sleep leaves the pause armed; only the
			// remainder is served on the next poll.
			remaining := t.wait - t.clock.Now().Sub(t.waitStart)
			if remaining > 0 {
				if err := t.clock.Sleep(ctx, remaining); err != nil {
					return body.Frame{}, false, err
				}
			}

			now := t.clock.Now()
			elapsed := now.Sub(t.lastResume)
			if elapsed > maxElapsedCredit {
				elapsed = maxElapsedCredit
			}

			t.mu.Lock()
			t.cursor += elapsed.Seconds() * t.byteRate
			t.mu.Unlock()

			t.state = stateReady
			t.lastResume = now

		case stateReady:
			frame, ok, err := t.inner.Next(ctx)
			if err != nil || !ok {
				return frame, ok, err
			}

			if data, isData := frame.Data(); isData {
				t.mu.Lock()
				t.cursor -= float64(data.Remaining())
				armed := t.cursor <= 0
				if armed {
					t.wait = time.Duration(-t.cursor / t.byteRate * float64(time.Second))
				}
				t.mu.Unlock()

				if armed {
					t.waitStart = t.clock.Now()
					t.state = stateWaiting
					if t.onWait != nil {
						t.onWait(t.wait)
					}
				}
			}
			return frame, true, nil
		}
	}
}

// IsEndStream forwards to the inner body.
func (t *Body) IsEndStream() bool {
	return t.inner.IsEndStream()
}

// SizeHint forwards to the inner body; pacing does not change how many
// bytes will be delivered.
func (t *Body) SizeHint() body.SizeHint {
	return t.inner.SizeHint()
}

// Close forwards to the inner body. Any armed wait is abandoned.
func (t *Body) Close() error {
	return t.inner.Close()
}
