package testutil

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/vnykmshr/bodyflow/pkg/body"
	"github.com/vnykmshr/bodyflow/pkg/buf"
)

// MockClock implements the throttle Clock interface with controllable
// time. Sleep never blocks: it advances the clock and records the
// requested duration, so pacing tests run deterministically without
// real delays.
type MockClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

// NewMockClock creates a new MockClock starting at the given time.
// If zero time is provided, uses current time.
func NewMockClock(start time.Time) *MockClock {
	if start.IsZero() {
		start = time.Now()
	}
	return &MockClock{now: start}
}

// Now returns the current mock time.
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the mock clock forward by the given duration.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Sleep advances the clock by d and records the request.
func (m *MockClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	m.sleeps = append(m.sleeps, d)
	return nil
}

// Sleeps returns every duration passed to Sleep, in order.
func (m *MockClock) Sleeps() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]time.Duration, len(m.sleeps))
	copy(out, m.sleeps)
	return out
}

// Elapsed returns the total mock time slept.
func (m *MockClock) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total time.Duration
	for _, d := range m.sleeps {
		total += d
	}
	return total
}

// MockStep is one scripted outcome of a MockBody poll.
type MockStep struct {
	Data     []byte
	Trailers http.Header
	Err      error
	End      bool
}

// MockBody is a scripted body that counts polls. It is used to verify
// adapter polling discipline (e.g. that fuse never polls a finished
// body).
type MockBody struct {
	mu        sync.Mutex
	steps     []MockStep
	index     int
	pollCount int
	closed    bool
	endHint   bool // value IsEndStream reports before the script runs out
}

// NewMockBody creates a body that plays back the given steps in order
// and reports end of stream once they run out.
func NewMockBody(steps ...MockStep) *MockBody {
	return &MockBody{steps: steps}
}

// SetEndStream overrides IsEndStream while scripted steps remain.
func (m *MockBody) SetEndStream(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.endHint = v
}

// PollCount returns the number of Next calls observed.
func (m *MockBody) PollCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pollCount
}

// Closed reports whether Close has been called.
func (m *MockBody) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Next plays back the next scripted step.
func (m *MockBody) Next(ctx context.Context) (body.Frame, bool, error) {
	if err := ctx.Err(); err != nil {
		return body.Frame{}, false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.pollCount++

	if m.index >= len(m.steps) {
		return body.Frame{}, false, nil
	}

	step := m.steps[m.index]
	m.index++

	switch {
	case step.Err != nil:
		return body.Frame{}, false, step.Err
	case step.End:
		m.index = len(m.steps)
		return body.Frame{}, false, nil
	case step.Trailers != nil:
		return body.TrailersFrame(step.Trailers), true, nil
	default:
		return body.DataFrame(buf.NewBytes(step.Data)), true, nil
	}
}

// IsEndStream reports true once the script has run out.
func (m *MockBody) IsEndStream() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.endHint || m.index >= len(m.steps)
}

// SizeHint returns an unknown hint.
func (m *MockBody) SizeHint() body.SizeHint {
	return body.SizeHint{}
}

// Close records the call.
func (m *MockBody) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
