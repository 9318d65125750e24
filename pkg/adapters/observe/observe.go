package observe

import (
	"context"
	"errors"

	"github.com/vnykmshr/bodyflow/pkg/body"
	"github.com/vnykmshr/bodyflow/pkg/metrics"
)

// Body wraps an inner body with Prometheus metrics collection. It is a
// transparent pass-through: frames, size hints and errors are forwarded
// unchanged while counters are updated per poll.
type Body struct {
	inner    body.Body
	name     string
	registry *metrics.Registry
	ended    bool
}

// New instruments inner under the given body name using the default
// registry.
func New(inner body.Body, name string) *Body {
	return NewWithRegistry(inner, name, metrics.DefaultRegistry)
}

// NewWithRegistry instruments inner against a specific registry.
func NewWithRegistry(inner body.Body, name string, registry *metrics.Registry) *Body {
	return &Body{inner: inner, name: name, registry: registry}
}

// Next forwards to the inner body, recording frames, bytes, stream ends
// and terminal errors. Context cancellations are not counted as stream
// errors, and a stream's terminal outcome is counted once no matter how
// often the body is re-polled afterwards.
func (o *Body) Next(ctx context.Context) (body.Frame, bool, error) {
	frame, ok, err := o.inner.Next(ctx)

	switch {
	case err != nil:
		if ctxErr := ctx.Err(); ctxErr == nil || !errors.Is(err, ctxErr) {
			if !o.ended {
				o.ended = true
				o.registry.StreamErrors.WithLabelValues(o.name).Inc()
			}
		}
	case !ok:
		if !o.ended {
			o.ended = true
			o.registry.StreamsEnded.WithLabelValues(o.name).Inc()
		}
	default:
		if data, isData := frame.Data(); isData {
			o.registry.FramesDelivered.WithLabelValues(o.name, "data").Inc()
			o.registry.BytesDelivered.WithLabelValues(o.name).Add(float64(data.Remaining()))
		} else {
			o.registry.FramesDelivered.WithLabelValues(o.name, "trailers").Inc()
		}
	}

	return frame, ok, err
}

// IsEndStream forwards to the inner body.
func (o *Body) IsEndStream() bool {
	return o.inner.IsEndStream()
}

// SizeHint forwards to the inner body.
func (o *Body) SizeHint() body.SizeHint {
	return o.inner.SizeHint()
}

// Close forwards to the inner body.
func (o *Body) Close() error {
	return o.inner.Close()
}
