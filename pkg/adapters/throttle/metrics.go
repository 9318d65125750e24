package throttle

import (
	"time"

	"github.com/vnykmshr/bodyflow/pkg/body"
	"github.com/vnykmshr/bodyflow/pkg/metrics"
)

// NewWithMetrics creates a throttled body that records every pacing
// pause to the default metrics registry under the given body name.
func NewWithMetrics(inner body.Body, per time.Duration, bytes int, name string) *Body {
	return NewWithConfigAndMetrics(inner, Config{Bytes: bytes, Per: per}, name, metrics.DefaultRegistry)
}

// NewWithConfigAndMetrics creates a throttled body with custom
// configuration that records pacing pauses to the given registry.
func NewWithConfigAndMetrics(inner body.Body, config Config, name string, registry *metrics.Registry) *Body {
	observe := registry.ThrottleWaitTime.WithLabelValues(name)
	prev := config.OnWait
	config.OnWait = func(d time.Duration) {
		observe.Observe(d.Seconds())
		if prev != nil {
			prev(d)
		}
	}
	return NewWithConfig(inner, config)
}
