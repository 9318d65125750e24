// Package metrics provides Prometheus instrumentation for bodyflow
// components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for bodyflow components.
type Registry struct {
	// Body streaming metrics
	FramesDelivered *prometheus.CounterVec
	BytesDelivered  *prometheus.CounterVec
	StreamErrors    *prometheus.CounterVec
	StreamsEnded    *prometheus.CounterVec

	// Throttling metrics
	ThrottleWaitTime *prometheus.HistogramVec
}

// DefaultRegistry is the default metrics registry used by bodyflow
// components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus
// registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		FramesDelivered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bodyflow",
				Subsystem: "body",
				Name:      "frames_delivered_total",
				Help:      "Total number of frames delivered to consumers",
			},
			[]string{"body_name", "frame_type"},
		),

		BytesDelivered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bodyflow",
				Subsystem: "body",
				Name:      "bytes_delivered_total",
				Help:      "Total number of data bytes delivered to consumers",
			},
			[]string{"body_name"},
		),

		StreamErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bodyflow",
				Subsystem: "body",
				Name:      "stream_errors_total",
				Help:      "Total number of terminal stream errors",
			},
			[]string{"body_name"},
		),

		StreamsEnded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bodyflow",
				Subsystem: "body",
				Name:      "streams_ended_total",
				Help:      "Total number of streams that reached end of stream",
			},
			[]string{"body_name"},
		),

		ThrottleWaitTime: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "bodyflow",
				Subsystem: "throttle",
				Name:      "wait_duration_seconds",
				Help:      "Time spent paused by rate pacing",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"body_name"},
		),
	}
}
