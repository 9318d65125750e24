/*
Package bodyflow provides a pull-based streaming contract for HTTP message
bodies, a zero-copy segment aggregator, and stateful adapters that
transform one body stream into another.

Core (pkg/buf, pkg/body):
  - buf: readable byte cursors and the zero-copy segment list
  - body: the Frame/Body contract, size hints, simple producers,
    Either composition, and the Collect terminal consumer

Adapters (pkg/adapters):
  - limited: enforce a byte budget over a wrapped body
  - throttle: pace delivery to a byte rate, with cron-scheduled rate
    windows and Redis-coordinated distributed budgets
  - fuse: never poll a finished body again
  - trailers: attach or merge a lazily computed trailer map
  - channel: feed a body from another goroutine through a bounded queue
  - observe: Prometheus instrumentation for any body

Example usage:

	import (
		"github.com/vnykmshr/bodyflow/pkg/adapters/channel"
		"github.com/vnykmshr/bodyflow/pkg/body"
	)

	tx, rx := channel.New(16)
	go produce(tx)

	collected, err := body.Collect(ctx, rx)
*/
package bodyflow
