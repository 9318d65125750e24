// Package observe instruments a body with Prometheus metrics: frames
// and bytes delivered, streams ended, and terminal errors, labeled by
// body name. It changes nothing about the stream itself.
package observe
