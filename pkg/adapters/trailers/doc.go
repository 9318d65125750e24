// Package trailers attaches a lazily computed trailer map to a body.
// The wrapped body's frames are delivered first; its own trailers, if
// any, are merged with the computed map (computed fields appended
// second) and emitted as a single trailers frame. Chaining the adapter
// composes: each layer extends the merged map of the layers beneath it.
package trailers
