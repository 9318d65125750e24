// Package limited enforces a byte budget over a wrapped body, yielding
// a terminal ErrLengthLimitExceeded instead of the first frame that
// would exceed it. Use it to bound untrusted request or response
// payloads before buffering them.
package limited
