// Package fuse guarantees that a wrapped body is never polled again
// after it has ended or failed, releasing it promptly. Wrap bodies
// whose producers cannot uphold that contract themselves.
package fuse
