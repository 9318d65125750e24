package body

import (
	"net/http"

	"github.com/vnykmshr/bodyflow/pkg/buf"
)

// Frame is one unit of a body stream: either a data chunk or a trailer
// field map. A well-formed stream yields zero or more data frames, then
// at most one trailers frame, then ends.
type Frame struct {
	data     buf.Buf
	trailers http.Header
}

// DataFrame wraps a buffer segment in a frame.
func DataFrame(b buf.Buf) Frame {
	return Frame{data: b}
}

// TrailersFrame wraps a trailer map in a frame.
func TrailersFrame(t http.Header) Frame {
	return Frame{trailers: t}
}

// Data returns the frame's buffer segment, if this is a data frame.
func (f Frame) Data() (buf.Buf, bool) {
	return f.data, f.data != nil
}

// Trailers returns the frame's trailer map, if this is a trailers frame.
func (f Frame) Trailers() (http.Header, bool) {
	return f.trailers, f.trailers != nil
}

// IsData reports whether this is a data frame.
func (f Frame) IsData() bool {
	return f.data != nil
}

// IsTrailers reports whether this is a trailers frame.
func (f Frame) IsTrailers() bool {
	return f.trailers != nil
}

// MergeTrailers extends dst with every field of extra, appending values
// for fields present in both. It returns dst, or a new map when dst is
// nil. Later entries extend earlier ones, never overwrite.
func MergeTrailers(dst, extra http.Header) http.Header {
	if extra == nil {
		return dst
	}
	if dst == nil {
		dst = make(http.Header, len(extra))
	}
	for name, values := range extra {
		for _, v := range values {
			dst.Add(name, v)
		}
	}
	return dst
}
