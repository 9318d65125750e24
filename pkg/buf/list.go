package buf

import "fmt"

// List is an ordered, append-only sequence of buffer segments that
// behaves as one logical readable buffer. Segments are consumed
// front-to-back and evicted the instant they are fully drained.
// Appending never copies segment contents; a copy happens only when the
// caller explicitly asks for a contiguous materialization.
//
// The zero value is an empty List ready for use.
type List struct {
	segs []Buf
}

// Push appends a segment to the back of the list. Exhausted segments
// are skipped.
func (l *List) Push(b Buf) {
	if b == nil || b.Remaining() == 0 {
		return
	}
	l.segs = append(l.segs, b)
}

// Remaining returns the total number of unconsumed bytes across all
// segments.
func (l *List) Remaining() int {
	var n int
	for _, s := range l.segs {
		n += s.Remaining()
	}
	return n
}

// Chunk returns a view of the front segment's unconsumed bytes. The
// view may be shorter than Remaining. It returns nil when the list is
// empty.
func (l *List) Chunk() []byte {
	if len(l.segs) == 0 {
		return nil
	}
	return l.segs[0].Chunk()
}

// Advance consumes n bytes from the front, evicting segments as they
// drain. It panics if n exceeds Remaining.
func (l *List) Advance(n int) {
	if n < 0 || n > l.Remaining() {
		panic(fmt.Sprintf("buf: advance %d beyond remaining %d", n, l.Remaining()))
	}
	for n > 0 {
		front := l.segs[0]
		if r := front.Remaining(); r <= n {
			front.Advance(r)
			n -= r
			l.segs[0] = nil
			l.segs = l.segs[1:]
		} else {
			front.Advance(n)
			n = 0
		}
	}
}

// CopyToBytes materializes exactly n bytes from the front into one
// contiguous slice, consuming them. When the front segment's chunk
// already holds n contiguous bytes no copy is made; otherwise only the
// spanned segments are concatenated. It panics if n exceeds Remaining.
func (l *List) CopyToBytes(n int) []byte {
	if n < 0 || n > l.Remaining() {
		panic(fmt.Sprintf("buf: copy %d beyond remaining %d", n, l.Remaining()))
	}
	if n == 0 {
		return nil
	}

	if chunk := l.segs[0].Chunk(); len(chunk) >= n {
		out := chunk[:n:n]
		l.Advance(n)
		return out
	}

	out := make([]byte, 0, n)
	for n > 0 {
		chunk := l.Chunk()
		if len(chunk) > n {
			chunk = chunk[:n]
		}
		out = append(out, chunk...)
		l.Advance(len(chunk))
		n -= len(chunk)
	}
	return out
}
