package buf

import "fmt"

// Buf is a readable byte cursor. It exposes the number of unconsumed
// bytes, a view of the next contiguous chunk, and an advance operation.
// The core is generic over this capability and does not assume a
// specific memory representation.
type Buf interface {
	// Remaining returns the number of bytes left to consume.
	Remaining() int

	// Chunk returns a view of the next contiguous unconsumed bytes.
	// The view may be shorter than Remaining. It is valid until the
	// next call to Advance.
	Chunk() []byte

	// Advance consumes n bytes from the front of the cursor.
	// It panics if n exceeds Remaining.
	Advance(n int)
}

// Bytes is a Buf over an owned byte slice.
type Bytes struct {
	data []byte
	off  int
}

// NewBytes creates a Bytes cursor over b. The cursor does not copy b;
// the caller must not mutate it afterwards.
func NewBytes(b []byte) *Bytes {
	return &Bytes{data: b}
}

// Remaining returns the number of unconsumed bytes.
func (b *Bytes) Remaining() int {
	return len(b.data) - b.off
}

// Chunk returns the unconsumed bytes.
func (b *Bytes) Chunk() []byte {
	return b.data[b.off:]
}

// Advance consumes n bytes. It panics if n exceeds Remaining.
func (b *Bytes) Advance(n int) {
	if n < 0 || n > b.Remaining() {
		panic(fmt.Sprintf("buf: advance %d beyond remaining %d", n, b.Remaining()))
	}
	b.off += n
}
