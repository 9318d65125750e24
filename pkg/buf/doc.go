/*
Package buf defines the readable byte cursor capability used by body
streams and a zero-copy aggregator over it.

Buf is the minimal cursor interface: remaining length, a view of the
next contiguous chunk, and advance-by-n. Bytes adapts a plain byte
slice. List aggregates pushed segments front-to-back without copying;
consumers that re-emit bytes downstream never pay a copy, and consumers
that need one contiguous region pay exactly once via CopyToBytes.

	var l buf.List
	l.Push(buf.NewBytes([]byte("hel")))
	l.Push(buf.NewBytes([]byte("lo!")))

	l.Remaining()      // 6
	l.CopyToBytes(6)   // "hello!"
*/
package buf
