/*
Package body defines the pull-based streaming contract for HTTP message
bodies and its core vocabulary.

A Body is a stream of Frames: zero or more data frames, then at most one
trailers frame, then end of stream. Consumers drive a body by calling
Next repeatedly; producers block inside Next only while genuinely
waiting, and honor context cancellation. Close is the structural
cancellation primitive.

Key components:
  - Frame: a data chunk (buf.Buf) or a trailer map (http.Header)
  - SizeHint: lower/upper bound estimate of remaining bytes, with
    pointwise addition
  - Body: the Next/IsEndStream/SizeHint/Close contract
  - Empty, Full, FromChunks: simple producers
  - Either: two-case sum of body types forwarding every operation
  - Collect: terminal consumer folding a body into a Collected

Collecting a body:

	collected, err := body.Collect(ctx, b)
	if err != nil {
		return err
	}
	payload := collected.Bytes()
	trailers := collected.Trailers()

Trailer maps merge by appending: when two stages both carry trailers,
the later stage's fields extend the earlier one's, preserving duplicate
field values in order.
*/
package body
