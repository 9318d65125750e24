/*
Package channel lets a body be fed from a different goroutine than the
one polling it, through a bounded FIFO queue with an out-of-band abort
path.

	tx, rx := channel.New(16)

	go func() {
		defer tx.Close()
		tx.SendData(ctx, buf.NewBytes(chunk))
		tx.SendTrailers(ctx, trailerMap)
	}()

	collected, err := body.Collect(ctx, rx)

The buffer bound is the number of frames queued before Send blocks,
providing natural backpressure from a slow consumer to a fast producer.
Closing the sender completes the stream; Abort terminates it with an
error that the consumer sees on its next poll, ahead of any frames
still queued. Closing the body side makes subsequent sends fail locally
with ErrDisconnected, never a panic.

The adapter contains no goroutines of its own: both halves are driven
entirely by their callers.
*/
package channel
