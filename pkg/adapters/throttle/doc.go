/*
Package throttle paces a body's data delivery to a target byte rate.

The core Body adapter smooths delivery with a floating-point budget
cursor: each chunk debits the cursor, and a negative cursor arms a
timed wait before the next chunk. The first chunk is always delivered
immediately; end of stream, trailers and errors bypass pacing entirely.
Elapsed-time credit after a wait is clamped so a long stall cannot bank
a burst.

	paced := throttle.New(inner, time.Second, 64<<10) // 64 KiB/s

Rates can change while a transfer is live. Scheduler drives SetRate
from cron expressions, for time-of-day bandwidth windows:

	sched, err := throttle.NewScheduler(paced, []throttle.RateRule{
		{Spec: "0 22 * * *", BytesPerSecond: 1 << 20}, // open up at night
		{Spec: "0 8 * * *", BytesPerSecond: 64 << 10}, // clamp at 8am
	})
	sched.Start()

Distributed shares one byte budget across application instances through
Redis, capping a fleet's aggregate egress instead of a single stream:

	shared, err := throttle.NewDistributed(inner, throttle.DistributedConfig{
		Client:         redisClient,
		Key:            "egress:tenant42",
		BytesPerSecond: 10 << 20,
	})

Timing is injected through the Clock interface so tests can run
deterministically with a mock clock.
*/
package throttle
