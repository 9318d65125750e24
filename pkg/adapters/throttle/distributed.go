package throttle

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vnykmshr/bodyflow/pkg/body"
	"github.com/vnykmshr/bodyflow/pkg/common/validation"
)

// luaReserve atomically refills a shared byte budget and debits the
// requested amount, returning the delay (in seconds) the caller must
// wait before acting. The budget may go negative; the delay covers the
// deficit, exactly like the local cursor.
const luaReserve = `
local tokens_key = KEYS[1]
local last_key = KEYS[2]
local requested = tonumber(ARGV[1])
local now = tonumber(ARGV[2])
local rate = tonumber(ARGV[3])
local burst = tonumber(ARGV[4])
local ttl = tonumber(ARGV[5])

local tokens = tonumber(redis.call('GET', tokens_key) or burst)
local last = tonumber(redis.call('GET', last_key) or now)

local elapsed = now - last
if elapsed > 0 then
  tokens = math.min(burst, tokens + elapsed * rate)
end

tokens = tokens - requested
local delay = 0
if tokens < 0 then
  delay = -tokens / rate
end

redis.call('SET', tokens_key, tostring(tokens), 'EX', ttl)
redis.call('SET', last_key, tostring(now), 'EX', ttl)

return tostring(delay)
`

// DistributedConfig holds configuration for a Redis-coordinated
// throttled body.
type DistributedConfig struct {
	// Client is the Redis client used for coordination.
	Client redis.UniversalClient

	// Key is the Redis key prefix for the shared budget.
	Key string

	// BytesPerSecond is the aggregate byte rate shared by every
	// participant.
	BytesPerSecond float64

	// Burst is the maximum byte budget that can accumulate. If zero,
	// one second's worth of bytes is used.
	Burst int

	// RedisTimeout bounds each Redis operation. Defaults to 500ms.
	RedisTimeout time.Duration

	// KeyTTL is how long budget keys live in Redis. Defaults to one
	// hour.
	KeyTTL time.Duration

	// FailOpen delivers data unthrottled when Redis is unavailable
	// instead of failing the stream.
	FailOpen bool

	// Clock provides time and timed suspension. If nil, SystemClock
	// is used.
	Clock Clock
}

// DefaultDistributedConfig returns a default distributed throttle
// configuration.
func DefaultDistributedConfig() DistributedConfig {
	return DistributedConfig{
		RedisTimeout: 500 * time.Millisecond,
		KeyTTL:       time.Hour,
		FailOpen:     true,
	}
}

// Distributed paces a body against a byte budget shared across
// application instances through Redis, capping the aggregate egress
// rate of a fleet rather than one stream. Each data chunk is debited
// from the shared budget atomically; the stream pauses to cover any
// deficit before the chunk is delivered.
type Distributed struct {
	inner  body.Body
	config DistributedConfig
	script *redis.Script
	clock  Clock
}

// NewDistributed wraps inner with a shared byte budget. Zero-valued
// config fields fall back to DefaultDistributedConfig.
func NewDistributed(inner body.Body, config DistributedConfig) (*Distributed, error) {
	if err := validation.ValidateNotNil("throttle", "client", config.Client); err != nil {
		return nil, err
	}
	if err := validation.ValidateNotEmpty("throttle", "key", config.Key); err != nil {
		return nil, err
	}
	if err := validation.ValidatePositiveFloat("throttle", "rate", config.BytesPerSecond); err != nil {
		return nil, err
	}

	defaults := DefaultDistributedConfig()
	if config.Burst <= 0 {
		config.Burst = int(config.BytesPerSecond)
	}
	if config.RedisTimeout <= 0 {
		config.RedisTimeout = defaults.RedisTimeout
	}
	if config.KeyTTL <= 0 {
		config.KeyTTL = defaults.KeyTTL
	}
	if config.Clock == nil {
		config.Clock = SystemClock{}
	}

	return &Distributed{
		inner:  inner,
		config: config,
		script: redis.NewScript(luaReserve),
		clock:  config.Clock,
	}, nil
}

// Next delivers the inner body's next frame, first debiting data frames
// from the shared budget and pausing to cover any deficit.
func (d *Distributed) Next(ctx context.Context) (body.Frame, bool, error) {
	frame, ok, err := d.inner.Next(ctx)
	if err != nil || !ok {
		return frame, ok, err
	}

	data, isData := frame.Data()
	if !isData {
		return frame, true, nil
	}

	delay, err := d.reserve(ctx, data.Remaining())
	if err != nil {
		if d.config.FailOpen {
			return frame, true, nil
		}
		return body.Frame{}, false, err
	}
	if delay > 0 {
		if err := d.clock.Sleep(ctx, delay); err != nil {
			return body.Frame{}, false, err
		}
	}
	return frame, true, nil
}

// reserve debits n bytes from the shared budget and returns the pause
// required before delivery.
func (d *Distributed) reserve(ctx context.Context, n int) (time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, d.config.RedisTimeout)
	defer cancel()

	now := d.clock.Now()
	result, err := d.script.Run(ctx, d.config.Client, []string{
		d.config.Key + ":tokens",
		d.config.Key + ":last_refill",
	},
		n,
		float64(now.UnixNano())/1e9,
		d.config.BytesPerSecond,
		d.config.Burst,
		int(d.config.KeyTTL.Seconds()),
	).Result()
	if err != nil {
		return 0, fmt.Errorf("throttle: reserve: %w", err)
	}

	text, ok := result.(string)
	if !ok {
		return 0, fmt.Errorf("throttle: reserve: unexpected script result %T", result)
	}
	seconds, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("throttle: reserve: %w", err)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// IsEndStream forwards to the inner body.
func (d *Distributed) IsEndStream() bool {
	return d.inner.IsEndStream()
}

// SizeHint forwards to the inner body.
func (d *Distributed) SizeHint() body.SizeHint {
	return d.inner.SizeHint()
}

// Close forwards to the inner body. The shared budget keys expire on
// their own.
func (d *Distributed) Close() error {
	return d.inner.Close()
}
