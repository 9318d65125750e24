package observe

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vnykmshr/bodyflow/internal/testutil"
	"github.com/vnykmshr/bodyflow/pkg/body"
	"github.com/vnykmshr/bodyflow/pkg/metrics"
)

func newTestRegistry() *metrics.Registry {
	return metrics.NewRegistry(prometheus.NewRegistry())
}

func TestObserveCountsFramesAndBytes(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	registry := newTestRegistry()
	trailerMap := http.Header{}
	trailerMap.Set("Foo", "bar")
	inner := body.FromChunks([]byte("hel"), []byte("lo!")).WithTrailers(trailerMap)
	b := NewWithRegistry(inner, "upload", registry)

	collected, err := body.Collect(ctx, b)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, string(collected.Bytes()), "hello!")

	testutil.AssertEqual(t,
		promtestutil.ToFloat64(registry.FramesDelivered.WithLabelValues("upload", "data")), 2.0)
	testutil.AssertEqual(t,
		promtestutil.ToFloat64(registry.FramesDelivered.WithLabelValues("upload", "trailers")), 1.0)
	testutil.AssertEqual(t,
		promtestutil.ToFloat64(registry.BytesDelivered.WithLabelValues("upload")), 6.0)
	testutil.AssertEqual(t,
		promtestutil.ToFloat64(registry.StreamsEnded.WithLabelValues("upload")), 1.0)
	testutil.AssertEqual(t,
		promtestutil.ToFloat64(registry.StreamErrors.WithLabelValues("upload")), 0.0)
}

func TestObserveCountsStreamErrors(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	registry := newTestRegistry()
	inner := testutil.NewMockBody(testutil.MockStep{Err: errors.New("upstream reset")})
	b := NewWithRegistry(inner, "download", registry)

	_, _, err := b.Next(ctx)
	testutil.AssertError(t, err)

	testutil.AssertEqual(t,
		promtestutil.ToFloat64(registry.StreamErrors.WithLabelValues("download")), 1.0)
	testutil.AssertEqual(t,
		promtestutil.ToFloat64(registry.StreamsEnded.WithLabelValues("download")), 0.0)
}

func TestObserveCountsStreamEndOnce(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	registry := newTestRegistry()
	b := NewWithRegistry(body.Empty(), "upload", registry)

	for i := 0; i < 3; i++ {
		_, more, err := b.Next(ctx)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, more, false)
	}

	testutil.AssertEqual(t,
		promtestutil.ToFloat64(registry.StreamsEnded.WithLabelValues("upload")), 1.0)
}

func TestObserveCountsTerminalErrorOnce(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	registry := newTestRegistry()
	inner := testutil.NewMockBody(testutil.MockStep{Err: errors.New("upstream reset")})
	b := NewWithRegistry(inner, "download", registry)

	_, _, err := b.Next(ctx)
	testutil.AssertError(t, err)

	// Re-polling after failure yields end of stream; neither counter
	// moves again.
	_, more, err := b.Next(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, more, false)

	testutil.AssertEqual(t,
		promtestutil.ToFloat64(registry.StreamErrors.WithLabelValues("download")), 1.0)
	testutil.AssertEqual(t,
		promtestutil.ToFloat64(registry.StreamsEnded.WithLabelValues("download")), 0.0)
}

func TestObserveIgnoresContextCancellation(t *testing.T) {
	registry := newTestRegistry()
	inner := testutil.NewMockBody(testutil.MockStep{Data: []byte("x")})
	b := NewWithRegistry(inner, "download", registry)

	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := b.Next(canceled)
	testutil.AssertEqual(t, errors.Is(err, context.Canceled), true)
	testutil.AssertEqual(t,
		promtestutil.ToFloat64(registry.StreamErrors.WithLabelValues("download")), 0.0)
}

func TestObserveIsTransparent(t *testing.T) {
	registry := newTestRegistry()
	inner := testutil.NewMockBody(testutil.MockStep{Data: []byte("abc")})
	b := NewWithRegistry(inner, "upload", registry)

	testutil.AssertEqual(t, b.IsEndStream(), false)
	testutil.AssertEqual(t, b.SizeHint().Lower(), uint64(0))
	testutil.AssertNoError(t, b.Close())
	testutil.AssertEqual(t, inner.Closed(), true)
}
