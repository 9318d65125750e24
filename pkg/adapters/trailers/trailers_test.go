package trailers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/vnykmshr/bodyflow/internal/testutil"
	"github.com/vnykmshr/bodyflow/pkg/body"
)

func fixed(h http.Header) Func {
	return func(context.Context) (http.Header, error) { return h, nil }
}

func TestTrailersInjectedAfterData(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	extra := http.Header{}
	extra.Set("Grpc-Status", "0")
	b := New(body.Full([]byte("response")), fixed(extra))

	collected, err := body.Collect(ctx, b)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, string(collected.Bytes()), "response")
	testutil.AssertEqual(t, collected.Trailers().Get("grpc-status"), "0")
}

func TestTrailersAppliedTwiceMergesOnce(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	first := http.Header{}
	first.Set("Foo", "bar")
	second := http.Header{}
	second.Set("Baz", "qux")

	b := New(New(body.Full([]byte("data")), fixed(first)), fixed(second))

	frame, more, err := b.Next(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, more, true)
	testutil.AssertEqual(t, frame.IsData(), true)

	// Both layers collapse into a single trailers frame.
	frame, more, err = b.Next(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, more, true)
	merged, ok := frame.Trailers()
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, merged.Get("foo"), "bar")
	testutil.AssertEqual(t, merged.Get("baz"), "qux")

	_, more, err = b.Next(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, more, false)
	testutil.AssertEqual(t, b.IsEndStream(), true)
}

func TestTrailersMergeWithInnerTrailers(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	native := http.Header{}
	native.Set("Foo", "native")
	inner := body.FromChunks([]byte("data")).WithTrailers(native)

	extra := http.Header{}
	extra.Set("Foo", "computed")
	extra.Set("Bar", "added")
	b := New(inner, fixed(extra))

	collected, err := body.Collect(ctx, b)
	testutil.AssertNoError(t, err)

	// The computed fields extend the native ones without overwriting.
	values := collected.Trailers().Values("foo")
	testutil.AssertEqual(t, len(values), 2)
	testutil.AssertEqual(t, values[0], "native")
	testutil.AssertEqual(t, values[1], "computed")
	testutil.AssertEqual(t, collected.Trailers().Get("bar"), "added")
}

func TestTrailersNilMapEndsPlainly(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	b := New(body.Full([]byte("data")), fixed(nil))

	collected, err := body.Collect(ctx, b)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, string(collected.Bytes()), "data")
	if collected.Trailers() != nil {
		t.Fatalf("expected no trailers, got %v", collected.Trailers())
	}
	testutil.AssertEqual(t, b.IsEndStream(), true)
}

func TestTrailersFuncError(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	wantErr := errors.New("trailer lookup failed")
	b := New(body.Empty(), func(context.Context) (http.Header, error) {
		return nil, wantErr
	})

	_, _, err := b.Next(ctx)
	testutil.AssertEqual(t, errors.Is(err, wantErr), true)
}

func TestTrailersEndStreamConservative(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	inner := body.Full([]byte("x"))
	b := New(inner, fixed(nil))

	// The inner body may be done, but a trailers frame may still be
	// emitted, so the stream is not over yet.
	testutil.AssertEqual(t, b.IsEndStream(), false)

	_, _, err := b.Next(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, b.IsEndStream(), false)

	_, more, err := b.Next(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, more, false)
	testutil.AssertEqual(t, b.IsEndStream(), true)
}

func TestTrailersSizeHint(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	b := New(body.Full([]byte("abcd")), fixed(nil))

	n, _ := b.SizeHint().ExactSize()
	testutil.AssertEqual(t, n, uint64(4))

	_, _, err := b.Next(ctx)
	testutil.AssertNoError(t, err)
	_, _, err = b.Next(ctx)
	testutil.AssertNoError(t, err)

	n, exact := b.SizeHint().ExactSize()
	testutil.AssertEqual(t, exact, true)
	testutil.AssertEqual(t, n, uint64(0))
}

func TestTrailersCloseForwards(t *testing.T) {
	inner := testutil.NewMockBody(testutil.MockStep{Data: []byte("x")})
	b := New(inner, fixed(nil))

	testutil.AssertNoError(t, b.Close())
	testutil.AssertEqual(t, inner.Closed(), true)
	testutil.AssertEqual(t, b.IsEndStream(), true)
}
