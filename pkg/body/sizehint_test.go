package body_test

import (
	"testing"

	"github.com/vnykmshr/bodyflow/internal/testutil"
	"github.com/vnykmshr/bodyflow/pkg/body"
)

func TestSizeHintZeroValue(t *testing.T) {
	var h body.SizeHint
	testutil.AssertEqual(t, h.Lower(), uint64(0))
	_, known := h.Upper()
	testutil.AssertEqual(t, known, false)
	_, exact := h.ExactSize()
	testutil.AssertEqual(t, exact, false)
}

func TestSizeHintExact(t *testing.T) {
	h := body.Exact(42)
	testutil.AssertEqual(t, h.Lower(), uint64(42))

	upper, known := h.Upper()
	testutil.AssertEqual(t, known, true)
	testutil.AssertEqual(t, upper, uint64(42))

	n, exact := h.ExactSize()
	testutil.AssertEqual(t, exact, true)
	testutil.AssertEqual(t, n, uint64(42))
}

func TestSizeHintAdd(t *testing.T) {
	type parts struct {
		lower    uint64
		upper    uint64
		hasUpper bool
	}
	toParts := func(h body.SizeHint) parts {
		upper, ok := h.Upper()
		return parts{h.Lower(), upper, ok}
	}
	bounded := func(lower, upper uint64) body.SizeHint {
		h := body.SizeHint{}
		h.SetUpper(upper)
		h.SetLower(lower)
		return h
	}
	unbounded := func(lower uint64) body.SizeHint {
		h := body.SizeHint{}
		h.SetLower(lower)
		return h
	}

	tests := []struct {
		name string
		a, b body.SizeHint
		want parts
	}{
		{"exact plus exact", body.Exact(20), body.Exact(5), parts{25, 25, true}},
		{"bounded plus bounded", bounded(4, 8), bounded(16, 32), parts{20, 40, true}},
		{"bounded plus unbounded", bounded(10, 50), unbounded(25), parts{35, 0, false}},
		{"unbounded plus unbounded", unbounded(64), unbounded(128), parts{192, 0, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, toParts(tt.a.Add(tt.b)), tt.want)
			// Addition is commutative.
			testutil.AssertEqual(t, toParts(tt.b.Add(tt.a)), tt.want)
		})
	}
}

func TestSizeHintSetLowerPanicsAboveUpper(t *testing.T) {
	h := body.Exact(5)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	h.SetLower(6)
}

func TestSizeHintSetUpperPanicsBelowLower(t *testing.T) {
	var h body.SizeHint
	h.SetLower(10)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	h.SetUpper(9)
}
