package body

import "fmt"

// SizeHint is a lower/upper bound estimate of the bytes a body has left
// to yield. The zero value is "0 or more bytes, upper bound unknown".
type SizeHint struct {
	lower    uint64
	upper    uint64
	hasUpper bool
}

// Exact returns a hint whose lower and upper bounds both equal n.
func Exact(n uint64) SizeHint {
	return SizeHint{lower: n, upper: n, hasUpper: true}
}

// Lower returns the lower bound.
func (h SizeHint) Lower() uint64 {
	return h.lower
}

// Upper returns the upper bound and whether one is known.
func (h SizeHint) Upper() (uint64, bool) {
	return h.upper, h.hasUpper
}

// ExactSize returns the exact remaining size, defined only when the
// lower and upper bounds are equal.
func (h SizeHint) ExactSize() (uint64, bool) {
	if h.hasUpper && h.lower == h.upper {
		return h.upper, true
	}
	return 0, false
}

// SetLower sets the lower bound. It panics if n exceeds a known upper
// bound.
func (h *SizeHint) SetLower(n uint64) {
	if h.hasUpper && n > h.upper {
		panic(fmt.Sprintf("body: size hint lower %d exceeds upper %d", n, h.upper))
	}
	h.lower = n
}

// SetUpper sets the upper bound. It panics if n is below the lower
// bound.
func (h *SizeHint) SetUpper(n uint64) {
	if n < h.lower {
		panic(fmt.Sprintf("body: size hint upper %d below lower %d", n, h.lower))
	}
	h.upper = n
	h.hasUpper = true
}

// SetExact sets both bounds to n.
func (h *SizeHint) SetExact(n uint64) {
	h.lower = n
	h.upper = n
	h.hasUpper = true
}

// Add combines two hints pointwise: lower bounds sum, and the upper
// bound is known only when both operands' upper bounds are known.
// Addition is associative and commutative.
func (h SizeHint) Add(other SizeHint) SizeHint {
	sum := SizeHint{lower: h.lower + other.lower}
	if h.hasUpper && other.hasUpper {
		sum.upper = h.upper + other.upper
		sum.hasUpper = true
	}
	return sum
}
