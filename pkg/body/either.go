package body

import "context"

// Either is a two-case sum of body types, used when a call site must
// produce one of two structurally different bodies behind a single
// type. Every Body operation forwards to whichever case is present.
type Either[L, R Body] struct {
	left  L
	right R
	isR   bool
}

// Left constructs an Either holding the left case.
func Left[L, R Body](l L) Either[L, R] {
	return Either[L, R]{left: l}
}

// Right constructs an Either holding the right case.
func Right[L, R Body](r R) Either[L, R] {
	return Either[L, R]{right: r, isR: true}
}

// IsLeft reports whether the left case is present.
func (e Either[L, R]) IsLeft() bool { return !e.isR }

// IsRight reports whether the right case is present.
func (e Either[L, R]) IsRight() bool { return e.isR }

// Flip swaps the cases: Left becomes Right and Right becomes Left.
func (e Either[L, R]) Flip() Either[R, L] {
	if e.isR {
		return Left[R, L](e.right)
	}
	return Right[R, L](e.left)
}

// MapLeft applies f to the left case, if present.
func MapLeft[L, R, T Body](e Either[L, R], f func(L) T) Either[T, R] {
	if e.isR {
		return Right[T, R](e.right)
	}
	return Left[T, R](f(e.left))
}

// MapRight applies f to the right case, if present.
func MapRight[L, R, T Body](e Either[L, R], f func(R) T) Either[L, T] {
	if e.isR {
		return Right[L, T](f(e.right))
	}
	return Left[L, T](e.left)
}

// IntoInner unwraps an Either whose cases share one type, regardless of
// which case is present.
func IntoInner[B Body](e Either[B, B]) B {
	if e.isR {
		return e.right
	}
	return e.left
}

// Next forwards to the present case.
func (e Either[L, R]) Next(ctx context.Context) (Frame, bool, error) {
	if e.isR {
		return e.right.Next(ctx)
	}
	return e.left.Next(ctx)
}

// IsEndStream forwards to the present case.
func (e Either[L, R]) IsEndStream() bool {
	if e.isR {
		return e.right.IsEndStream()
	}
	return e.left.IsEndStream()
}

// SizeHint forwards to the present case.
func (e Either[L, R]) SizeHint() SizeHint {
	if e.isR {
		return e.right.SizeHint()
	}
	return e.left.SizeHint()
}

// Close forwards to the present case.
func (e Either[L, R]) Close() error {
	if e.isR {
		return e.right.Close()
	}
	return e.left.Close()
}
