// Package state provides computations that thread an explicit state value:
// a Transformer maps a state to an outcome and the next state, and a Fallible
// transformer may fail while still handing back the state it reached, so the
// caller decides whether to keep it or to resume from an earlier one.
//
// States are passed by value. A combinator that has to "undo" a failed step
// simply continues with the state it was given.
package state

// Transformer runs a computation over a state.
type Transformer[S, O any] func(S) (O, S)

// Fallible is a Transformer whose outcome may be an error. The returned state
// is the one reached when the computation stopped, successful or not.
type Fallible[S, O any] func(S) (O, S, error)

// Option is an outcome that may be absent.
type Option[T any] struct {
	Value T
	Valid bool
}

func Some[T any](v T) Option[T] {
	return Option[T]{Value: v, Valid: true}
}

func None[T any]() Option[T] {
	return Option[T]{}
}

// Or returns the value, or fallback when it is absent.
func (o Option[T]) Or(fallback T) T {
	if o.Valid {
		return o.Value
	}
	return fallback
}

// Tuple is the outcome of Pair.
type Tuple[A, B any] struct {
	First  A
	Second B
}

// Or is a tagged union of a Left and a Right outcome.
type Or[L, R any] struct {
	left    L
	right   R
	isRight bool
}

func Left[L, R any](v L) Or[L, R] {
	return Or[L, R]{left: v}
}

func Right[L, R any](v R) Or[L, R] {
	return Or[L, R]{right: v, isRight: true}
}

func (e Or[L, R]) IsRight() bool {
	return e.isRight
}

func (e Or[L, R]) Left() (L, bool) {
	return e.left, !e.isRight
}

func (e Or[L, R]) Right() (R, bool) {
	return e.right, e.isRight
}

// Return yields o without touching the state.
func Return[S, O any](o O) Transformer[S, O] {
	return func(s S) (O, S) {
		return o, s
	}
}

func Map[S, A, B any](m Transformer[S, A], f func(A) B) Transformer[S, B] {
	return func(s S) (B, S) {
		a, next := m(s)
		return f(a), next
	}
}

// Bind runs m and feeds its outcome to f, threading the state through both.
func Bind[S, A, B any](m Transformer[S, A], f func(A) Transformer[S, B]) Transformer[S, B] {
	return func(s S) (B, S) {
		a, next := m(s)
		return f(a)(next)
	}
}

// Pair runs left then right on the state left produced.
func Pair[S, A, B any](left Transformer[S, A], right Transformer[S, B]) Transformer[S, Tuple[A, B]] {
	return Bind(left, func(a A) Transformer[S, Tuple[A, B]] {
		return Map(right, func(b B) Tuple[A, B] {
			return Tuple[A, B]{First: a, Second: b}
		})
	})
}

// Composition runs left, then right on the resulting state. The outcome is
// Right when right produced a value and Left, carrying left's outcome, when
// it did not.
func Composition[S, A, B any](left Transformer[S, A], right Transformer[S, Option[B]]) Transformer[S, Or[A, B]] {
	return Bind(left, func(a A) Transformer[S, Or[A, B]] {
		return Map(right, func(b Option[B]) Or[A, B] {
			if b.Valid {
				return Right[A](b.Value)
			}
			return Left[A, B](a)
		})
	})
}

// Lift turns a Transformer into a Fallible that never fails.
func Lift[S, O any](m Transformer[S, O]) Fallible[S, O] {
	return func(s S) (O, S, error) {
		o, next := m(s)
		return o, next, nil
	}
}

func MapOut[S, A, B any](m Fallible[S, A], f func(A) B) Fallible[S, B] {
	return func(s S) (B, S, error) {
		a, next, err := m(s)
		if err != nil {
			var zero B
			return zero, next, err
		}
		return f(a), next, nil
	}
}

func MapErr[S, O any](m Fallible[S, O], f func(error) error) Fallible[S, O] {
	return func(s S) (O, S, error) {
		o, next, err := m(s)
		if err != nil {
			return o, next, f(err)
		}
		return o, next, nil
	}
}

// Then runs m and, when it succeeds, f applied to its outcome. The first
// error short-circuits and comes back with the state reached so far.
func Then[S, A, B any](m Fallible[S, A], f func(A) Fallible[S, B]) Fallible[S, B] {
	return func(s S) (B, S, error) {
		a, next, err := m(s)
		if err != nil {
			var zero B
			return zero, next, err
		}
		return f(a)(next)
	}
}

// PairF is Pair for fallible computations.
func PairF[S, A, B any](left Fallible[S, A], right Fallible[S, B]) Fallible[S, Tuple[A, B]] {
	return Then(left, func(a A) Fallible[S, Tuple[A, B]] {
		return MapOut(right, func(b B) Tuple[A, B] {
			return Tuple[A, B]{First: a, Second: b}
		})
	})
}

// Optional runs m. On success the outcome is present and the advanced state
// is kept; on failure the outcome is absent, the state is the one Optional
// was given and the error is dropped.
func Optional[S, O any](m Fallible[S, O]) Transformer[S, Option[O]] {
	return func(s S) (Option[O], S) {
		o, next, err := m(s)
		if err != nil {
			return None[O](), s
		}
		return Some(o), next
	}
}

// Either is an ordered choice: second runs, from the original state, only
// when first fails. When both fail the error is second's.
func Either[S, A, B any](first Fallible[S, A], second Fallible[S, B]) Fallible[S, Or[A, B]] {
	return func(s S) (Or[A, B], S, error) {
		if a, next, err := first(s); err == nil {
			return Left[A, B](a), next, nil
		}
		b, next, err := second(s)
		if err != nil {
			return Or[A, B]{}, s, err
		}
		return Right[A](b), next, nil
	}
}

// Choice tries alternatives in order, each from the original state, and
// commits to the first that succeeds. When all fail the last error is
// returned together with the original state.
func Choice[S, O any](alts ...Fallible[S, O]) Fallible[S, O] {
	return func(s S) (O, S, error) {
		var zero O
		var lastErr error = errNoAlternatives
		for _, alt := range alts {
			o, next, err := alt(s)
			if err == nil {
				return o, next, nil
			}
			lastErr = err
		}
		return zero, s, lastErr
	}
}
