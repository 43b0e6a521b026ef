package gen

import "math/rand"

// Option models a present-or-absent value, the generator-level analogue of
// a nilable field. Valid is false for the absent case (None); Value is
// meaningless when Valid is false.
type Option[T any] struct {
	Valid bool
	Value T
}

// Some wraps v as a present Option.
func Some[T any](v T) Option[T] { return Option[T]{Valid: true, Value: v} }

// None returns the absent Option for T.
func None[T any]() Option[T] { return Option[T]{} }

// OptionOf generates Option[T] values, present with probability presentProb
// (clamped to [0, 1]). Shrink order for a generated Some(x): None first
// (offered exactly once), then Some(x') for every shrink x' of the
// underlying value. A generated None has no shrinks.
func OptionOf[T any](elem Generator[T], presentProb float64) Generator[Option[T]] {
	if presentProb < 0 {
		presentProb = 0
	}
	if presentProb > 1 {
		presentProb = 1
	}
	return From(func(r *rand.Rand, sz Size) (Option[T], Shrinker[Option[T]]) {
		if r == nil {
			r = rand.New(rand.NewSource(rand.Int63()))
		}
		if r.Float64() >= presentProb {
			return None[T](), func(bool) (Option[T], bool) { return Option[T]{}, false }
		}
		v, s := elem.Generate(r, sz)
		cur := Some(v)
		offeredNone := false

		return cur, func(accept bool) (Option[T], bool) {
			if accept {
				// nothing to rebase: the shrinker below only ever proposes
				// None once, then delegates entirely to the element shrinker.
			}
			if !offeredNone {
				offeredNone = true
				return None[T](), true
			}
			nv, ok := s(accept)
			if !ok {
				return Option[T]{}, false
			}
			return Some(nv), true
		}
	})
}
