package gen

import "math/rand"

// Result models a success-or-failure value, generated so that the Ok and
// Err branches each shrink through their own element's candidates; the
// variant itself never swaps (an Ok never shrinks into an Err or vice
// versa), per the contract for sum-shaped generators.
type Result[T, E any] struct {
	IsOk bool
	Ok   T
	Err  E
}

// OkResult wraps v as a successful Result.
func OkResult[T, E any](v T) Result[T, E] { return Result[T, E]{IsOk: true, Ok: v} }

// ErrResult wraps e as a failed Result.
func ErrResult[T, E any](e E) Result[T, E] { return Result[T, E]{Err: e} }

// ResultOf generates Result[T, E], choosing the Ok branch with probability
// okProb (clamped to [0, 1]). Shrink stays within the drawn variant.
func ResultOf[T, E any](okGen Generator[T], errGen Generator[E], okProb float64) Generator[Result[T, E]] {
	if okProb < 0 {
		okProb = 0
	}
	if okProb > 1 {
		okProb = 1
	}
	return From(func(r *rand.Rand, sz Size) (Result[T, E], Shrinker[Result[T, E]]) {
		if r == nil {
			r = rand.New(rand.NewSource(rand.Int63()))
		}
		if r.Float64() < okProb {
			v, s := okGen.Generate(r, sz)
			return OkResult[T, E](v), func(accept bool) (Result[T, E], bool) {
				nv, ok := s(accept)
				if !ok {
					return Result[T, E]{}, false
				}
				return OkResult[T, E](nv), true
			}
		}
		e, s := errGen.Generate(r, sz)
		return ErrResult[T, E](e), func(accept bool) (Result[T, E], bool) {
			ne, ok := s(accept)
			if !ok {
				return Result[T, E]{}, false
			}
			return ErrResult[T, E](ne), true
		}
	})
}
