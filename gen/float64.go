package gen

import (
	"math"
	"math/rand"
)

// Float64 generates floats with automatic range based on Size.
// - If no Size is provided, uses range [-100, 100].
// - Does not include NaN/Inf (focused on business numeric cases).
func Float64(size Size) Generator[float64] {
	return From(func(r *rand.Rand, sz Size) (float64, Shrinker[float64]) {
		if r == nil {
			r = rand.New(rand.NewSource(rand.Int63()))
		}
		min, max := autoRangeF64(size, sz)
		if min > max {
			min, max = max, min
		}
		v := uniformF64(r, min, max)
		return float64ShrinkInit(v, min, max, false, false)
	})
}

// autoRangeF64 decides the final range for Float64(...) by combining the local "size" and the
// "size" coming from the runner. We prefer the largest range informed; if nothing is
// informed, we use [-100, 100].
func autoRangeF64(local, fromRunner Size) (float64, float64) {
	return autoRangeFloat[float64](local, fromRunner)
}

// Float64Range generates floats uniformly in [min, max] (inclusive on finite bounds).
// Parameters includeNaN/includeInf allow injecting special cases.
func Float64Range(min, max float64, includeNaN, includeInf bool) Generator[float64] {
	if min > max {
		min, max = max, min
	}
	return From(func(r *rand.Rand, _ Size) (float64, Shrinker[float64]) {
		if r == nil {
			r = rand.New(rand.NewSource(rand.Int63()))
		}
		v := uniformF64(r, min, max)
		// small chance of specials, if enabled
		if includeNaN && r.Intn(50) == 0 {
			v = math.NaN()
		} else if includeInf && r.Intn(50) == 1 {
			if r.Intn(2) == 0 {
				v = math.Inf(+1)
			} else {
				v = math.Inf(-1)
			}
		}
		return float64ShrinkInit(v, min, max, includeNaN, includeInf)
	})
}

// ---------------- implementation / shrinking ----------------
//
// float64 shares the generic NaN/Inf-aware bisection core in floating.go with
// float32; the wrappers below keep the exact names float64_test.go exercises
// directly.

// float64ShrinkInit initializes the shrinking process for a float64 value.
func float64ShrinkInit(start, min, max float64, allowNaN, allowInf bool) (float64, Shrinker[float64]) {
	return floatShrinkInit(start, min, max, allowNaN, allowInf)
}

// ---------- helpers float64 ----------

// isFinite checks if a float64 value is finite (not NaN or Inf).
func isFinite(x float64) bool { return floatIsFinite(x) }

// f64key creates a unique key for a float64 value using its bit representation.
func f64key(x float64) uint64 { return math.Float64bits(x) }

// clampF64 constrains a float64 value to be within the given bounds.
func clampF64(x, min, max float64) float64 { return clampFloat(x, min, max) }

// uniformF64 generates a uniform random float64 in the given range.
func uniformF64(r *rand.Rand, min, max float64) float64 { return uniformFloat(r, min, max) }

// float64Target returns the bound (or 0) to shrink towards.
func float64Target(min, max float64) float64 { return floatTarget(min, max) }

// midpointTowardsF64 gives a "bisection step" from a towards b.
func midpointTowardsF64(a, b float64) float64 { return midpointTowardsFloat(a, b) }
