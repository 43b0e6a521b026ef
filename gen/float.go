package gen

import (
	"math"
	"math/rand"
)

// Float32 generates float32 values with automatic range based on Size.
// Default: [-100, 100]. Does not include NaN/Inf.
func Float32(size Size) Generator[float32] {
	return From(func(r *rand.Rand, sz Size) (float32, Shrinker[float32]) {
		if r == nil {
			r = rand.New(rand.NewSource(rand.Int63()))
		}
		min, max := autoRangeF32(size, sz)
		if min > max {
			min, max = max, min
		}
		v := uniformF32(r, min, max)
		return float32ShrinkInit(v, min, max, false, false)
	})
}

// Float32Range generates float32 in [min, max]; can optionally produce NaN/±Inf.
func Float32Range(min, max float32, includeNaN, includeInf bool) Generator[float32] {
	if min > max {
		min, max = max, min
	}
	return From(func(r *rand.Rand, _ Size) (float32, Shrinker[float32]) {
		if r == nil {
			r = rand.New(rand.NewSource(rand.Int63()))
		}
		v := uniformF32(r, min, max)
		if includeNaN && r.Intn(50) == 0 {
			v = float32(math.NaN())
		} else if includeInf && r.Intn(50) == 1 {
			if r.Intn(2) == 0 {
				v = float32(math.Inf(+1))
			} else {
				v = float32(math.Inf(-1))
			}
		}
		return float32ShrinkInit(v, min, max, includeNaN, includeInf)
	})
}

// -------------- implementation / shrinking (float32) --------------
//
// The NaN/Inf-aware bisection engine is generic across float32/float64 (see
// floating.go); this file only owns the float32-shaped entry points float_test.go
// exercises directly.

// float32ShrinkInit initializes the shrinking process for a float32 value.
func float32ShrinkInit(start, min, max float32, allowNaN, allowInf bool) (float32, Shrinker[float32]) {
	return floatShrinkInit(start, min, max, allowNaN, allowInf)
}

// ---------- helpers float32 ----------

// float32IsFinite checks if a float32 value is finite (not NaN or Inf).
func float32IsFinite(x float32) bool { return floatIsFinite(x) }

// float32IsNaN checks if a float32 value is NaN.
func float32IsNaN(x float32) bool { return floatIsNaN(x) }

// float32IsInf checks if a float32 value is infinite.
func float32IsInf(x float32) bool { return floatIsInf(x) }

// f32key creates a unique key for a float32 value using its bit representation.
func f32key(x float32) uint32 { return math.Float32bits(x) }

// clampF32 constrains a float32 value to be within the given bounds.
func clampF32(x, min, max float32) float32 { return clampFloat(x, min, max) }

// autoRangeF32 decides the final range for Float32(...) by combining the local "size" and the
// "size" coming from the runner. We prefer the largest range informed; if nothing is
// informed, we use [-100, 100].
func autoRangeF32(local, fromRunner Size) (float32, float32) {
	return autoRangeFloat[float32](local, fromRunner)
}

// uniformF32 generates a uniform random float32 in the given range.
func uniformF32(r *rand.Rand, min, max float32) float32 { return uniformFloat(r, min, max) }

// float32Target returns the "natural" target to shrink towards for float32:
// - 0 if 0 ∈ [min,max]; otherwise, the bound closest to 0.
func float32Target(min, max float32) float32 { return floatTarget(min, max) }

// midpointTowardsF32 gives a "bisection step" from a towards b for float32.
func midpointTowardsF32(a, b float32) float32 { return midpointTowardsFloat(a, b) }
