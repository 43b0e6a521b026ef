// File: gen/int.go
package gen

import (
	"math/rand"
)

// Int generates integers with automatic range based on Size:
// - if sz.Max (or |sz.Min|) > 0: range := [-M, M], where M = max(|sz.Min|, |sz.Max|)
// - otherwise, uses default range [-100, 100].
// Example: prop.ForAll(t, cfg, gen.Int(gen.Size{Max: 1000})) ...
func Int(size Size) Generator[int] {
	return From(func(r *rand.Rand, sz Size) (int, Shrinker[int]) {
		if r == nil {
			r = rand.New(rand.NewSource(rand.Int63()))
		}
		min, max := autoRange(size, sz) // decide the effective range
		if min > max {
			min, max = max, min
		}
		// generate uniformly
		v := min + r.Intn(max-min+1)
		return intShrinkInit(v, min, max)
	})
}

// IntRange generates integers uniformly in the range [min, max] (inclusive).
// Ignores sz for the range (useful when you want explicit control).
func IntRange(min, max int) Generator[int] {
	if min > max {
		min, max = max, min
	}
	return From(func(r *rand.Rand, _ Size) (int, Shrinker[int]) {
		if r == nil {
			r = rand.New(rand.NewSource(rand.Int63()))
		}
		v := min + r.Intn(max-min+1)
		return intShrinkInit(v, min, max)
	})
}

// -------------------- implementation / shrinking --------------------
//
// The bisection/queue engine itself lives in signed.go as a single generic
// core shared with int64 (see signedShrinkInit); everything below is a thin,
// int-shaped entry point over it so callers and tests keep their existing
// names and signatures.

// intShrinkInit initializes the shrinking process for an integer value.
func intShrinkInit(start, min, max int) (int, Shrinker[int]) {
	return signedShrinkInit(start, min, max)
}

// shrinkTarget returns the "natural" target to shrink towards:
// 0 if 0 ∈ [min,max]; otherwise, the bound closest to 0.
func shrinkTarget(min, max int) int {
	return signedShrinkTarget(min, max)
}

// midpointTowards gives a "bisection step" from a towards b, truncated
// towards 'a', with a one-unit minimum step to guarantee progress.
func midpointTowards(a, b int) int {
	return midpointTowardsSigned(a, b)
}

// stepTowards moves one unit step from a towards b.
func stepTowards(a, b int) int {
	return stepTowardsSigned(a, b)
}

// autoRange decides the final range for Int(...) by combining the local "size" and the
// "size" coming from the runner. We prefer the largest range informed; if nothing is
// informed, we use [-100, 100].
func autoRange(local, fromRunner Size) (int, int) {
	return autoRangeSigned[int](local, fromRunner)
}

// clamp constrains a value to be within the given bounds.
func clamp(x, min, max int) int {
	return clampSigned(x, min, max)
}

// absInt returns the absolute value of an integer.
func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// maxInt returns the maximum of two integers.
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
