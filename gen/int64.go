package gen

import (
	"math/rand"
)

// Int64 generates 64-bit integers with automatic range based on Size.
// If no Size is provided, uses [-100, 100].
func Int64(size Size) Generator[int64] {
	return From(func(r *rand.Rand, sz Size) (int64, Shrinker[int64]) {
		if r == nil {
			r = rand.New(rand.NewSource(rand.Int63()))
		}
		min, max := autoRange64(size, sz)
		if min > max {
			min, max = max, min
		}
		v := min + int64(r.Intn(int(max-min+1)))
		return int64ShrinkInit(v, min, max)
	})
}

// Int64Range generates int64 uniformly in the range [min, max] (inclusive).
func Int64Range(min, max int64) Generator[int64] {
	if min > max {
		min, max = max, min
	}
	return From(func(r *rand.Rand, _ Size) (int64, Shrinker[int64]) {
		if r == nil {
			r = rand.New(rand.NewSource(rand.Int63()))
		}
		v := min + int64(r.Intn(int(max-min+1)))
		return int64ShrinkInit(v, min, max)
	})
}

// ---------------- implementation / shrinking ----------------
//
// int64's shrink engine is the same generic core as int's (signed.go);
// the wrappers below keep the width-specific names int64_test.go exercises
// directly.

// int64ShrinkInit initializes the shrinking process for an int64 value.
func int64ShrinkInit(start, min, max int64) (int64, Shrinker[int64]) {
	return signedShrinkInit(start, min, max)
}

// shrinkTarget64 returns the "natural" target to shrink towards for int64.
func shrinkTarget64(min, max int64) int64 {
	return signedShrinkTarget(min, max)
}

// clamp64 constrains an int64 value to be within the given bounds.
func clamp64(x, min, max int64) int64 {
	return clampSigned(x, min, max)
}

// midpointTowards64 gives a "bisection step" from a towards b for int64.
func midpointTowards64(a, b int64) int64 {
	return midpointTowardsSigned(a, b)
}

// stepTowards64 moves one unit step from a towards b for int64.
func stepTowards64(a, b int64) int64 {
	return stepTowardsSigned(a, b)
}

// autoRange64 decides the final range for Int64(...) by combining the local
// "size" and the "size" coming from the runner, defaulting to [-100, 100].
func autoRange64(local, fromRunner Size) (int64, int64) {
	return autoRangeSigned[int64](local, fromRunner)
}

// int64Abs returns the absolute value of an int as int64.
func int64Abs(x int) int64 {
	if x < 0 {
		return int64(-x)
	}
	return int64(x)
}
