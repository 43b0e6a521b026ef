package gen

import "math/rand"

// Uint64 generates unsigned 64-bit integers with automatic range based on Size.
// If nothing is provided, uses [0, 100].
func Uint64(size Size) Generator[uint64] {
	return From(func(r *rand.Rand, sz Size) (uint64, Shrinker[uint64]) {
		if r == nil {
			r = rand.New(rand.NewSource(rand.Int63()))
		}
		min, max := autoRangeUint64(size, sz)
		if min > max {
			min, max = max, min
		}
		v := min + uint64(r.Intn(int(max-min+1)))
		return uint64ShrinkInit(v, min, max)
	})
}

// Uint64Range generates uint64 uniformly in the range [min, max] (inclusive).
func Uint64Range(min, max uint64) Generator[uint64] {
	if min > max {
		min, max = max, min
	}
	return From(func(r *rand.Rand, _ Size) (uint64, Shrinker[uint64]) {
		if r == nil {
			r = rand.New(rand.NewSource(rand.Int63()))
		}
		v := min + uint64(r.Intn(int(max-min+1)))
		return uint64ShrinkInit(v, min, max)
	})
}

// ---------------- implementation / shrinking ----------------
//
// uint64 shares the generic unsignedShrinkInit core (unsigned.go) with uint;
// the wrappers below keep the width-specific names uint64_test.go exercises
// directly.

// uint64ShrinkInit initializes the shrinking process for a uint64 value.
func uint64ShrinkInit(start, min, max uint64) (uint64, Shrinker[uint64]) {
	return unsignedShrinkInit(start, min, max)
}

// autoRangeUint64 decides the final range for Uint64(...) by combining the local "size" and the
// "size" coming from the runner. We prefer the largest range informed; if nothing is
// informed, we use [0, 100].
func autoRangeUint64(local, fromRunner Size) (uint64, uint64) {
	return autoRangeUnsigned[uint64](local, fromRunner)
}

// clampU64 constrains a uint64 value to be within the given bounds.
func clampU64(x, min, max uint64) uint64 {
	return clampUnsigned(x, min, max)
}
