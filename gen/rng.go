package gen

import "math/rand"

// NewRand builds a deterministic RNG from a seed. Every Generator in this
// package is pure in (rng state, Size): the same seed and Size always
// produce the same value and the same shrink sequence.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// mix folds a worker index into a base seed so that parallel workers draw
// from disjoint deterministic streams. It is not cryptographic; it only
// needs to avoid collisions across small worker counts.
func mix(baseSeed int64, workerID int) int64 {
	h := uint64(baseSeed)
	w := uint64(workerID) + 1
	// splitmix64-style finalizer, applied to (seed XOR worker-derived constant)
	h ^= w * 0x9E3779B97F4A7C15
	h ^= h >> 30
	h *= 0xBF58476D1CE4E5B9
	h ^= h >> 27
	h *= 0x94D049BB133111EB
	h ^= h >> 31
	return int64(h)
}

// WorkerSeed derives the seed for a parallel worker from a run's base seed
// and the worker's index. The mapping is a pure function of (baseSeed,
// workerID): two runs with the same base seed and worker count always split
// into identical per-worker streams, independent of scheduling.
func WorkerSeed(baseSeed int64, workerID int) int64 {
	return baseSeed ^ mix(baseSeed, workerID)
}

// Fork returns a fresh RNG seeded deterministically from r and a label,
// giving a caller a private stream derived from the ambient one. It
// consumes exactly one Int63 draw from r.
func Fork(r *rand.Rand, label int) *rand.Rand {
	return rand.New(rand.NewSource(r.Int63() ^ mix(int64(label), label)))
}
