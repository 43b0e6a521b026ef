package prop

import "time"

// PropertyFunc is a synchronous property: a predicate over an input that
// returns nil on success or an error describing the failure. Plain errors
// are wrapped into PropertyFailed by the engine; a PropertyError returned
// directly is propagated as-is.
type PropertyFunc[T any] func(input T) error

// AsyncOutcome is the deferred-computation shape an AsyncPropertyFunc
// returns. The engine only ever calls Await; it never spawns a goroutine
// to drive it — the caller's own runtime is responsible for completing the
// underlying computation before Await is called, or for delivering
// cancellation through it.
type AsyncOutcome interface {
	// Await blocks until the computation completes, returning nil on
	// success or the property's error. Implementations whose underlying
	// computation was cancelled by the caller's runtime should return a
	// TestCancelled.
	Await() error
}

// AsyncPropertyFunc is the asynchronous counterpart of PropertyFunc.
type AsyncPropertyFunc[T any] func(input T) AsyncOutcome

// ShrinkStep records one candidate evaluated by the shrink engine, in
// evaluation order, for rendering a progress trace alongside a result.
type ShrinkStep struct {
	N           int
	Description string
	Duration    time.Duration
	Succeeded   bool
}

// GenerationStats summarizes the inputs drawn during a run: numeric
// min/max/mean and the set of distinct "classes" of string input seen
// (currently just the characters drawn). This is a deliberately small
// slice of the original coverage-report machinery (see DESIGN.md) — the
// spec names nothing beyond these aggregates.
type GenerationStats struct {
	Count        int
	NumericMin   float64
	NumericMax   float64
	numericSum   float64
	numericSeen  bool
	CharsSeen    map[rune]struct{}
}

func newGenerationStats() *GenerationStats {
	return &GenerationStats{CharsSeen: map[rune]struct{}{}}
}

// NumericMean returns the running mean of every numeric sample observed.
func (s *GenerationStats) NumericMean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.numericSum / float64(s.Count)
}

func (s *GenerationStats) observe(v any) {
	s.Count++
	switch x := v.(type) {
	case int:
		s.observeNumeric(float64(x))
	case int64:
		s.observeNumeric(float64(x))
	case uint:
		s.observeNumeric(float64(x))
	case uint64:
		s.observeNumeric(float64(x))
	case float32:
		s.observeNumeric(float64(x))
	case float64:
		s.observeNumeric(x)
	case string:
		for _, r := range x {
			s.CharsSeen[r] = struct{}{}
		}
	}
}

func (s *GenerationStats) observeNumeric(v float64) {
	if !s.numericSeen {
		s.NumericMin, s.NumericMax = v, v
		s.numericSeen = true
	} else {
		if v < s.NumericMin {
			s.NumericMin = v
		}
		if v > s.NumericMax {
			s.NumericMax = v
		}
	}
	s.numericSum += v
}

// TestSuccess reports that every iteration passed.
type TestSuccess struct {
	Iterations int
	Stats      *GenerationStats
}

// TestFailure carries everything needed to reproduce and report a failing
// run: the original and minimized inputs, the error, when it happened,
// how long shrinking took, and the full evaluation trace.
type TestFailure[T any] struct {
	OriginalInput  T
	MinimalInput   T
	HasMinimal     bool
	Err            PropertyError
	Iteration      int
	Elapsed        time.Duration
	ShrinkElapsed  time.Duration
	ShrinkSteps    int
	Config         Config
	Trace          []ShrinkStep
}
