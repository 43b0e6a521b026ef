package prop

import (
	"fmt"
	"time"
)

// ShrinkResult is the outcome of running the shrink engine against a
// failing original: Minimal is only meaningful when at least one shrink
// succeeded (HasMinimal). Completed is true when the engine proved
// Minimal locally minimal (no candidate of shrink(Minimal) also failed),
// false when it stopped because a budget was exhausted.
type ShrinkResult[T any] struct {
	Original   T
	Minimal    T
	HasMinimal bool
	Steps      int
	Duration   time.Duration
	Completed  bool
	Trace      []ShrinkStep
}

// budget tracks the two caps the shrink engine must check before every
// candidate evaluation: a step count and a wall-clock deadline.
type budget struct {
	maxSteps int
	deadline time.Time
}

func newBudget(cfg Config) budget {
	b := budget{maxSteps: cfg.MaxShrink}
	if cfg.ShrinkTimeout > 0 {
		b.deadline = time.Now().Add(cfg.ShrinkTimeout)
	}
	return b
}

func (b budget) exhausted(steps int) bool {
	if b.maxSteps > 0 && steps >= b.maxSteps {
		return true
	}
	if !b.deadline.IsZero() && time.Now().After(b.deadline) {
		return true
	}
	return false
}

// GreedyShrink implements §4.3's default algorithm: repeatedly ask the
// shrinker for the next best-first candidate; accept the first one for
// which test still reports a failure; stop when the shrinker is exhausted
// (Completed = true, locally minimal) or a budget trips (Completed =
// false).
func GreedyShrink[T any](original T, shrink func(accept bool) (T, bool), test func(T) bool, cfg Config) ShrinkResult[T] {
	start := time.Now()
	b := newBudget(cfg)

	current := original
	hasMinimal := false
	steps := 0
	trace := make([]ShrinkStep, 0, 16)
	acceptedPrev := true

	for {
		if b.exhausted(steps) {
			return ShrinkResult[T]{
				Original: original, Minimal: current, HasMinimal: hasMinimal,
				Steps: steps, Duration: time.Since(start), Completed: false, Trace: trace,
			}
		}
		candidate, ok := shrink(acceptedPrev)
		if !ok {
			return ShrinkResult[T]{
				Original: original, Minimal: current, HasMinimal: hasMinimal,
				Steps: steps, Duration: time.Since(start), Completed: true, Trace: trace,
			}
		}
		stepStart := time.Now()
		steps++
		fails := test(candidate)
		trace = append(trace, ShrinkStep{
			N: steps, Description: fmt.Sprintf("candidate#%d", steps),
			Duration: time.Since(stepStart), Succeeded: fails,
		})
		if fails {
			current = candidate
			hasMinimal = true
			acceptedPrev = true
			continue
		}
		acceptedPrev = false
	}
}
