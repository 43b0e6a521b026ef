package prop

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/lucaskalb/protest/gen"
)

// CheckAsync runs an AsyncPropertyFunc against examples drawn from g. Each
// example's AsyncOutcome is awaited in turn — the engine never spawns a
// goroutine to drive it, since the caller's own runtime owns that
// computation; CheckAsync only calls Await and classifies the result. An
// outcome whose Await returns a TestCancelled stops the run immediately,
// surfaced as that run's failure, per §4.2's cancellation handling.
func CheckAsync[T any](testName string, cfg Config, g gen.Generator[T], property AsyncPropertyFunc[T]) (TestSuccess, *TestFailure[T]) {
	if err := cfg.Validate(); err != nil {
		f := newConfigFailure[T](cfg, err)
		return TestSuccess{}, &f
	}

	seed := cfg.effectiveSeed()
	gen.SetShrinkStrategy(cfg.ShrinkStrat)
	r := rand.New(rand.NewSource(seed))
	stats := newGenerationStats()

	examples := cfg.Examples
	if examples <= 0 {
		examples = 100
	}

	syncProperty := func(val T) (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				err = PropertyFailed{Message: panicMessage(rec)}
			}
		}()
		outcome := property(val)
		if outcome == nil {
			return nil
		}
		return outcome.Await()
	}

	for i := 0; i < examples; i++ {
		val, shrink := g.Generate(r, cfg.Generator.toSize())
		stats.observe(any(val))

		start := time.Now()
		err := syncProperty(val)
		if err == nil {
			continue
		}

		if _, cancelled := err.(TestCancelled); cancelled {
			tf := TestFailure[T]{
				OriginalInput: val, MinimalInput: val, HasMinimal: false,
				Err: err.(PropertyError), Iteration: i + 1,
				Elapsed: time.Since(start), Config: cfg,
			}
			return TestSuccess{}, &tf
		}

		propErr := enrichIteration(asPropertyError(err), i+1)
		elapsed := time.Since(start)

		shrinkStart := time.Now()
		var sr ShrinkResult[T]
		if shrink != nil {
			sr = GreedyShrink(val, shrink, func(candidate T) bool {
				return syncProperty(candidate) != nil
			}, cfg)
		}

		tf := TestFailure[T]{
			OriginalInput: val, MinimalInput: sr.Minimal, HasMinimal: sr.HasMinimal,
			Err: propErr, Iteration: i + 1, Elapsed: elapsed,
			ShrinkElapsed: time.Since(shrinkStart), ShrinkSteps: sr.Steps,
			Config: cfg, Trace: sr.Trace,
		}
		if !sr.HasMinimal {
			tf.MinimalInput = val
		}
		return TestSuccess{}, &tf
	}

	return TestSuccess{Iterations: examples, Stats: stats}, nil
}

func panicMessage(r any) string {
	if err, ok := r.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(r)
}
