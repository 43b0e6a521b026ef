package prop

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/lucaskalb/protest/gen"
	"github.com/lucaskalb/protest/store"
)

// Check runs prop against examples drawn from g, using cfg, and returns a
// TestSuccess or a TestFailure — the library entry point for callers that
// want the result as a value instead of driving a *testing.T. Before
// drawing any fresh example it first replays every seed persisted in the
// failure store for testName, per §4.4's "future runs consult the store
// first and replay all stored seeds before generating new examples".
func Check[T any](testName string, cfg Config, g gen.Generator[T], property PropertyFunc[T]) (TestSuccess, *TestFailure[T]) {
	return CheckWithStore(testName, cfg, g, property, store.DefaultStore())
}

// CheckWithStore is Check with an explicit FailureStore, for callers that
// don't want the process-wide default (tests of the engine itself, mainly).
func CheckWithStore[T any](testName string, cfg Config, g gen.Generator[T], property PropertyFunc[T], fs *store.FailureStore) (TestSuccess, *TestFailure[T]) {
	if err := cfg.Validate(); err != nil {
		f := newConfigFailure[T](cfg, err)
		return TestSuccess{}, &f
	}

	seed := cfg.effectiveSeed()
	gen.SetShrinkStrategy(cfg.ShrinkStrat)
	r := rand.New(rand.NewSource(seed))
	stats := newGenerationStats()

	runOne := func(iteration int, val T, shrink gen.Shrinker[T]) *TestFailure[T] {
		stats.observe(any(val))
		start := time.Now()
		err := invokeProperty(property, val)
		if err == nil {
			return nil
		}
		propErr := enrichIteration(asPropertyError(err), iteration)
		elapsed := time.Since(start)

		shrinkStart := time.Now()
		var sr ShrinkResult[T]
		if shrink != nil {
			sr = GreedyShrink(val, shrink, func(candidate T) bool {
				return invokeProperty(property, candidate) != nil
			}, cfg)
		}

		tf := TestFailure[T]{
			OriginalInput: val, MinimalInput: sr.Minimal, HasMinimal: sr.HasMinimal,
			Err: propErr, Iteration: iteration, Elapsed: elapsed,
			ShrinkElapsed: time.Since(shrinkStart), ShrinkSteps: sr.Steps,
			Config: cfg, Trace: sr.Trace,
		}
		if !sr.HasMinimal {
			tf.MinimalInput = val
		}
		return &tf
	}

	// Replay every previously stored seed first.
	if fs != nil {
		snaps, _ := fs.LoadAll(testName)
		for i, snap := range snaps {
			replayR := gen.NewRand(int64(snap.Seed))
			val, shrink := g.Generate(replayR, cfg.Generator.toSize())
			if tf := runOne(i+1, val, shrink); tf != nil {
				persistFailure(fs, testName, snap.Seed, *tf)
				return TestSuccess{}, tf
			}
		}
	}

	examples := cfg.Examples
	if examples <= 0 {
		examples = 100
	}
	for i := 0; i < examples; i++ {
		val, shrink := g.Generate(r, cfg.Generator.toSize())
		if tf := runOne(i+1, val, shrink); tf != nil {
			if fs != nil {
				persistFailure(fs, testName, uint64(seed), *tf)
			}
			return TestSuccess{}, tf
		}
	}

	return TestSuccess{Iterations: examples, Stats: stats}, nil
}

// ForAll is the *testing.T-bound entry point: it generates cfg.Examples
// test cases from g and runs body against each via t.Run, shrinking and
// calling t.Fatalf on the first failure (sequential) or fanning the work
// out across cfg.Parallelism workers (parallel).
//
// Example usage:
//
//	ForAll(t, prop.Default(), gen.Int(gen.Size{}))(func(t *testing.T, x int) {
//	    if x+0 != x {
//	        t.Errorf("addition identity failed for %d", x)
//	    }
//	})
func ForAll[T any](t *testing.T, cfg Config, g gen.Generator[T]) func(func(*testing.T, T)) {
	return func(body func(*testing.T, T)) {
		seed := cfg.effectiveSeed()
		r := rand.New(rand.NewSource(seed))
		gen.SetShrinkStrategy(cfg.ShrinkStrat)

		t.Logf("[protest] seed=%d examples=%d maxshrink=%d strategy=%s parallelism=%d",
			seed, cfg.Examples, cfg.MaxShrink, cfg.ShrinkStrat, cfg.Parallelism)

		if cfg.Parallelism <= 1 {
			runSequential(t, cfg, g, body, seed, r)
		} else {
			runParallel(t, cfg, g, body, seed, r)
		}
	}
}

// runSequential executes property-based tests sequentially (single
// goroutine). It generates test cases one by one and runs them against
// the test function, shrinking via GreedyShrink when one fails.
func runSequential[T any](t *testing.T, cfg Config, g gen.Generator[T], body func(*testing.T, T), seed int64, r *rand.Rand) {
	for i := 0; i < cfg.Examples; i++ {
		val, shrink := g.Generate(r, cfg.Generator.toSize())
		name := fmt.Sprintf("ex#%d", i+1)

		passed := t.Run(name, func(st *testing.T) { body(st, val) })
		if passed {
			continue
		}

		steps := 0
		sr := GreedyShrink(val, shrink, func(candidate T) bool {
			steps++
			return !t.Run(fmt.Sprintf("%s/shrink#%d", name, steps), func(st *testing.T) { body(st, candidate) })
		}, cfg)

		reportSequentialFailure(t, testNameOrDefault(t), seed, i+1, sr, name)

		if cfg.StopOnFirstFailure {
			return
		}
	}
}

func reportSequentialFailure[T any](t *testing.T, testName string, seed int64, exampleIdx int, sr ShrinkResult[T], name string) {
	full := fmt.Sprintf("^%s$/%s(/|$)", testName, name)
	min := sr.Original
	if sr.HasMinimal {
		min = sr.Minimal
	}
	t.Fatalf("[protest] property failed; seed=%d; examples_run=%d; shrunk_steps=%d\n"+
		"counterexample (min): %#v\nreplay: go test -run '%s' -protest.seed=%d",
		seed, exampleIdx, sr.Steps, min, full, seed)
}

func testNameOrDefault(t *testing.T) string {
	if t == nil {
		return ""
	}
	return t.Name()
}

// invokeProperty runs property against val, converting a panic into a
// PropertyFailed (or into GenerationFailed when the panic value is a
// gen.GenerationPanic), per §4.2's "a panic during property evaluation is
// caught and reclassified". A plain error return value is passed through
// unchanged.
func invokeProperty[T any](property PropertyFunc[T], val T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if gp, ok := r.(gen.GenerationPanic); ok {
				err = GenerationFailed{Message: gp.Reason}
				return
			}
			err = PropertyFailed{Message: fmt.Sprintf("panic: %v", r)}
		}
	}()
	return property(val)
}

func asPropertyError(err error) PropertyError {
	if pe, ok := err.(PropertyError); ok {
		return pe
	}
	return PropertyFailed{Message: err.Error()}
}

func newConfigFailure[T any](cfg Config, err error) TestFailure[T] {
	var zero T
	return TestFailure[T]{
		OriginalInput: zero, MinimalInput: zero, HasMinimal: false,
		Err: asPropertyError(err), Config: cfg,
	}
}

// persistFailure saves the minimal (or original, if shrinking found none)
// failing input's rendering under (testName, seed).
func persistFailure[T any](fs *store.FailureStore, testName string, seed uint64, tf TestFailure[T]) {
	input := tf.OriginalInput
	if tf.HasMinimal {
		input = tf.MinimalInput
	}
	snap := store.Snapshot{
		Seed:         seed,
		Input:        fmt.Sprintf("%#v", input),
		ErrorMessage: tf.Err.Error(),
		ShrinkSteps:  uint32(tf.ShrinkSteps),
		Timestamp:    time.Now(),
	}
	_ = fs.Save(testName, snap)
}

// toSize turns a GeneratorConfig into the gen.Size the generator contract
// expects; a zero SizeHint defers entirely to the generator's own default.
func (gc GeneratorConfig) toSize() gen.Size {
	if gc.SizeHint <= 0 {
		return gen.Size{}
	}
	return gen.Size{Min: 0, Max: gc.SizeHint}
}
