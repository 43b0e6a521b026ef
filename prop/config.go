// Package prop provides property-based testing functionality for Go.
// It allows you to test properties of your code by generating random test
// cases and automatically shrinking counterexamples when failures are
// found.
package prop

import (
	"flag"
	"os"
	"strconv"
	"time"
)

// GeneratorConfig carries the knobs generators may consult when deciding
// how large or how deep to build a value. size_hint is a soft upper bound
// on generated collection size / numeric magnitude; max_depth is a hard
// ceiling on recursion in nested generators. Per-type overrides are opaque
// to the engine and threaded through CustomRanges.
type GeneratorConfig struct {
	SizeHint int
	MaxDepth int

	// CustomRanges lets callers stash per-type bounds under a name of
	// their choosing; the engine never reads these itself.
	CustomRanges map[string]string
}

// DefaultGeneratorConfig mirrors the teacher's implicit defaults
// (size_hint=10, max_depth=5).
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{SizeHint: 10, MaxDepth: 5}
}

// Config holds the configuration for property-based testing.
type Config struct {
	// Seed is the random seed used for test case generation.
	// If zero, a random seed will be generated based on the current time.
	Seed int64

	// Examples is the number of test cases to generate and run.
	Examples int

	// MaxShrink is the maximum number of shrinking steps to perform
	// when a counterexample is found.
	MaxShrink int

	// ShrinkStrat specifies the shrinking strategy to use.
	// Supported strategies: "bfs" (breadth-first), "dfs" (depth-first).
	ShrinkStrat string

	// StopOnFirstFailure determines whether to stop testing
	// after the first failing test case is found.
	StopOnFirstFailure bool

	// Parallelism specifies the number of parallel workers to use
	// for running test cases. Must be at least 1.
	Parallelism int

	// ShrinkTimeout bounds the wall-clock time the shrink engine may
	// spend looking for a smaller failing candidate.
	ShrinkTimeout time.Duration

	// Generator carries the generation-side knobs (size_hint, max_depth).
	Generator GeneratorConfig
}

// TestConfig is an alias kept for callers migrating from the Rust-flavored
// naming (`TestConfig` there, `Config` here); both names refer to the same
// record.
type TestConfig = Config

var (
	// flagSeed sets the random seed for test case generation.
	// Default: 0 (random seed based on current time).
	flagSeed = flag.Int64("protest.seed", 0, "Random seed for test case generation")

	// flagExamples sets the number of test cases to generate.
	// Default: 100.
	flagExamples = flag.Int("protest.examples", 100, "Number of test cases to generate")

	// flagMaxShrink sets the maximum number of shrinking steps.
	// Default: 400.
	flagMaxShrink = flag.Int("protest.maxshrink", 400, "Maximum number of shrinking steps")

	// flagShrinkStrat sets the shrinking strategy.
	// Default: "bfs" (breadth-first search).
	flagShrinkStrat = flag.String("protest.shrink.strategy", "bfs", "Shrinking strategy (bfs or dfs)")

	// flagParallelism sets the number of parallel workers.
	// Default: 1.
	flagParallelism = flag.Int("protest.shrink.parallel", 1, "Number of parallel workers")

	// flagShrinkTimeout sets the shrink engine's wall-clock budget.
	flagShrinkTimeout = flag.Duration("protest.shrink.timeout", 10*time.Second, "Maximum time spent shrinking a failure")

	// envSeed is the PROTEST_SEED environment variable, read once when the
	// package is initialized.
	envSeed = os.Getenv("PROTEST_SEED")
)

// Default returns a Config with default values based on command-line flags,
// then applies the PROTEST_SEED environment override (read once at package
// initialization, not per-test, per the environment contract).
func Default() Config {
	cfg := Config{
		Seed:               *flagSeed,
		Examples:           *flagExamples,
		MaxShrink:          *flagMaxShrink,
		ShrinkStrat:        *flagShrinkStrat,
		StopOnFirstFailure: true,
		Parallelism:        *flagParallelism,
		ShrinkTimeout:      *flagShrinkTimeout,
		Generator:          DefaultGeneratorConfig(),
	}
	if s := envSeed; s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			cfg.Seed = v
		}
	}
	return cfg
}

// Validate rejects configurations the engine cannot run, per §3's "Test
// configuration... Validation is required at construction."
func (c Config) Validate() error {
	if c.Examples <= 0 {
		return ConfigError{Message: "iterations must be > 0", Field: "Examples"}
	}
	if c.MaxShrink <= 0 {
		return ConfigError{Message: "max_shrink_iterations must be > 0", Field: "MaxShrink"}
	}
	if c.ShrinkTimeout <= 0 {
		return ConfigError{Message: "shrink_timeout must be > 0", Field: "ShrinkTimeout"}
	}
	if c.Parallelism < 1 {
		return ConfigError{Message: "parallelism must be >= 1", Field: "Parallelism"}
	}
	if c.ShrinkStrat != "" && c.ShrinkStrat != "bfs" && c.ShrinkStrat != "dfs" {
		return ConfigError{Message: "strategy must be \"bfs\" or \"dfs\"", Field: "ShrinkStrat"}
	}
	return nil
}

// effectiveSeed returns the effective seed to use for random number
// generation. If the configured seed is zero, it returns a random seed
// based on the current time.
func (c Config) effectiveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// GlobalConfig is the process-wide, read-copy-update default: never
// mutated mid-run, only ever swapped wholesale by SetGlobalConfig.
type GlobalConfig struct {
	DefaultIterations int
	DefaultSeed       int64
	Generator         GeneratorConfig
}

var globalConfig = &GlobalConfig{DefaultIterations: 100, Generator: DefaultGeneratorConfig()}

// SetGlobalConfig replaces the process-wide default config by swapping in a
// pointer to a fresh copy of gc; the swap is a plain, unsynchronized write.
func SetGlobalConfig(gc GlobalConfig) {
	cp := gc
	globalConfig = &cp
}

// CurrentGlobalConfig returns the current process-wide default config.
func CurrentGlobalConfig() GlobalConfig {
	return *globalConfig
}

// MergeWithGlobal returns a copy of c with zero-valued fields filled in
// from the current global config, mirroring the Rust original's
// `TestConfig::merge_with_global`.
func (c Config) MergeWithGlobal() Config {
	g := CurrentGlobalConfig()
	out := c
	if out.Examples == 0 {
		out.Examples = g.DefaultIterations
	}
	if out.Seed == 0 {
		out.Seed = g.DefaultSeed
	}
	if out.Generator.SizeHint == 0 {
		out.Generator.SizeHint = g.Generator.SizeHint
	}
	if out.Generator.MaxDepth == 0 {
		out.Generator.MaxDepth = g.Generator.MaxDepth
	}
	return out
}
