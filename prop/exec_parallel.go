package prop

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/lucaskalb/protest/gen"
)

// workerFailure is one worker's raw (unshrunk) counterexample, carried back
// to the reducer for selection. Workers never shrink — only the reducer
// does, against whichever failure wins selection (see runParallel).
type workerFailure[T any] struct {
	exampleIdx int
	name       string
	val        T
	shrink     gen.Shrinker[T]
}

// runParallel executes property-based tests across cfg.Parallelism
// goroutines, coordinated by an errgroup.Group rather than the teacher's
// raw sync.WaitGroup — errgroup gives the worker pool first-error
// propagation for free if a worker's own bookkeeping ever needs to report
// one, and reads as the idiomatic Go worker-pool shape. Each worker draws
// from its own disjoint RNG stream, derived from the run's base seed via
// gen.WorkerSeed, so the overall run stays reproducible independent of
// scheduling (§9's note that parallel determinism comes from splitting
// streams, not from serializing draws behind a shared mutex). Shrinking
// itself stays single-threaded: workers only report a raw failing value,
// the reducer picks whichever failure has the lowest example index (the one
// a sequential run with the same seed would have hit first), and only that
// one winner is ever shrunk, once, after every worker has joined.
func runParallel[T any](t *testing.T, cfg Config, g gen.Generator[T], body func(*testing.T, T), seed int64, _ *rand.Rand) {
	examples := cfg.Examples
	testChan := make(chan int, examples)
	for i := 0; i < examples; i++ {
		testChan <- i
	}
	close(testChan)

	failureChan := make(chan workerFailure[T], cfg.Parallelism)
	var stopped sync.Once
	stop := make(chan struct{})

	eg := &errgroup.Group{}
	for w := 0; w < cfg.Parallelism; w++ {
		workerID := w
		eg.Go(func() error {
			workerSeed := gen.WorkerSeed(seed, workerID)
			wr := rand.New(rand.NewSource(workerSeed))

			for testIndex := range testChan {
				select {
				case <-stop:
					return nil
				default:
				}

				val, shrink := g.Generate(wr, cfg.Generator.toSize())
				name := fmt.Sprintf("ex#%d", testIndex+1)

				passed := t.Run(name, func(st *testing.T) { body(st, val) })
				if passed {
					continue
				}

				failureChan <- workerFailure[T]{exampleIdx: testIndex, name: name, val: val, shrink: shrink}

				if cfg.StopOnFirstFailure {
					stopped.Do(func() { close(stop) })
					return nil
				}
			}
			return nil
		})
	}

	go func() {
		_ = eg.Wait()
		close(failureChan)
	}()

	var failures []workerFailure[T]
	for f := range failureChan {
		failures = append(failures, f)
	}
	if len(failures) == 0 {
		return
	}

	sort.Slice(failures, func(i, j int) bool { return failures[i].exampleIdx < failures[j].exampleIdx })
	winner := failures[0]

	steps := 0
	sr := GreedyShrink(winner.val, winner.shrink, func(candidate T) bool {
		steps++
		return !t.Run(fmt.Sprintf("%s/shrink#%d", winner.name, steps), func(st *testing.T) { body(st, candidate) })
	}, cfg)

	reportSequentialFailure(t, testNameOrDefault(t), seed, winner.exampleIdx+1, sr, winner.name)
}
