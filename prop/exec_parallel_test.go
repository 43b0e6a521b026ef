package prop

import (
	"sync"
	"sync/atomic"
	"testing"

	"go.uber.org/goleak"

	"github.com/lucaskalb/protest/gen"
)

func TestRunParallelAllPass(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := testConfig()
	cfg.Parallelism = 4
	cfg.Examples = 40

	var calls int64
	ForAll(t, cfg, gen.Int(gen.Size{Min: 0, Max: 100}))(func(st *testing.T, x int) {
		atomic.AddInt64(&calls, 1)
	})

	if got := atomic.LoadInt64(&calls); got != int64(cfg.Examples) {
		t.Errorf("parallel run invoked body %d times, expected %d", got, cfg.Examples)
	}
}

func TestRunParallelWorkersUseDisjointSeeds(t *testing.T) {
	seeds := map[int64]bool{}
	var mu sync.Mutex
	for w := 0; w < 4; w++ {
		s := gen.WorkerSeed(1, w)
		mu.Lock()
		if seeds[s] {
			t.Errorf("WorkerSeed collided for worker %d: %d", w, s)
		}
		seeds[s] = true
		mu.Unlock()
	}
}

func TestRunParallelWithManyWorkersRunsExamples(t *testing.T) {
	cfg := testConfig()
	cfg.Parallelism = 8
	cfg.Examples = 64

	seenValues := map[int]bool{}
	var mu sync.Mutex
	ForAll(t, cfg, gen.Int(gen.Size{Min: 0, Max: 10}))(func(st *testing.T, x int) {
		mu.Lock()
		seenValues[x] = true
		mu.Unlock()
	})

	if len(seenValues) == 0 {
		t.Error("expected at least one example to run")
	}
}
