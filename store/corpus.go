package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// CorpusEntry is one interesting input admitted to the regression corpus,
// keyed by the coverage fingerprint it contributed.
type CorpusEntry struct {
	InputRendering string `json:"input_rendering"`
	PathHash       string `json:"path_hash"`
}

// RegressionCorpus is the coverage-fingerprint-keyed corpus of C7: an
// orthogonal store to FailureStore, admitting new entries only when they
// grow the cumulative set of observed path hashes by at least
// MinCoverageIncrease, and evicting the least-paths-contributed entries
// once MaxCorpusSize is exceeded.
type RegressionCorpus struct {
	Path                string
	MinCoverageIncrease float64 // fraction, default 0.01 (1%)
	MaxCorpusSize       int     // 0 means unbounded

	mu          sync.Mutex
	entries     []CorpusEntry
	seenHashes  map[string]int // path_hash -> number of entries contributing it
	watcher     *fsnotify.Watcher
}

// NewRegressionCorpus builds a corpus backed by the JSON file at path.
// It loads any existing file; a missing file starts empty.
func NewRegressionCorpus(path string) (*RegressionCorpus, error) {
	c := &RegressionCorpus{
		Path:                path,
		MinCoverageIncrease: 0.01,
		seenHashes:          map[string]int{},
	}
	if err := c.load(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *RegressionCorpus) load() error {
	body, err := os.ReadFile(c.Path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("corpus: read %s: %w", c.Path, err)
	}
	var entries []CorpusEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return fmt.Errorf("corpus: decode %s: %w", c.Path, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = entries
	c.seenHashes = map[string]int{}
	for _, e := range entries {
		c.seenHashes[e.PathHash]++
	}
	return nil
}

func (c *RegressionCorpus) save() error {
	body, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("corpus: marshal: %w", err)
	}
	tmp := c.Path + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return fmt.Errorf("corpus: write temp: %w", err)
	}
	return os.Rename(tmp, c.Path)
}

// coverageIncrease reports the fraction of new (never-before-seen) path
// hashes a candidate entry would add, relative to the corpus's current
// distinct-hash count.
func (c *RegressionCorpus) coverageIncrease(pathHash string) float64 {
	distinct := len(c.seenHashes)
	if _, known := c.seenHashes[pathHash]; known {
		return 0
	}
	if distinct == 0 {
		return 1
	}
	return 1.0 / float64(distinct)
}

// Admit offers an (input_rendering, path_hash) pair to the corpus. It is
// accepted iff it increases observed coverage by at least
// MinCoverageIncrease; admission is followed by eviction of
// least-paths-contributed entries if MaxCorpusSize is now exceeded.
func (c *RegressionCorpus) Admit(inputRendering, pathHash string) (admitted bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.coverageIncrease(pathHash) < c.MinCoverageIncrease {
		return false, nil
	}

	c.entries = append(c.entries, CorpusEntry{InputRendering: inputRendering, PathHash: pathHash})
	c.seenHashes[pathHash]++
	c.evictLocked()

	if err := c.save(); err != nil {
		return true, err
	}
	return true, nil
}

// evictLocked drops entries once the corpus exceeds MaxCorpusSize. The
// contribution function below counts how many corpus entries share an
// entry's path hash: a high count means the path is already well represented
// (evicting it loses little coverage), while a uniquely-covering entry
// (count 1) is the most valuable to keep. So entries are sorted by that
// count DESCENDING and the highest-count entries, the ones contributing the
// fewest distinct paths, are evicted first, leaving the uniquely-covering
// entries in the retained tail.
func (c *RegressionCorpus) evictLocked() {
	if c.MaxCorpusSize <= 0 || len(c.entries) <= c.MaxCorpusSize {
		return
	}
	contribution := func(e CorpusEntry) int { return c.seenHashes[e.PathHash] }
	sort.SliceStable(c.entries, func(i, j int) bool {
		return contribution(c.entries[i]) > contribution(c.entries[j])
	})
	toEvict := len(c.entries) - c.MaxCorpusSize
	evicted := c.entries[:toEvict]
	c.entries = c.entries[toEvict:]
	for _, e := range evicted {
		c.seenHashes[e.PathHash]--
		if c.seenHashes[e.PathHash] <= 0 {
			delete(c.seenHashes, e.PathHash)
		}
	}
}

// Entries returns a snapshot of the corpus's current entries.
func (c *RegressionCorpus) Entries() []CorpusEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]CorpusEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// WatchReload starts an fsnotify watch on the corpus file so external
// edits (e.g. a teammate's run updating a shared corpus) are picked up
// without restarting the process. Call Close to stop watching.
func (c *RegressionCorpus) WatchReload() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("corpus: start watcher: %w", err)
	}
	if err := w.Add(c.Path); err != nil {
		_ = w.Close()
		return fmt.Errorf("corpus: watch %s: %w", c.Path, err)
	}
	c.watcher = w

	go func() {
		z := currentCorpusLogger()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					if err := c.load(); err != nil {
						z.Warnw("corpus: hot-reload failed", "path", c.Path, "error", err)
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				z.Warnw("corpus: watcher error", "path", c.Path, "error", err)
			}
		}
	}()
	return nil
}

// Close stops the hot-reload watcher, if one was started.
func (c *RegressionCorpus) Close() error {
	if c.watcher == nil {
		return nil
	}
	return c.watcher.Close()
}

func currentCorpusLogger() *zap.SugaredLogger { return currentLogger() }
