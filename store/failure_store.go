package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultFailuresDir is the layout root used when neither an explicit
// root nor PROTEST_FAILURES_DIR is given.
const DefaultFailuresDir = ".protest/failures"

var (
	logMu     sync.RWMutex
	logger    *zap.SugaredLogger
	rootOnce  sync.Once
	cachedDir string
)

// SetLogger replaces the package-wide default logger (read-copy-update;
// safe to call at any time, never read mid-operation).
func SetLogger(l *zap.SugaredLogger) {
	logMu.Lock()
	logger = l
	logMu.Unlock()
}

func currentLogger() *zap.SugaredLogger {
	logMu.RLock()
	defer logMu.RUnlock()
	if logger == nil {
		z, _ := zap.NewProduction()
		return z.Sugar()
	}
	return logger
}

// DefaultRoot resolves the failure store's root directory. It honors
// PROTEST_FAILURES_DIR, read once at first use per §6's "consumed by the
// library at startup, not per-test".
func DefaultRoot() string {
	rootOnce.Do(func() {
		if v := os.Getenv("PROTEST_FAILURES_DIR"); v != "" {
			cachedDir = v
		} else {
			cachedDir = DefaultFailuresDir
		}
	})
	return cachedDir
}

// FailureStore is a file-backed key-value store indexed by
// (test_name, seed), rooted at Root.
type FailureStore struct {
	Root string
	mu   sync.Mutex
}

// NewFailureStore builds a FailureStore rooted at root. An empty root
// resolves to DefaultRoot().
func NewFailureStore(root string) *FailureStore {
	if root == "" {
		root = DefaultRoot()
	}
	return &FailureStore{Root: root}
}

var defaultStoreOnce sync.Once
var defaultStore *FailureStore

// DefaultStore returns the process-wide default FailureStore, lazily
// rooted at DefaultRoot().
func DefaultStore() *FailureStore {
	defaultStoreOnce.Do(func() { defaultStore = NewFailureStore(DefaultRoot()) })
	return defaultStore
}

// sanitizeTestName replaces path separators with "_" per §6's layout rule.
func sanitizeTestName(name string) string {
	r := strings.NewReplacer("/", "_", string(os.PathSeparator), "_")
	return r.Replace(name)
}

func (s *FailureStore) testDir(testName string) string {
	return filepath.Join(s.Root, sanitizeTestName(testName))
}

// Save atomically writes snap under (testName, snap.Seed), replacing any
// existing snapshot with the same key. The write goes to a uuid-suffixed
// temp file in the same directory, then is renamed into place, so a
// concurrent reader never observes a partially written snapshot.
func (s *FailureStore) Save(testName string, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := s.testDir(testName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		currentLogger().Warnw("failure store unavailable", "test_name", testName, "error", err)
		return fmt.Errorf("store: mkdir %s: %w", dir, err)
	}

	body, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal snapshot: %w", err)
	}

	final := filepath.Join(dir, fmt.Sprintf("%d.snapshot", snap.Seed))
	tmp := filepath.Join(dir, fmt.Sprintf(".%d.%s.tmp", snap.Seed, uuid.NewString()))

	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return fmt.Errorf("store: write temp snapshot: %w", err)
	}
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("store: rename snapshot into place: %w", err)
	}
	return nil
}

// LoadAll returns every snapshot persisted for testName, ordered by
// Timestamp ascending.
func (s *FailureStore) LoadAll(testName string) ([]Snapshot, error) {
	dir := s.testDir(testName)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read dir %s: %w", dir, err)
	}

	out := make([]Snapshot, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".snapshot") {
			continue
		}
		body, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			currentLogger().Warnw("failure store: skipping unreadable snapshot", "file", e.Name(), "error", err)
			continue
		}
		var snap Snapshot
		if err := json.Unmarshal(body, &snap); err != nil {
			currentLogger().Warnw("failure store: skipping corrupt snapshot", "file", e.Name(), "error", err)
			continue
		}
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

// Delete removes the snapshot for (testName, seed). Deleting an absent
// snapshot is a no-op, not an error.
func (s *FailureStore) Delete(testName string, seed uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.testDir(testName), fmt.Sprintf("%d.snapshot", seed))
	err := os.Remove(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("store: delete %s: %w", path, err)
}

// DeleteAll removes every snapshot for testName. A missing test directory
// is a no-op.
func (s *FailureStore) DeleteAll(testName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.RemoveAll(s.testDir(testName))
	if err != nil {
		return fmt.Errorf("store: delete all for %s: %w", testName, err)
	}
	return nil
}

// ListTests enumerates every test name with at least one persisted
// snapshot.
func (s *FailureStore) ListTests() ([]string, error) {
	entries, err := os.ReadDir(s.Root)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read root %s: %w", s.Root, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Stats aggregates counts, totals and the oldest/newest timestamps across
// every persisted snapshot, for the CLI's `stats` command.
type Stats struct {
	TestCount     int
	SnapshotCount int
	Oldest        *Snapshot
	Newest        *Snapshot
}

// Stats computes aggregate statistics across the whole store.
func (s *FailureStore) Stats() (Stats, error) {
	tests, err := s.ListTests()
	if err != nil {
		return Stats{}, err
	}
	var out Stats
	out.TestCount = len(tests)
	for _, name := range tests {
		snaps, err := s.LoadAll(name)
		if err != nil {
			return out, err
		}
		out.SnapshotCount += len(snaps)
		for i := range snaps {
			snap := snaps[i]
			if out.Oldest == nil || snap.Timestamp.Before(out.Oldest.Timestamp) {
				out.Oldest = &snap
			}
			if out.Newest == nil || snap.Timestamp.After(out.Newest.Timestamp) {
				out.Newest = &snap
			}
		}
	}
	return out, nil
}

// ParseSeed parses a CLI-supplied seed argument into the uint64 key form.
func ParseSeed(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}
