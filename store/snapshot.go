// Package store persists minimized counterexamples (the failure store, C6)
// and maintains a coverage-keyed regression corpus (C7), both as exclusive
// file-level operations under a configurable root directory.
package store

import "time"

// Snapshot is the persisted record of a single minimized counterexample,
// keyed on disk by (test name, Seed). Fields match §3's "Persisted
// failure snapshot" exactly.
type Snapshot struct {
	Seed         uint64            `json:"seed"`
	Input        string            `json:"input"`
	ErrorMessage string            `json:"error_message"`
	ShrinkSteps  uint32            `json:"shrink_steps"`
	Timestamp    time.Time         `json:"timestamp"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}
