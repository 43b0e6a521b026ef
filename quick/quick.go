// Package quick provides quick testing utilities for Go.
// It includes helper functions for common testing patterns, particularly
// for value comparison and assertion utilities.
package quick

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Equal compares two values of the same type and fails the test if they are not equal.
// It uses go-cmp for deep comparison and provides detailed diff output when values differ.
// The function calls t.Helper() to mark itself as a test helper function.
//
// Parameters:
//   - t: The testing.T instance for the current test
//   - got: The actual value obtained from the code under test
//   - want: The expected value
//
// Example usage:
//
//	quick.Equal(t, result, expected)
//	quick.Equal(t, []int{1, 2, 3}, []int{1, 2, 3})
//	quick.Equal(t, map[string]int{"a": 1}, map[string]int{"a": 1})
func Equal[T any](t *testing.T, got, want T) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

// Diff renders a go-cmp diff between two arbitrary values without failing a
// test — for display purposes (e.g. a CLI comparing two persisted
// snapshots) rather than an assertion. Returns "" when equal.
func Diff(want, got any, opts ...cmp.Option) string {
	return cmp.Diff(want, got, opts...)
}

// DiffLines is Diff specialized for multi-line rendered text: it diffs
// line-by-line rather than treating each string as a single opaque value,
// which is what go-cmp would otherwise do for a plain string comparison.
func DiffLines(want, got string) string {
	return cmp.Diff(strings.Split(want, "\n"), strings.Split(got, "\n"))
}
