package main

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/lucaskalb/protest/store"
)

func TestDescribeCleanTarget(t *testing.T) {
	cases := []struct {
		name, testName, seed, want string
	}{
		{"whole store", "", "", "entire failure store"},
		{"one test", "TestFoo", "", `all snapshots for "TestFoo"`},
		{"one snapshot", "TestFoo", "42", `seed=42 for "TestFoo"`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := describeCleanTarget(c.testName, c.seed)
			if !strings.Contains(got, c.want) {
				t.Errorf("describeCleanTarget(%q, %q) = %q, expected it to contain %q", c.testName, c.seed, got, c.want)
			}
		})
	}
}

func TestConfirmAcceptsYAndYes(t *testing.T) {
	for _, input := range []string{"y\n", "Y\n", "yes\n", "YES\n"} {
		r, w, err := os.Pipe()
		if err != nil {
			t.Fatalf("os.Pipe() error = %v", err)
		}
		w.WriteString(input)
		w.Close()

		origStdin := os.Stdin
		os.Stdin = r
		ok := confirm("test target")
		os.Stdin = origStdin

		if !ok {
			t.Errorf("confirm() with input %q = false, expected true", input)
		}
	}
}

func TestConfirmRejectsAnythingElse(t *testing.T) {
	for _, input := range []string{"n\n", "\n", "nope\n"} {
		r, w, err := os.Pipe()
		if err != nil {
			t.Fatalf("os.Pipe() error = %v", err)
		}
		w.WriteString(input)
		w.Close()

		origStdin := os.Stdin
		os.Stdin = r
		ok := confirm("test target")
		os.Stdin = origStdin

		if ok {
			t.Errorf("confirm() with input %q = true, expected false", input)
		}
	}
}

func TestPrintCleanPreviewShowsDiffAcrossSnapshots(t *testing.T) {
	origDir := failuresDir
	defer func() { failuresDir = origDir }()
	failuresDir = t.TempDir()

	fs := openStore()
	fs.Save("TestFoo", store.Snapshot{Seed: 1, Input: "1", Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)})
	fs.Save("TestFoo", store.Snapshot{Seed: 2, Input: "2", Timestamp: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)})

	output := captureOutput(t, func() {
		printCleanPreview(fs, "TestFoo")
	})
	if !strings.Contains(output, "2 snapshot(s)") {
		t.Errorf("printCleanPreview output = %q, expected a snapshot count", output)
	}
	if !strings.Contains(output, "diff, oldest vs newest") {
		t.Errorf("printCleanPreview output = %q, expected a diff section", output)
	}
}
