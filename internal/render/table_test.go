package render

import (
	"strings"
	"testing"
)

func TestTableViewEmpty(t *testing.T) {
	table := NewTable("Empty")
	if view := table.View(); view != "" {
		t.Errorf("View() on a table with no rows = %q, expected empty string", view)
	}
}

func TestTableViewRendersTitleHeaderAndRows(t *testing.T) {
	table := NewTable("Failures", "TEST", "SNAPSHOTS")
	table.AddRow("TestFoo", "3")
	table.AddRow("TestBar", "1")

	view := table.View()

	if !strings.Contains(view, "Failures") {
		t.Error("View() missing title")
	}
	if !strings.Contains(view, "TEST") || !strings.Contains(view, "SNAPSHOTS") {
		t.Error("View() missing headers")
	}
	if !strings.Contains(view, "TestFoo") || !strings.Contains(view, "3") {
		t.Error("View() missing row content")
	}
}

func TestTableAddRowToleratesMismatchedCellCount(t *testing.T) {
	table := NewTable("", "A", "B", "C")
	table.AddRow("only-one")

	view := table.View()
	if !strings.Contains(view, "only-one") {
		t.Error("View() with fewer cells than headers should still render the provided cells")
	}
}
