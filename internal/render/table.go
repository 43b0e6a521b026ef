package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table is a minimal fixed-column table renderer, grounded on
// cmd/nerd/ui/simple_table.go's column-width-then-pad approach but trimmed
// to the handful of styles this package exposes.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// NewTable builds an empty Table with title and headers.
func NewTable(title string, headers ...string) *Table {
	return &Table{Title: title, Headers: headers}
}

// AddRow appends a row. Extra or missing cells relative to Headers are
// tolerated — View only ever indexes up to len(Headers).
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// View renders the table as plain text with lipgloss-styled header and
// separator rows. An empty table renders as "".
func (t *Table) View() string {
	if len(t.Rows) == 0 {
		return ""
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}
	for i := range widths {
		widths[i] += 2
	}

	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString(Header.Render(t.Title))
		sb.WriteString("\n")
	}

	writeRow := func(cells []string, style lipgloss.Style) {
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			sb.WriteString(style.Width(w).Render(cell))
		}
		sb.WriteString("\n")
	}

	writeRow(t.Headers, Header)

	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w-1)
	}
	writeRow(sep, Muted)

	for _, row := range t.Rows {
		writeRow(row, lipgloss.NewStyle())
	}

	return sb.String()
}
