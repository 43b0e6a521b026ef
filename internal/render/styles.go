// Package render provides the terminal styling shared by the protest CLI
// and by prop.FormatFailure/FormatSummary. Grounded on the color-palette-plus-
// Theme pattern in cmd/nerd/ui/styles.go, scaled down to what a reporting CLI
// (rather than a full TUI) needs: a handful of semantic styles, no light/dark
// mode switching.
package render

import "github.com/charmbracelet/lipgloss"

var (
	colorError   = lipgloss.Color("#e53935")
	colorSuccess = lipgloss.Color("#8BC34A")
	colorWarning = lipgloss.Color("#FFC107")
	colorMuted   = lipgloss.Color("#6b7280")
	colorAccent  = lipgloss.Color("#2196F3")
)

var (
	// Header styles a section title (e.g. a test name in `list`/`show`).
	Header = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	// ErrorText styles a failure message.
	ErrorText = lipgloss.NewStyle().Foreground(colorError)

	// SuccessText styles a passing-run summary.
	SuccessText = lipgloss.NewStyle().Foreground(colorSuccess)

	// WarningText styles a non-fatal notice (e.g. "no snapshots found").
	WarningText = lipgloss.NewStyle().Foreground(colorWarning)

	// Muted styles secondary detail (timestamps, counts).
	Muted = lipgloss.NewStyle().Foreground(colorMuted)

	// Code styles a literal value rendering (`%#v` of an input).
	Code = lipgloss.NewStyle().Foreground(colorAccent).Italic(true)
)
