package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Report styles. Markers carry the pass/warn/fail signal so summaries
// stay scannable in long terminal sessions.
var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
)

func okMark() string   { return okStyle.Render("✓") }
func warnMark() string { return warnStyle.Render("⚠") }
func failMark() string { return failStyle.Render("✗") }
