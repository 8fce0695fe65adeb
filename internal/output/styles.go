package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Use these rather than inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: paths, template names.
	ColorCyan = lipgloss.Color("14")

	colorGreen   = lipgloss.Color("82")
	colorYellow  = lipgloss.Color("220")
	colorBlue    = lipgloss.Color("12")
	colorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for dimmed text.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (paths, template names, workspaces).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome such as prefixes and descriptions.
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Entry status values.
const (
	StatusCreated    = "created"
	StatusSkipped    = "skipped"
	StatusExists     = "exists"
	StatusPlanned    = "planned"
	StatusRolledBack = "rolled back"
	StatusFailed     = "failed"
)

// statusStyle returns the style for a status. Unknown statuses are unstyled.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case StatusCreated:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case StatusSkipped:
		return lipgloss.NewStyle().Foreground(colorYellow)
	case StatusPlanned:
		return lipgloss.NewStyle().Foreground(colorBlue)
	case StatusRolledBack, StatusExists:
		return lipgloss.NewStyle().Faint(true)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(colorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minPathColumnWidth keeps status words aligned for short paths.
const minPathColumnWidth = 48

// FormatEntryLine renders a filesystem entry with a right-aligned status.
//
// Format: d:<path>/  <status> for directories, f:<path>  <status> for files.
func FormatEntryLine(isDir bool, path, status string) string {
	prefix := "f:"
	if isDir {
		prefix = "d:"
		path += "/"
	}

	padding := max(minPathColumnWidth-len(path), 2)

	return StyleDim.Render(prefix) +
		StyleNoun.Render(path) +
		strings.Repeat(" ", padding) +
		statusStyle(status).Render(status)
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
