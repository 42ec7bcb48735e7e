// SPDX-License-Identifier: MPL-2.0

package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Every styled string in the CLI is built from these.
const (
	// ColorPrimary is purple, for titles and headers.
	ColorPrimary = lipgloss.Color("#7C3AED")
	// ColorMuted is gray, for secondary text.
	ColorMuted = lipgloss.Color("#6B7280")
	// ColorSuccess is green.
	ColorSuccess = lipgloss.Color("#10B981")
	// ColorError is red.
	ColorError = lipgloss.Color("#EF4444")
	// ColorWarning is amber.
	ColorWarning = lipgloss.Color("#F59E0B")
	// ColorHighlight is blue, for module codenames and commands.
	ColorHighlight = lipgloss.Color("#3B82F6")
	// ColorBorder is dim gray, for table borders.
	ColorBorder = lipgloss.Color("240")
)

// Base styles built from the palette.
var (
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	SuccessStyle  = lipgloss.NewStyle().Foreground(ColorSuccess)
	ErrorStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
	WarningStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	// NounStyle styles codenames, platform names and paths.
	NounStyle = lipgloss.NewStyle().Foreground(ColorHighlight)
	DimStyle  = lipgloss.NewStyle().Faint(true)
)

// Module status words as printed by the CLI.
const (
	StatusInstalled   = "installed"
	StatusFailed      = "failed"
	StatusSkipped     = "skipped"
	StatusOrphaned    = "orphaned"
	StatusUninstalled = "uninstalled"
	StatusPlanned     = "planned"
)

// StatusStyle returns the style for a status word. Unknown words are unstyled.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusInstalled, StatusUninstalled:
		return SuccessStyle
	case StatusFailed:
		return ErrorStyle
	case StatusOrphaned:
		return WarningStyle
	case StatusSkipped, StatusPlanned:
		return DimStyle
	default:
		return lipgloss.NewStyle()
	}
}

// minNameColumnWidth keeps status words aligned for typical codenames.
const minNameColumnWidth = 32

// FormatModuleLine renders "<codename>   <status>" with the status
// right-aligned to a common column.
func FormatModuleLine(codename, status string) string {
	padding := max(minNameColumnWidth-len(codename), 2)
	return NounStyle.Render(codename) + strings.Repeat(" ", padding) + StatusStyle(status).Render(status)
}

// Checkmark prefixes msg with a green check.
func Checkmark(msg string) string {
	return SuccessStyle.Render("✔") + " " + msg
}

// Cross prefixes msg with a red cross.
func Cross(msg string) string {
	return ErrorStyle.Render("✘") + " " + msg
}
