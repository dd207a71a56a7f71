package ui

import "github.com/charmbracelet/lipgloss"

// Color palette using ANSI color codes so CLI output follows the user's
// terminal theme. The dashboard has its own palettes in internal/theme.

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

var colorsEnabled = true

// DisableColors switches every style helper to plain text.
func DisableColors() {
	colorsEnabled = false
}

// EnableColors restores colored output.
func EnableColors() {
	colorsEnabled = true
}

// ColorsEnabled reports whether style helpers emit colors.
func ColorsEnabled() bool {
	return colorsEnabled
}

func foreground(c lipgloss.Color) lipgloss.Style {
	if !colorsEnabled {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(c)
}

// SuccessStyle renders text in the success color.
func SuccessStyle() lipgloss.Style { return foreground(ColorSuccess) }

// ErrorStyle renders text in the error color.
func ErrorStyle() lipgloss.Style { return foreground(ColorError) }

// WarningStyle renders text in the warning color.
func WarningStyle() lipgloss.Style { return foreground(ColorWarning) }

// InfoStyle renders text in the info color.
func InfoStyle() lipgloss.Style { return foreground(ColorInfo) }

// MutedStyle renders secondary text.
func MutedStyle() lipgloss.Style { return foreground(ColorMuted) }

// HeadingStyle renders section headings.
func HeadingStyle() lipgloss.Style {
	return foreground(ColorSecondary).Bold(colorsEnabled)
}
