package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/rileyhilliard/rtop/internal/theme"
)

// Fixed colors shared by every scheme. Bars, graphs and sensor readouts keep
// the same palette regardless of the active theme.
var (
	gradientLow  = theme.RGB{R: 0x00, G: 0xff, B: 0x87} // emerald
	gradientMid  = theme.RGB{R: 0xf9, G: 0xff, B: 0x00} // cyber yellow
	gradientHigh = theme.RGB{R: 0xff, G: 0x00, B: 0x3c} // neon rose
	tempOrange   = theme.RGB{R: 0xff, G: 0xa5, B: 0x00}

	freqIdle  = theme.RGB{R: 0x62, G: 0x72, B: 0xa4}
	freqBase  = theme.RGB{R: 0x8b, G: 0xe9, B: 0xfd}
	freqBoost = theme.RGB{R: 0xbd, G: 0x93, B: 0xf9}
)

// Dimming factors relative to the active gradient color.
const (
	trackDim    = 0.3
	cachedDim   = 0.7
	baselineDim = 0.28
	fillDim     = 0.85
)

// Thresholds for CPU and memory coloring.
const (
	WarningThreshold  = 50.0
	CriticalThreshold = 80.0
)

// lerpRGB blends a toward b. Channels truncate like an integer cast.
func lerpRGB(a, b theme.RGB, t float64) theme.RGB {
	t = clampFloat(t, 0, 1)
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return theme.RGB{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B)}
}

// GradientColor maps a position in [0,1] onto the two-segment bar palette.
func GradientColor(ratio float64) theme.RGB {
	ratio = clampFloat(ratio, 0, 1)
	if ratio < 0.5 {
		return lerpRGB(gradientLow, gradientMid, ratio*2)
	}
	return lerpRGB(gradientMid, gradientHigh, (ratio-0.5)*2)
}

// TrackColor is the unfilled part of a bar at ratio.
func TrackColor(ratio float64) theme.RGB {
	return GradientColor(ratio).Scale(trackDim)
}

// CachedColor is the cached-memory segment of the stacked memory bar.
func CachedColor(ratio float64) theme.RGB {
	return GradientColor(ratio).Scale(cachedDim)
}

// TemperatureColor returns the readout color for a temperature in °C.
func TemperatureColor(temp float64) theme.RGB {
	switch {
	case temp < 50:
		return gradientLow
	case temp <= 75:
		return lerpRGB(gradientLow, gradientMid, (temp-50)/25)
	case temp <= 85:
		return lerpRGB(gradientMid, tempOrange, (temp-75)/10)
	default:
		return gradientHigh
	}
}

// FrequencyColor returns the readout color for a core clock in MHz.
func FrequencyColor(mhz float64) theme.RGB {
	switch {
	case mhz < 1000:
		return freqIdle
	case mhz <= 3000:
		return freqBase
	default:
		return freqBoost
	}
}

// ThresholdColor colors a CPU or memory percentage: green up to 50, yellow
// up to 80, red above.
func ThresholdColor(th theme.Theme, percent float64) lipgloss.Color {
	switch {
	case percent <= WarningThreshold:
		return th.Color(theme.Green)
	case percent <= CriticalThreshold:
		return th.Color(theme.Yellow)
	default:
		return th.Color(theme.Red)
	}
}

// fg returns a style with the given truecolor foreground.
func fg(c theme.RGB) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c.Lipgloss())
}

// SectionHeader renders the top border of a panel with the title inset.
// Format: ╭─ Title ──────────────────────────────╮
func SectionHeader(th theme.Theme, title string, titleColor theme.Color, width int) string {
	if width < 6 {
		width = 6
	}
	border := lipgloss.NewStyle().Foreground(th.Color(theme.DarkGray))
	titleStyle := lipgloss.NewStyle().Foreground(th.Color(titleColor)).Bold(true)

	title = truncate(title, width-3)
	fill := width - 3 - lipgloss.Width(title)
	if fill < 0 {
		fill = 0
	}
	return border.Render("╭─") + titleStyle.Render(title) + border.Render(strings.Repeat("─", fill)+"╮")
}

// SectionFooter renders the bottom border of a panel.
// Format: ╰──────────────────────────────────────╯
func SectionFooter(th theme.Theme, width int) string {
	if width < 2 {
		width = 2
	}
	border := lipgloss.NewStyle().Foreground(th.Color(theme.DarkGray))
	return border.Render("╰" + strings.Repeat("─", width-2) + "╯")
}

// SectionContentLine renders one content line between the side borders,
// padded or cut to fit. Format: │ content                              │
func SectionContentLine(th theme.Theme, content string, width int) string {
	if width < 4 {
		width = 4
	}
	border := lipgloss.NewStyle().Foreground(th.Color(theme.DarkGray))
	inner := width - 4
	return border.Render("│") + " " + fitWidth(content, inner) + " " + border.Render("│")
}

// renderPanel frames body lines into a width×height box. Lines beyond the
// inner height are dropped and short bodies are padded with blank lines.
func renderPanel(th theme.Theme, title string, titleColor theme.Color, body []string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if height < 2 {
		return SectionHeader(th, title, titleColor, width)
	}

	lines := make([]string, 0, height)
	lines = append(lines, SectionHeader(th, title, titleColor, width))
	inner := height - 2
	for i := 0; i < inner; i++ {
		content := ""
		if i < len(body) {
			content = body[i]
		}
		lines = append(lines, SectionContentLine(th, content, width))
	}
	lines = append(lines, SectionFooter(th, width))
	return strings.Join(lines, "\n")
}

// panelInnerWidth is the content width of a panel rendered at width.
func panelInnerWidth(width int) int {
	return max(0, width-4)
}

// panelInnerHeight is the content height of a panel rendered at height.
func panelInnerHeight(height int) int {
	return max(0, height-2)
}

// fitWidth pads s with spaces or cuts it so it occupies exactly width cells.
func fitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := lipgloss.Width(s)
	if w > width {
		s = ansi.Truncate(s, width, "")
		w = lipgloss.Width(s)
	}
	return s + strings.Repeat(" ", max(0, width-w))
}

// truncate shortens plain text to maxLen cells, adding an ellipsis.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
