package monitor

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SubUnits is the number of fractional steps per bar cell.
const SubUnits = 8

// fractionalBlocks are indexed by the number of filled sub-units in a
// partially filled cell. Index 0 is never drawn.
var fractionalBlocks = []rune{' ', '▏', '▎', '▍', '▌', '▋', '▊', '▉'}

// CellKind describes how a bar cell is drawn.
type CellKind int

const (
	CellTrack CellKind = iota
	CellFull
	CellPartial
)

// BarCell is one character of a bar before styling.
type BarCell struct {
	Kind   CellKind
	Glyph  rune
	Ratio  float64 // position along the bar, picks the gradient color
	Cached bool    // drawn with the cached-memory color
}

// FilledUnits returns the number of lit sub-units for percent over cells.
func FilledUnits(percent float64, cells int) int {
	if cells <= 0 {
		return 0
	}
	p := clampFloat(percent, 0, 100)
	return int(math.Round(p / 100 * float64(cells*SubUnits)))
}

// cellRatio is the gradient position of cell i in a bar of n cells.
func cellRatio(i, n int) float64 {
	return float64(i) / float64(max(1, n-1))
}

// BarCells lays out a single-series bar.
func BarCells(cells int, percent float64) []BarCell {
	if cells <= 0 {
		return nil
	}
	filled := FilledUnits(percent, cells)
	out := make([]BarCell, cells)
	for i := range out {
		out[i] = unitCell(i, cells, filled, false)
	}
	return out
}

// StackedCells lays out the memory bar: the used segment, then the cached
// segment, then the track. Ratios are fractions of the total.
func StackedCells(cells int, usedRatio, cachedRatio float64) []BarCell {
	if cells <= 0 {
		return nil
	}
	total := float64(cells * SubUnits)
	used := int(clampFloat(usedRatio, 0, 1) * total)
	cached := int(clampFloat(cachedRatio, 0, 1) * total)

	out := make([]BarCell, cells)
	for i := range out {
		start := i * SubUnits
		if start < used {
			out[i] = unitCell(i, cells, used, false)
			continue
		}
		out[i] = unitCell(i, cells, used+cached, true)
	}
	return out
}

// unitCell classifies cell i against a fill level in sub-units.
func unitCell(i, cells, filled int, cached bool) BarCell {
	start := i * SubUnits
	end := start + SubUnits
	c := BarCell{Ratio: cellRatio(i, cells), Glyph: ' '}
	switch {
	case filled <= start:
		c.Kind = CellTrack
	case filled >= end:
		c.Kind = CellFull
		c.Cached = cached
	default:
		c.Kind = CellPartial
		c.Cached = cached
		c.Glyph = fractionalBlocks[filled-start]
	}
	return c
}

// RenderCells styles laid-out cells. Full cells are a solid background,
// partial cells draw the glyph over the track.
func RenderCells(cells []BarCell) string {
	var b strings.Builder
	for _, c := range cells {
		active := GradientColor(c.Ratio)
		if c.Cached {
			active = CachedColor(c.Ratio)
		}
		track := TrackColor(c.Ratio)

		var style lipgloss.Style
		switch c.Kind {
		case CellFull:
			style = lipgloss.NewStyle().Background(active.Lipgloss())
		case CellPartial:
			style = lipgloss.NewStyle().Foreground(active.Lipgloss()).Background(track.Lipgloss())
		default:
			style = lipgloss.NewStyle().Background(track.Lipgloss())
		}
		b.WriteString(style.Render(string(c.Glyph)))
	}
	return b.String()
}

// RenderBar renders a gradient bar of width cells filled to percent.
func RenderBar(width int, percent float64) string {
	return RenderCells(BarCells(width, percent))
}

// RenderStackedBar renders the used/cached memory bar.
func RenderStackedBar(width int, usedRatio, cachedRatio float64) string {
	return RenderCells(StackedCells(width, usedRatio, cachedRatio))
}

// barWidth is the room left for a bar after a label, capped at maxWidth.
func barWidth(available, labelWidth, maxWidth int) int {
	return min(max(0, available-labelWidth), maxWidth)
}
