package monitor

import (
	"fmt"
	"math"

	"github.com/rileyhilliard/rtop/internal/telemetry"
	"github.com/rileyhilliard/rtop/internal/theme"
)

const memBarMaxWidth = 42

func renderMemoryPanel(th theme.Theme, s telemetry.Snapshot, width, height int) string {
	return renderPanel(th, " Memory ", theme.White, memoryBody(th, s, panelInnerWidth(width), panelInnerHeight(height)), width, height)
}

func memoryBody(th theme.Theme, s telemetry.Snapshot, width, height int) []string {
	text := th.Text()

	actual := saturatingSub(s.UsedMemory, s.CachedMemory)
	ramLabel := fmt.Sprintf("RAM: %s/%s/%s ", FormatBytes(actual), FormatBytes(s.CachedMemory), FormatBytes(s.TotalMemory))
	var usedRatio, cachedRatio float64
	if s.TotalMemory > 0 {
		usedRatio = float64(actual) / float64(s.TotalMemory)
		cachedRatio = float64(s.CachedMemory) / float64(s.TotalMemory)
	}
	ram := text.Render(ramLabel) + RenderStackedBar(barWidth(width, len(ramLabel), memBarMaxWidth), usedRatio, cachedRatio)

	swapPct := percentOf(s.UsedSwap, s.TotalSwap)
	swapLabel := fmt.Sprintf("SWAP: %s/%s (%.1f%%) ", FormatBytes(s.UsedSwap), FormatBytes(s.TotalSwap), swapPct)
	swap := text.Render(swapLabel) + RenderBar(barWidth(width, len(swapLabel), memBarMaxWidth), math.Min(swapPct, 100))

	lines := []string{ram, "", swap, ""}
	graphHeight := height - len(lines)
	switch {
	case !s.ShowGraphs:
		lines = append(lines, th.Muted().Render("Graphs disabled"))
	case s.MemoryHistory.Len() == 0:
		lines = append(lines, text.Render("No history"))
	case graphHeight > 0:
		lines = append(lines, memoryGraph(s).Render(width, graphHeight)...)
	}
	return lines
}

// memoryGraph plots used/total in tenths of a percent.
func memoryGraph(s telemetry.Snapshot) BrailleGraph {
	values := s.MemoryHistory.Values()
	data := make([]float64, len(values))
	for i, v := range values {
		data[i] = math.Round(percentOf(v.Used, v.Total) * 10)
	}
	ramPct := percentOf(min(s.UsedMemory, s.TotalMemory), s.TotalMemory)
	g := NewBrailleGraph(data, GradientColor(ramPct/100))
	g.Max = 1000
	g.Smoothing = 3
	g.Gradient = true
	return g
}

func saturatingSub(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}
