package monitor

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/rtop/internal/telemetry"
	"github.com/rileyhilliard/rtop/internal/theme"
)

const gpuBarMaxWidth = 48

func renderGPUPanel(th theme.Theme, s telemetry.Snapshot, width, height int) string {
	return renderPanel(th, " GPU ", theme.White, gpuBody(th, s.GPUs, panelInnerWidth(width)), width, height)
}

func gpuBody(th theme.Theme, gpus []telemetry.GPU, width int) []string {
	if len(gpus) == 0 {
		return []string{th.Text().Render("No GPUs detected.")}
	}
	var lines []string
	for i, g := range gpus {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, gpuBlock(th, g, width)...)
	}
	return lines
}

// gpuBlock renders the name, usage bar and the T/P/M stats line.
func gpuBlock(th theme.Theme, g telemetry.GPU, width int) []string {
	name := lipgloss.NewStyle().Foreground(th.Color(theme.Cyan)).Bold(true).Render(g.Name)

	prefix := "Usage:  N/A  "
	prefixStyle := th.Muted()
	var usage float64
	if g.Usage != nil {
		usage = clampFloat(float64(*g.Usage), 0, 100)
		prefix = fmt.Sprintf("Usage:%6.1f%% ", usage)
		prefixStyle = th.Text()
	}
	bar := prefixStyle.Render(prefix) + RenderBar(barWidth(width, len(prefix), gpuBarMaxWidth), usage)

	return []string{name, bar, gpuStats(th, g)}
}

func gpuStats(th theme.Theme, g telemetry.GPU) string {
	muted := th.Muted()

	temp := muted.Render("T:--")
	if g.Temp != nil {
		temp = fg(TemperatureColor(float64(*g.Temp))).Render(fmt.Sprintf("T:%.0fC", *g.Temp))
	}

	power := muted.Render("P:--")
	if g.PowerUsage != nil && *g.PowerUsage > 0 {
		power = lipgloss.NewStyle().Foreground(th.Color(theme.Yellow)).Render(fmt.Sprintf("P:%.1fW", *g.PowerUsage))
	}

	var mem string
	switch {
	case g.MemoryUsed != nil && g.MemoryTotal != nil:
		mem = th.Text().Render(fmt.Sprintf("M:%s/%s", FormatBytes(*g.MemoryUsed), FormatBytes(*g.MemoryTotal)))
	case g.MemoryUsed != nil:
		mem = th.Text().Render("M:" + FormatBytes(*g.MemoryUsed))
	case g.MemoryTotal != nil:
		mem = muted.Render("M:--/" + FormatBytes(*g.MemoryTotal))
	default:
		mem = muted.Render("M:--")
	}

	return temp + "  " + power + "  " + mem
}
