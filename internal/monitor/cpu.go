package monitor

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/rtop/internal/telemetry"
	"github.com/rileyhilliard/rtop/internal/theme"
)

const (
	cpuBarMaxWidth = 48
	coreCellWidth  = 18
	cpuGraphHeight = 2
)

// CPUTempPriority ranks a sensor label as a CPU temperature source. Higher
// wins; ok is false for labels that are not CPU sensors.
func CPUTempPriority(label string) (int, bool) {
	lower := strings.ReplaceAll(strings.ToLower(label), "_", " ")
	switch {
	case lower == "":
		return 1, true
	case strings.Contains(lower, "package id"),
		strings.Contains(lower, "x86 pkg temp"),
		strings.Contains(lower, "cpu package"),
		strings.Contains(lower, "physical id"):
		return 7, true
	case strings.Contains(lower, "tdie"),
		strings.Contains(lower, "tctl"),
		strings.Contains(lower, "tcpu"):
		return 6, true
	case strings.Contains(lower, "cpu"), strings.Contains(lower, "package"):
		return 5, true
	case strings.Contains(lower, "coretemp"), strings.HasPrefix(lower, "core "):
		return 4, true
	case strings.Contains(lower, "soc"):
		return 3, true
	}
	return 0, false
}

// CPUTemperature picks the highest-priority CPU sensor. On ties the later
// sensor wins.
func CPUTemperature(temps []telemetry.TemperatureInfo) (float32, bool) {
	best := -1
	var value float32
	for _, t := range temps {
		p, ok := CPUTempPriority(t.Label)
		if !ok || p < best {
			continue
		}
		best = p
		value = t.Temperature
	}
	return value, best >= 0
}

// averageCoreHistory averages the per-core rings sample by sample.
func averageCoreHistory(rings []*telemetry.HistoryRing[float32]) []float64 {
	if len(rings) == 0 {
		return nil
	}
	n := rings[0].Len()
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		var sum float64
		count := 0
		for _, r := range rings {
			if v, ok := r.At(i); ok {
				sum += float64(v)
				count++
			}
		}
		if count > 0 {
			out = append(out, math.Round(sum/float64(count)))
		}
	}
	return out
}

func averageFrequency(freqs []uint64) (float64, bool) {
	if len(freqs) == 0 {
		return 0, false
	}
	var sum uint64
	for _, f := range freqs {
		sum += f
	}
	return float64(sum) / float64(len(freqs)), true
}

func renderCPUPanel(th theme.Theme, s telemetry.Snapshot, width, height int) string {
	title := " CPU "
	if s.CPUName != "" {
		title = fmt.Sprintf(" CPU · %s ", s.CPUName)
	}
	return renderPanel(th, title, theme.LightBlue, cpuBody(th, s, panelInnerWidth(width), panelInnerHeight(height)), width, height)
}

func cpuBody(th theme.Theme, s telemetry.Snapshot, width, height int) []string {
	text := th.Text()
	usage := float64(s.GlobalCPUUsage)

	stats := text.Render("Usage: ") +
		lipgloss.NewStyle().Foreground(ThresholdColor(th, usage)).Render(fmt.Sprintf("%.1f%%", usage)) +
		text.Render(fmt.Sprintf("   Cores: %d", s.CPUCount))
	if avg, ok := averageFrequency(s.CPUFrequencies); ok {
		stats += text.Render(fmt.Sprintf("   Freq:  %.0fMHz", avg))
	}

	prefix := fmt.Sprintf("CPU:%6.1f%% ", usage)
	bar := text.Render(prefix) + RenderBar(barWidth(width, len(prefix), cpuBarMaxWidth), math.Min(usage, 100))

	var temp string
	if t, ok := CPUTemperature(s.Temperatures); ok {
		temp = fg(TemperatureColor(float64(t))).Render(fmt.Sprintf("Temp: %.1f°C", t))
	} else {
		temp = text.Render("Temp: N/A")
	}
	if s.CPUPower != nil && *s.CPUPower > 0 {
		p := float64(*s.CPUPower)
		temp += text.Render(" | ") + fg(TemperatureColor(p)).Render(fmt.Sprintf("Power: %.1fW", p))
	}

	lines := []string{stats, bar, temp}
	if len(s.CPUHistory) > 0 {
		g := NewBrailleGraph(averageCoreHistory(s.CPUHistory), GradientColor(usage/100))
		g.Smoothing = 2
		g.Gradient = true
		lines = append(lines, g.Render(width, cpuGraphHeight)...)
	} else {
		lines = append(lines, text.Render("No history"))
	}

	lines = append(lines, "")
	lines = append(lines, coreGrid(th, s, width, height-len(lines))...)
	return lines
}

// coreGrid lays the cores out column-major in 18-cell columns.
func coreGrid(th theme.Theme, s telemetry.Snapshot, width, height int) []string {
	if height <= 0 || s.CPUCount == 0 {
		return nil
	}
	cols := width / coreCellWidth
	if cols == 0 {
		return []string{th.Text().Render("Not enough space for core grid")}
	}
	perCol := (s.CPUCount + cols - 1) / cols
	colWidth := width / cols
	rows := min(perCol, height)

	out := make([]string, rows)
	for r := 0; r < rows; r++ {
		var b strings.Builder
		for c := 0; c < cols; c++ {
			idx := c*perCol + r
			if idx >= s.CPUCount {
				break
			}
			b.WriteString(fitWidth(coreCell(th, s, idx), colWidth))
		}
		out[r] = b.String()
	}
	return out
}

func coreCell(th theme.Theme, s telemetry.Snapshot, idx int) string {
	var usage float32
	if idx < len(s.CPUHistory) {
		usage, _ = s.CPUHistory[idx].Back()
	}
	var freq uint64
	if idx < len(s.CPUFrequencies) {
		freq = s.CPUFrequencies[idx]
	}
	return th.Text().Render(fmt.Sprintf("%2d: %.1f%% ", idx, usage)) +
		fg(FrequencyColor(float64(freq))).Render(fmt.Sprintf("%dMHz", freq))
}
