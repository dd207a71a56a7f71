package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/rtop/internal/telemetry"
	"github.com/rileyhilliard/rtop/internal/theme"
)

const (
	netSmoothingRadius = 2
	netHeadroom        = 1.15
)

// NetworkTotals is the summary row of the network panel.
type NetworkTotals struct {
	RXRate, TXRate   uint64
	RXTotal, TXTotal uint64
}

// SummarizeNetwork returns the selected interface's counters, or the sum
// over all interfaces when none is selected. A selection that is no longer
// reported yields zeros.
func SummarizeNetwork(s telemetry.Snapshot) NetworkTotals {
	var t NetworkTotals
	if s.SelectedInterface != nil {
		for _, n := range s.Networks {
			if n.Name == *s.SelectedInterface {
				return NetworkTotals{n.ReceivedPerSec, n.TransmittedPerSec, n.TotalReceived, n.TotalTransmitted}
			}
		}
		return t
	}
	for _, n := range s.Networks {
		t.RXRate += n.ReceivedPerSec
		t.TXRate += n.TransmittedPerSec
		t.RXTotal += n.TotalReceived
		t.TXTotal += n.TotalTransmitted
	}
	return t
}

// NextInterface cycles through the sorted interface names and then back to
// "all" (nil). A selection that vanished restarts at the first name.
func NextInterface(names []string, current *string) *string {
	if len(names) == 0 {
		return nil
	}
	if current == nil {
		return &names[0]
	}
	for i, n := range names {
		if n != *current {
			continue
		}
		if i+1 < len(names) {
			return &names[i+1]
		}
		return nil
	}
	return &names[0]
}

func renderNetworkPanel(th theme.Theme, s telemetry.Snapshot, width, height int) string {
	return renderPanel(th, " Network ", theme.White, networkBody(th, s, panelInnerWidth(width), panelInnerHeight(height)), width, height)
}

func networkBody(th theme.Theme, s telemetry.Snapshot, width, height int) []string {
	label := lipgloss.NewStyle().Foreground(th.Color(theme.White))
	color := func(c theme.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(th.Color(c)) }

	t := SummarizeNetwork(s)
	iface := "All"
	if s.SelectedInterface != nil {
		iface = *s.SelectedInterface
	}

	lines := []string{
		label.Render("RX: ") + color(theme.Green).Render(FormatRate(t.RXRate)),
		label.Render("TX: ") + color(theme.Red).Render(FormatRate(t.TXRate)),
		label.Render("Interface: ") + color(theme.Blue).Render(iface) + "  " +
			th.Muted().Render(FormatBytes(t.RXTotal)+" / "+FormatBytes(t.TXTotal)),
		"",
	}

	chartHeight := height - len(lines)
	switch {
	case !s.ShowGraphs:
		lines = append(lines, th.Muted().Render("Graphs disabled"))
	case s.NetworkHistory.Len() > 0 && chartHeight > 0:
		lines = append(lines, networkChart(th, s.NetworkHistory.Values(), width, chartHeight)...)
	}
	return lines
}

// networkSeries splits the history into smoothed RX and TX series and
// returns the chart's upper bound.
func networkSeries(history []telemetry.RatePair) (rx, tx []float64, upper float64) {
	rx = make([]float64, len(history))
	tx = make([]float64, len(history))
	for i, p := range history {
		rx[i] = float64(p.RX)
		tx[i] = float64(p.TX)
	}
	if len(history) >= 3 {
		rx = MovingAverage(rx, netSmoothingRadius)
		tx = MovingAverage(tx, netSmoothingRadius)
	}

	peak := 1.0
	for i := range rx {
		peak = max(peak, rx[i], tx[i])
	}
	return rx, tx, NiceUpper(peak * netHeadroom)
}

// networkChart draws RX and TX on one braille canvas with a byte-scaled
// axis on the left.
func networkChart(th theme.Theme, history []telemetry.RatePair, width, height int) []string {
	rx, tx, upper := networkSeries(history)

	labels := make([]string, height)
	labels[0] = FormatBytes(uint64(upper))
	labels[height-1] = "0"
	if height > 2 {
		labels[height/2] = FormatBytes(uint64(upper / 2))
	}
	axisWidth := 0
	for _, l := range labels {
		axisWidth = max(axisWidth, lipgloss.Width(l))
	}
	axisWidth++

	plotWidth := width - axisWidth
	if plotWidth < 2 || height < 2 {
		return blankLines(height)
	}

	rxColor, _ := th.RGB(theme.Cyan)
	txColor, _ := th.RGB(theme.LightBlue)
	c := newBrailleCanvas(plotWidth, height)
	c.plot(rx, 0, upper, func(float64) theme.RGB { return rxColor }, false)
	c.plot(tx, 0, upper, func(float64) theme.RGB { return txColor }, false)

	muted := th.Muted()
	out := c.lines()
	for i := range out {
		pad := strings.Repeat(" ", axisWidth-lipgloss.Width(labels[i]))
		out[i] = muted.Render(pad+labels[i]) + out[i]
	}
	return out
}
