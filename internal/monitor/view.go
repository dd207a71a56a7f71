package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/rtop/internal/theme"
)

// Minimum terminal size for the full layout.
const (
	MinWidth  = 60
	MinHeight = 12
)

// Layout is the rectangle split of the dashboard body.
type Layout struct {
	LeftWidth, MiddleWidth, RightWidth int
	BodyHeight                         int
	CPUHeight, GPUHeight, MemHeight    int
	NetHeight, DiskHeight              int
}

// ComputeLayout splits a width×height terminal: one line each for the status
// and keybind bars, three columns at 33/34/33%, the left column at 33/33/34%
// and the right column at 50/50.
func ComputeLayout(width, height int) Layout {
	var l Layout
	l.BodyHeight = max(0, height-2)

	l.LeftWidth = width * 33 / 100
	l.RightWidth = width * 33 / 100
	l.MiddleWidth = width - l.LeftWidth - l.RightWidth

	l.CPUHeight = l.BodyHeight * 33 / 100
	l.GPUHeight = l.BodyHeight * 33 / 100
	l.MemHeight = l.BodyHeight - l.CPUHeight - l.GPUHeight

	l.NetHeight = l.BodyHeight / 2
	l.DiskHeight = l.BodyHeight - l.NetHeight
	return l
}

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	if m.width < MinWidth || m.height < MinHeight {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.theme.Muted().Render(fmt.Sprintf("Terminal too small (need %dx%d)", MinWidth, MinHeight)))
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	l := ComputeLayout(m.width, m.height)
	s := m.frame
	th := m.theme

	left := lipgloss.JoinVertical(lipgloss.Left,
		renderCPUPanel(th, s, l.LeftWidth, l.CPUHeight),
		renderGPUPanel(th, s, l.LeftWidth, l.GPUHeight),
		renderMemoryPanel(th, s, l.LeftWidth, l.MemHeight),
	)
	middle := renderProcessPanel(th, &m.procs, m.rows(), s.ProcessSort, l.MiddleWidth, l.BodyHeight)
	right := lipgloss.JoinVertical(lipgloss.Left,
		renderNetworkPanel(th, s, l.RightWidth, l.NetHeight),
		renderDiskPanel(th, s, l.RightWidth, l.DiskHeight),
	)

	var b strings.Builder
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, middle, right))
	b.WriteString("\n")
	b.WriteString(m.renderKeybindBar())
	return b.String()
}

// renderStatusBar renders the top line: host, uptime, load, update settings,
// clock and theme.
func (m Model) renderStatusBar() string {
	th := m.theme
	bg := th.Color(theme.DarkGray)
	seg := func(c theme.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(th.Color(c)).Background(bg)
	}
	s := m.frame
	auto := "off"
	if m.ui.AutoUpdate {
		auto = "on"
	}

	line := lipgloss.NewStyle().Foreground(th.Color(theme.Black)).Background(th.Color(theme.Cyan)).Bold(true).Render(" RTOP ") +
		seg(theme.White).Render(fmt.Sprintf("  host:%s  ", s.Hostname)) +
		seg(theme.White).Render(fmt.Sprintf("uptime:%s  ", s.Uptime)) +
		seg(theme.Yellow).Render(fmt.Sprintf("load:%s  ", s.LoadAvg)) +
		seg(theme.LightCyan).Render(fmt.Sprintf("auto:%s  ", auto)) +
		seg(theme.LightBlue).Render(fmt.Sprintf("interval:%dms  ", m.ui.UpdateInterval)) +
		seg(theme.Green).Render(fmt.Sprintf("time:%s ", m.now().Format("15:04:05"))) +
		seg(theme.LightMagenta).Bold(true).Render(fmt.Sprintf(" theme:%s ", s.ColorScheme.DisplayName()))

	return fillLine(line, m.width, bg)
}

// keybindHints are the shortcuts shown in the bottom bar.
var keybindHints = []struct {
	text  string
	color theme.Color
}{
	{" [q] quit ", theme.Red},
	{" [↑/↓] move ", theme.Green},
	{" [s] sort ", theme.Cyan},
	{" [S] search ", theme.LightCyan},
	{" [k] kill ", theme.LightRed},
	{" [T] tree ", theme.Magenta},
	{" [i] interface ", theme.LightBlue},
	{" [t] theme ", theme.Yellow},
	{" [w] save ", theme.LightGreen},
}

// renderKeybindBar renders the bottom line of shortcuts and the active theme.
func (m Model) renderKeybindBar() string {
	th := m.theme
	bg := th.Color(theme.DarkGray)

	var b strings.Builder
	for _, h := range keybindHints {
		b.WriteString(lipgloss.NewStyle().Foreground(th.Color(h.color)).Background(bg).Render(h.text))
	}
	b.WriteString(lipgloss.NewStyle().Foreground(th.Color(theme.LightMagenta)).Background(bg).Bold(true).
		Render(fmt.Sprintf("  active:%s ", m.ui.ColorScheme.DisplayName())))

	return fillLine(b.String(), m.width, bg)
}

// fillLine cuts or pads a styled line to width, padding with bg.
func fillLine(line string, width int, bg lipgloss.Color) string {
	w := lipgloss.Width(line)
	if w >= width {
		return fitWidth(line, width)
	}
	return line + lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", width-w))
}
