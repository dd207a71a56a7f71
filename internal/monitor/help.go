package monitor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/rtop/internal/theme"
)

// helpBindings lists the bindings shown in the help overlay, in order.
func helpBindings(k KeyMap) []key.Binding {
	return []key.Binding{
		k.Quit, k.Up, k.Down, k.Sort, k.Search, k.Kill, k.Tree,
		k.Interface, k.Theme, k.Save, k.Graphs, k.Chart,
		k.IncreaseSpeed, k.DecreaseSpeed, k.ToggleAutoUpdate, k.Help,
	}
}

// renderHelpOverlay renders a centered box listing the key bindings.
func (m Model) renderHelpOverlay() string {
	th := m.theme
	titleStyle := lipgloss.NewStyle().Foreground(th.Color(theme.LightCyan)).Bold(true).MarginBottom(1)
	keyStyle := lipgloss.NewStyle().Foreground(th.Color(theme.White)).Bold(true).Width(10)
	descStyle := th.Muted()

	var lines []string
	lines = append(lines, titleStyle.Render("Keyboard Shortcuts"))
	for _, b := range helpBindings(m.router.Keys()) {
		h := b.Help()
		lines = append(lines, keyStyle.Render(h.Key)+descStyle.Render(h.Desc))
	}
	lines = append(lines, "")
	lines = append(lines, descStyle.Render("Press ? to close"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Color(theme.DarkGray)).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceChars(" "))
}
