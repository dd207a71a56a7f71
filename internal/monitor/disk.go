package monitor

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/rtop/internal/telemetry"
	"github.com/rileyhilliard/rtop/internal/theme"
)

func renderDiskPanel(th theme.Theme, s telemetry.Snapshot, width, height int) string {
	return renderPanel(th, " Disk ", theme.LightMagenta, diskBody(th, s.Disks), width, height)
}

func diskBody(th theme.Theme, disks []telemetry.Disk) []string {
	color := func(c theme.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(th.Color(c)) }
	label := color(theme.White)

	var used, total uint64
	for _, d := range disks {
		used += d.Used()
		total += d.TotalSpace
	}

	lines := []string{
		label.Render("Total: ") +
			color(theme.Green).Render(FormatBytes(used)+"/"+FormatBytes(total)) + "  " +
			color(theme.Yellow).Render(fmt.Sprintf("%.1f%%", percentOf(used, total))),
		label.Render("Volumes: ") + color(theme.Cyan).Render(fmt.Sprintf("%d", len(disks))),
	}

	row := color(theme.Yellow)
	for _, d := range disks {
		lines = append(lines, row.Render(fmt.Sprintf("%s  %.1f%%  %s/%s",
			d.Name, percentOf(d.Used(), d.TotalSpace), FormatBytes(d.Used()), FormatBytes(d.TotalSpace))))
	}
	return lines
}
