package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/rtop/internal/telemetry"
	"github.com/rileyhilliard/rtop/internal/theme"
)

// Kill dialog size as a share of the process panel.
const (
	dialogWidthPct  = 66
	dialogHeightPct = 32
	dialogMinHeight = 5
)

// FormatProcessRow renders one process line in list or tree form.
func FormatProcessRow(row ProcessRow, tree bool) string {
	p := row.Process
	if tree {
		return fmt.Sprintf("%s%s [%d] %.2f%% %s",
			strings.Repeat("  ", row.Depth), p.Name, p.PID, p.CPUUsage, FormatBytes(p.Memory))
	}
	return fmt.Sprintf("%7d %8s %6.2f%% %9s %s",
		p.PID, FormatBytes(p.Memory), p.CPUUsage, FormatBytes(p.DiskUsage), p.Name)
}

// processTitle is the panel title, e.g. " Processes · list · sort:CPU ".
func processTitle(p *ProcessPanel, order telemetry.ProcessSort) string {
	mode := "list"
	if p.Tree {
		mode = "tree"
	}
	filter := ""
	if strings.TrimSpace(p.Filter) != "" {
		filter = " · filter:" + p.Filter
	}
	return fmt.Sprintf(" Processes · %s · sort:%s%s ", mode, order, filter)
}

func processHeader(p *ProcessPanel, rows []ProcessRow) string {
	pos := 0
	if len(rows) > 0 {
		pos = p.Selected + 1
	}
	var line string
	switch {
	case p.Searching:
		line = fmt.Sprintf(" search: %s_  [enter] apply [esc] cancel", p.Input)
	case p.Tree:
		line = fmt.Sprintf(" tree entries: %d  selected: %d/%d", len(rows), pos, len(rows))
	default:
		line = fmt.Sprintf(" %7s %8s %6s %9s  %s   [%d/%d]", "PID", "MEM", "CPU%", "WRITE", "NAME", pos, len(rows))
	}
	if p.Status != "" {
		line += "  ·  " + p.Status
	}
	return line
}

func renderProcessPanel(th theme.Theme, p *ProcessPanel, rows []ProcessRow, order telemetry.ProcessSort, width, height int) string {
	innerW, innerH := panelInnerWidth(width), panelInnerHeight(height)

	headerColor := theme.Cyan
	if p.Searching {
		headerColor = theme.Yellow
	}
	body := []string{lipgloss.NewStyle().Foreground(th.Color(headerColor)).Render(processHeader(p, rows))}

	visible := max(0, innerH-1)
	if len(rows) == 0 {
		body = append(body, th.Muted().Render("No processes"))
	} else {
		selected := min(p.Selected, len(rows)-1)
		start := ScrollStart(selected, visible)
		end := min(len(rows), start+visible)

		normal := th.Muted()
		highlight := lipgloss.NewStyle().Background(th.Color(theme.Blue)).Foreground(th.Color(theme.White))
		for i := start; i < end; i++ {
			line := fitWidth(FormatProcessRow(rows[i], p.Tree), innerW)
			if i == selected {
				body = append(body, highlight.Render(line))
			} else {
				body = append(body, normal.Render(line))
			}
		}
	}

	if p.Dialog != nil {
		body = overlayDialog(body, renderKillDialog(th, p.Dialog, width*dialogWidthPct/100, max(dialogMinHeight, height*dialogHeightPct/100)), innerW, innerH)
	}

	return renderPanel(th, processTitle(p, order), theme.LightGreen, body, width, height)
}

func renderKillDialog(th theme.Theme, d *KillDialog, width, height int) string {
	yes := lipgloss.NewStyle().Foreground(th.Color(theme.Black)).Background(th.Color(theme.Green)).Bold(true)
	no := th.Muted()
	if !d.Yes {
		yes, no = th.Muted(), lipgloss.NewStyle().Foreground(th.Color(theme.Black)).Background(th.Color(theme.Red)).Bold(true)
	}

	body := []string{
		lipgloss.NewStyle().Foreground(th.Color(theme.White)).Render(fmt.Sprintf("Terminate '%s' (PID %d)?", d.Name, d.PID)),
		" " + yes.Render(" Yes ") + "   " + no.Render(" No "),
		lipgloss.NewStyle().Foreground(th.Color(theme.DarkGray)).Render("Enter: confirm  Esc: cancel"),
	}
	return renderPanel(th, " Confirm Termination ", theme.LightRed, body, width, height)
}

// overlayDialog centers box over body, which is padded to height lines.
func overlayDialog(body []string, box string, width, height int) []string {
	out := make([]string, max(height, len(body)))
	copy(out, body)

	boxLines := strings.Split(box, "\n")
	top := max(0, (height-len(boxLines))/2)
	left := max(0, (width-lipgloss.Width(boxLines[0]))/2)
	for i, l := range boxLines {
		if top+i >= len(out) {
			break
		}
		out[top+i] = strings.Repeat(" ", left) + l
	}
	return out
}
