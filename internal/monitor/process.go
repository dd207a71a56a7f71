package monitor

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rileyhilliard/rtop/internal/telemetry"
)

// Status messages shown in the process panel header.
const (
	statusNoProcess      = "No process selected"
	statusKillCanceled   = "Termination canceled"
	statusSearchCanceled = "Search canceled"
)

// ProcessRow is one displayed process with its tree depth.
type ProcessRow struct {
	Process telemetry.Process
	Depth   int
}

// KillDialog is the pending termination confirmation.
type KillDialog struct {
	PID  int32
	Name string
	Yes  bool
}

// ProcessPanel holds the process view's interactive state: selection, tree
// mode, search and the kill dialog.
type ProcessPanel struct {
	Selected   int
	Tree       bool
	Filter     string
	Searching  bool
	Input      string
	prevFilter string
	Dialog     *KillDialog
	Status     string
}

// Mode returns the input mode the router should use.
func (p *ProcessPanel) Mode() InputMode {
	switch {
	case p.Dialog != nil:
		return ModeKillDialog
	case p.Searching:
		return ModeSearch
	default:
		return ModeNormal
	}
}

// needle is the active lowercase filter, empty for none.
func (p *ProcessPanel) needle() string {
	src := p.Filter
	if p.Searching {
		src = p.Input
	}
	return strings.ToLower(strings.TrimSpace(src))
}

// Rows returns the processes to display in order.
func (p *ProcessPanel) Rows(procs []telemetry.Process, order telemetry.ProcessSort) []ProcessRow {
	needle := p.needle()
	if p.Tree {
		return treeRows(procs, needle)
	}

	rows := make([]ProcessRow, 0, len(procs))
	for _, proc := range procs {
		if matches(proc, needle) {
			rows = append(rows, ProcessRow{Process: proc})
		}
	}
	sortRows(rows, order)
	return rows
}

// Clamp keeps the selection within [0, max(0,n-1)].
func (p *ProcessPanel) Clamp(n int) {
	p.Selected = min(max(0, p.Selected), max(0, n-1))
}

// MoveUp selects the previous row.
func (p *ProcessPanel) MoveUp() {
	if p.Mode() != ModeNormal {
		return
	}
	if p.Selected > 0 {
		p.Selected--
	}
}

// MoveDown selects the next row; Clamp bounds it against the row count.
func (p *ProcessPanel) MoveDown(n int) {
	if p.Mode() != ModeNormal {
		return
	}
	if p.Selected < n-1 {
		p.Selected++
	}
}

// ToggleTree switches between the flat list and the tree.
func (p *ProcessPanel) ToggleTree() {
	if p.Mode() != ModeNormal {
		return
	}
	p.Tree = !p.Tree
}

// StartSearch opens the search box seeded with the current filter.
func (p *ProcessPanel) StartSearch() {
	if p.Dialog != nil {
		return
	}
	p.prevFilter = p.Filter
	p.Input = p.Filter
	p.Status = ""
	p.Searching = true
}

// TypeSearch appends text to the search input.
func (p *ProcessPanel) TypeSearch(text string) {
	if !p.Searching {
		return
	}
	p.Input += text
	p.Selected = 0
}

// BackspaceSearch removes the last rune of the search input.
func (p *ProcessPanel) BackspaceSearch() {
	if !p.Searching {
		return
	}
	if r := []rune(p.Input); len(r) > 0 {
		p.Input = string(r[:len(r)-1])
	}
	p.Selected = 0
}

// ConfirmSearch applies the input as the filter.
func (p *ProcessPanel) ConfirmSearch() {
	if !p.Searching {
		return
	}
	p.Filter = strings.TrimSpace(p.Input)
	p.Input = ""
	p.Searching = false
	p.Selected = 0
	p.Status = ""
}

// CancelSearch restores the filter that was active before the search.
func (p *ProcessPanel) CancelSearch() {
	if !p.Searching {
		return
	}
	p.Filter = p.prevFilter
	p.Input = ""
	p.Searching = false
	p.Selected = 0
	p.Status = statusSearchCanceled
}

// RequestKill opens the confirmation dialog for the selected row.
func (p *ProcessPanel) RequestKill(rows []ProcessRow) {
	if p.Searching || p.Dialog != nil {
		return
	}
	if len(rows) == 0 {
		p.Status = statusNoProcess
		return
	}
	p.Clamp(len(rows))
	proc := rows[p.Selected].Process
	p.Dialog = &KillDialog{PID: proc.PID, Name: proc.Name, Yes: true}
	p.Status = ""
}

// ToggleKillChoice flips between Yes and No.
func (p *ProcessPanel) ToggleKillChoice() {
	if p.Dialog != nil {
		p.Dialog.Yes = !p.Dialog.Yes
	}
}

// ConfirmKill closes the dialog. It returns the target and true when Yes
// was chosen; the caller performs the termination.
func (p *ProcessPanel) ConfirmKill() (KillDialog, bool) {
	if p.Dialog == nil {
		return KillDialog{}, false
	}
	d := *p.Dialog
	p.Dialog = nil
	if !d.Yes {
		p.Status = statusKillCanceled
		return d, false
	}
	return d, true
}

// CancelKill closes the dialog without terminating anything.
func (p *ProcessPanel) CancelKill() {
	if p.Dialog == nil {
		return
	}
	p.Dialog = nil
	p.Status = statusKillCanceled
}

// ScrollStart returns the first visible row index so the selection stays
// on screen.
func ScrollStart(selected, visible int) int {
	if visible <= 0 || selected < visible {
		return 0
	}
	return selected + 1 - visible
}

func matches(p telemetry.Process, needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(strconv.Itoa(int(p.PID)), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), needle) {
		return true
	}
	for _, tok := range p.Cmd {
		if strings.Contains(strings.ToLower(tok), needle) {
			return true
		}
	}
	return p.Exe != "" && strings.Contains(strings.ToLower(p.Exe), needle)
}

func sortRows(rows []ProcessRow, order telemetry.ProcessSort) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Process, rows[j].Process
		switch order {
		case telemetry.SortByMemory:
			if a.Memory != b.Memory {
				return a.Memory > b.Memory
			}
			return a.PID < b.PID
		case telemetry.SortByPID:
			return a.PID > b.PID
		case telemetry.SortByName:
			if a.Name != b.Name {
				return a.Name < b.Name
			}
			return a.PID < b.PID
		default:
			if a.CPUUsage != b.CPUUsage {
				return a.CPUUsage > b.CPUUsage
			}
			if a.Memory != b.Memory {
				return a.Memory > b.Memory
			}
			return a.PID < b.PID
		}
	})
}

// treeRows walks the parent/child forest from root 0 and then from root 1,
// so everything under pid 1 is listed twice: once beneath init and once at
// the top level. Processes without a parent hang off 0. A filtered-out node
// still has its children visited. Only the pids on the current path are
// guarded, which breaks parent cycles without dropping repeats.
func treeRows(procs []telemetry.Process, needle string) []ProcessRow {
	children := make(map[int32][]telemetry.Process)
	for _, proc := range procs {
		var parent int32
		if proc.ParentPID != nil {
			parent = *proc.ParentPID
		}
		if parent == proc.PID {
			parent = 0
		}
		children[parent] = append(children[parent], proc)
	}
	for _, kids := range children {
		sort.SliceStable(kids, func(i, j int) bool {
			if kids[i].CPUUsage != kids[j].CPUUsage {
				return kids[i].CPUUsage > kids[j].CPUUsage
			}
			return kids[i].PID < kids[j].PID
		})
	}

	var rows []ProcessRow
	onPath := make(map[int32]bool)
	var walk func(parent int32, depth int)
	walk = func(parent int32, depth int) {
		for _, proc := range children[parent] {
			if onPath[proc.PID] {
				continue
			}
			if matches(proc, needle) {
				rows = append(rows, ProcessRow{Process: proc, Depth: depth})
			}
			onPath[proc.PID] = true
			walk(proc.PID, depth+1)
			delete(onPath, proc.PID)
		}
	}
	walk(0, 0)
	walk(1, 0)
	return rows
}
