package monitor

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Action is a user intent decoded from a key press.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionToggleAutoUpdate
	ActionIncreaseSpeed
	ActionDecreaseSpeed
	ActionMoveUp
	ActionMoveDown
	ActionEnter
	ActionBack
	ActionSwitchTheme
	ActionRequestProcessKill
	ActionStartProcessSearch
	ActionSwitchProcessSort
	ActionSwitchChartType
	ActionToggleProcessTree
	ActionCycleNetworkInterface
	ActionSaveConfig
	ActionToggleGraphs
	ActionToggleHelp

	ActionToggleProcessKillChoice
	ActionConfirmProcessKill
	ActionCancelProcessKill

	ActionCancelProcessSearch
	ActionConfirmProcessSearch
	ActionBackspaceProcessSearch
	ActionUpdateProcessSearch
)

var actionNames = map[Action]string{
	ActionNone:                    "none",
	ActionQuit:                    "quit",
	ActionToggleAutoUpdate:        "toggle-auto-update",
	ActionIncreaseSpeed:           "increase-speed",
	ActionDecreaseSpeed:           "decrease-speed",
	ActionMoveUp:                  "move-up",
	ActionMoveDown:                "move-down",
	ActionEnter:                   "enter",
	ActionBack:                    "back",
	ActionSwitchTheme:             "switch-theme",
	ActionRequestProcessKill:      "request-kill",
	ActionStartProcessSearch:      "start-search",
	ActionSwitchProcessSort:       "switch-sort",
	ActionSwitchChartType:         "switch-chart",
	ActionToggleProcessTree:       "toggle-tree",
	ActionCycleNetworkInterface:   "cycle-interface",
	ActionSaveConfig:              "save-config",
	ActionToggleGraphs:            "toggle-graphs",
	ActionToggleHelp:              "toggle-help",
	ActionToggleProcessKillChoice: "toggle-kill-choice",
	ActionConfirmProcessKill:      "confirm-kill",
	ActionCancelProcessKill:       "cancel-kill",
	ActionCancelProcessSearch:     "cancel-search",
	ActionConfirmProcessSearch:    "confirm-search",
	ActionBackspaceProcessSearch:  "backspace-search",
	ActionUpdateProcessSearch:     "update-search",
}

// String returns a stable name used in logs.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// InputMode selects which key table is active.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeSearch
	ModeKillDialog
)

// KeyMap defines all key bindings of the dashboard.
type KeyMap struct {
	Quit             key.Binding
	ToggleAutoUpdate key.Binding
	IncreaseSpeed    key.Binding
	DecreaseSpeed    key.Binding
	Up               key.Binding
	Down             key.Binding
	Enter            key.Binding
	Back             key.Binding
	Theme            key.Binding
	Kill             key.Binding
	Search           key.Binding
	Sort             key.Binding
	Chart            key.Binding
	Tree             key.Binding
	Interface        key.Binding
	Save             key.Binding
	Graphs           key.Binding
	Help             key.Binding

	DialogToggle  key.Binding
	DialogConfirm key.Binding
	DialogCancel  key.Binding

	SearchCancel    key.Binding
	SearchConfirm   key.Binding
	SearchBackspace key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:             key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
		ToggleAutoUpdate: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "toggle auto update")),
		IncreaseSpeed:    key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "slower updates")),
		DecreaseSpeed:    key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "faster updates")),
		Up:               key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "select previous process")),
		Down:             key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "select next process")),
		Enter:            key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "enter")),
		Back:             key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "back")),
		Theme:            key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Kill:             key.NewBinding(key.WithKeys("k", "K"), key.WithHelp("k", "kill")),
		Search:           key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "search")),
		Sort:             key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Chart:            key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "chart type")),
		Tree:             key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "tree")),
		Interface:        key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "interface")),
		Save:             key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "save")),
		Graphs:           key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "toggle graphs")),
		Help:             key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),

		DialogToggle:  key.NewBinding(key.WithKeys("left", "right", "tab", "shift+tab"), key.WithHelp("←/→", "choose")),
		DialogConfirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		DialogCancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),

		SearchCancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		SearchConfirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		SearchBackspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "delete")),
	}
}

// Router decodes key presses into actions with modal precedence: the kill
// dialog first, then search, then the normal bindings.
type Router struct {
	keys KeyMap
}

// NewRouter creates a router over keys.
func NewRouter(keys KeyMap) Router {
	return Router{keys: keys}
}

// Keys returns the router's bindings.
func (r Router) Keys() KeyMap {
	return r.keys
}

// Route maps msg to an action for the given mode. For
// ActionUpdateProcessSearch the typed text is returned as well. Keys with
// no meaning in the mode yield ActionNone.
func (r Router) Route(msg tea.KeyMsg, mode InputMode) (Action, string) {
	switch mode {
	case ModeKillDialog:
		return r.routeDialog(msg), ""
	case ModeSearch:
		return r.routeSearch(msg)
	default:
		return r.routeNormal(msg), ""
	}
}

func (r Router) routeDialog(msg tea.KeyMsg) Action {
	switch {
	case key.Matches(msg, r.keys.DialogToggle):
		return ActionToggleProcessKillChoice
	case key.Matches(msg, r.keys.DialogConfirm):
		return ActionConfirmProcessKill
	case key.Matches(msg, r.keys.DialogCancel):
		return ActionCancelProcessKill
	}
	return ActionNone
}

func (r Router) routeSearch(msg tea.KeyMsg) (Action, string) {
	switch {
	case key.Matches(msg, r.keys.SearchCancel):
		return ActionCancelProcessSearch, ""
	case key.Matches(msg, r.keys.SearchConfirm):
		return ActionConfirmProcessSearch, ""
	case key.Matches(msg, r.keys.SearchBackspace):
		return ActionBackspaceProcessSearch, ""
	}

	if msg.Alt || (msg.Type != tea.KeyRunes && msg.Type != tea.KeySpace) {
		return ActionNone, ""
	}
	text := printable(msg.Runes)
	if text == "" {
		return ActionNone, ""
	}
	return ActionUpdateProcessSearch, text
}

func (r Router) routeNormal(msg tea.KeyMsg) Action {
	bindings := []struct {
		binding key.Binding
		action  Action
	}{
		{r.keys.Quit, ActionQuit},
		{r.keys.ToggleAutoUpdate, ActionToggleAutoUpdate},
		{r.keys.IncreaseSpeed, ActionIncreaseSpeed},
		{r.keys.DecreaseSpeed, ActionDecreaseSpeed},
		{r.keys.Up, ActionMoveUp},
		{r.keys.Down, ActionMoveDown},
		{r.keys.Enter, ActionEnter},
		{r.keys.Back, ActionBack},
		{r.keys.Theme, ActionSwitchTheme},
		{r.keys.Kill, ActionRequestProcessKill},
		{r.keys.Search, ActionStartProcessSearch},
		{r.keys.Sort, ActionSwitchProcessSort},
		{r.keys.Chart, ActionSwitchChartType},
		{r.keys.Tree, ActionToggleProcessTree},
		{r.keys.Interface, ActionCycleNetworkInterface},
		{r.keys.Save, ActionSaveConfig},
		{r.keys.Graphs, ActionToggleGraphs},
		{r.keys.Help, ActionToggleHelp},
	}
	for _, b := range bindings {
		if key.Matches(msg, b.binding) {
			return b.action
		}
	}
	return ActionNone
}

// printable keeps the runes a search box accepts.
func printable(runes []rune) string {
	out := make([]rune, 0, len(runes))
	for _, r := range runes {
		if unicode.IsPrint(r) {
			out = append(out, r)
		}
	}
	return string(out)
}
