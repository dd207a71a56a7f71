package monitor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRouter_Normal(t *testing.T) {
	r := NewRouter(DefaultKeyMap())

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want Action
	}{
		{"q quits", runeKey("q"), ActionQuit},
		{"esc quits", tea.KeyMsg{Type: tea.KeyEsc}, ActionQuit},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, ActionQuit},
		{"auto update", runeKey("c"), ActionToggleAutoUpdate},
		{"slower", runeKey("+"), ActionIncreaseSpeed},
		{"faster", runeKey("-"), ActionDecreaseSpeed},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, ActionMoveUp},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, ActionMoveDown},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, ActionEnter},
		{"back", runeKey("b"), ActionBack},
		{"theme", runeKey("t"), ActionSwitchTheme},
		{"kill", runeKey("k"), ActionRequestProcessKill},
		{"kill upper", runeKey("K"), ActionRequestProcessKill},
		{"search", runeKey("S"), ActionStartProcessSearch},
		{"sort", runeKey("s"), ActionSwitchProcessSort},
		{"chart", runeKey("n"), ActionSwitchChartType},
		{"tree", runeKey("T"), ActionToggleProcessTree},
		{"interface", runeKey("i"), ActionCycleNetworkInterface},
		{"save", runeKey("w"), ActionSaveConfig},
		{"graphs", runeKey("g"), ActionToggleGraphs},
		{"help", runeKey("?"), ActionToggleHelp},
		{"unbound", runeKey("z"), ActionNone},
		{"tab unbound", tea.KeyMsg{Type: tea.KeyTab}, ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, text := r.Route(tt.msg, ModeNormal)
			assert.Equal(t, tt.want, action, "got %s", action)
			assert.Empty(t, text)
		})
	}
}

func TestRouter_KillDialog(t *testing.T) {
	r := NewRouter(DefaultKeyMap())

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want Action
	}{
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, ActionToggleProcessKillChoice},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, ActionToggleProcessKillChoice},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, ActionToggleProcessKillChoice},
		{"shift+tab", tea.KeyMsg{Type: tea.KeyShiftTab}, ActionToggleProcessKillChoice},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, ActionConfirmProcessKill},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, ActionCancelProcessKill},
		{"q ignored", runeKey("q"), ActionNone},
		{"sort ignored", runeKey("s"), ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, _ := r.Route(tt.msg, ModeKillDialog)
			assert.Equal(t, tt.want, action, "got %s", action)
		})
	}
}

func TestRouter_Search(t *testing.T) {
	r := NewRouter(DefaultKeyMap())

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		want     Action
		wantText string
	}{
		{"esc cancels", tea.KeyMsg{Type: tea.KeyEsc}, ActionCancelProcessSearch, ""},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, ActionConfirmProcessSearch, ""},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, ActionBackspaceProcessSearch, ""},
		{"q is text", runeKey("q"), ActionUpdateProcessSearch, "q"},
		{"pasted text", runeKey("chr"), ActionUpdateProcessSearch, "chr"},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, ActionUpdateProcessSearch, " "},
		{"control runes dropped", runeKey("a\x07b"), ActionUpdateProcessSearch, "ab"},
		{"only control runes", runeKey("\x07"), ActionNone, ""},
		{"alt ignored", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true}, ActionNone, ""},
		{"arrows ignored", tea.KeyMsg{Type: tea.KeyUp}, ActionNone, ""},
		{"ctrl+c ignored", tea.KeyMsg{Type: tea.KeyCtrlC}, ActionNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, text := r.Route(tt.msg, ModeSearch)
			assert.Equal(t, tt.want, action, "got %s", action)
			assert.Equal(t, tt.wantText, text)
		})
	}
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "quit", ActionQuit.String())
	assert.Equal(t, "update-search", ActionUpdateProcessSearch.String())
	assert.Equal(t, "unknown", Action(999).String())

	for a := ActionNone; a <= ActionUpdateProcessSearch; a++ {
		assert.NotEqual(t, "unknown", a.String(), "action %d has no name", int(a))
	}
}
