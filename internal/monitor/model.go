package monitor

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/rtop/internal/collector"
	"github.com/rileyhilliard/rtop/internal/config"
	"github.com/rileyhilliard/rtop/internal/logger"
	"github.com/rileyhilliard/rtop/internal/telemetry"
	"github.com/rileyhilliard/rtop/internal/theme"
)

// frameInterval is the redraw cadence. Samples arrive far less often; the
// frames in between are interpolated.
const frameInterval = 16 * time.Millisecond

// Status messages for config persistence.
const (
	statusConfigSaved      = "Config saved"
	statusConfigSaveFailed = "Failed to save config"
)

// Options configures a dashboard Model.
type Options struct {
	// Snapshots is the sampler's output. The model never blocks on it.
	Snapshots <-chan telemetry.Snapshot
	// Cancel stops the sampler. It is called on quit.
	Cancel context.CancelFunc

	Config     *config.AppConfig
	ConfigPath string
	Runner     collector.Runner
	Logger     logger.Logger
	Now        func() time.Time

	// UpdateInterval is the sampler cadence in milliseconds, shown in the UI.
	UpdateInterval int
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	snapshots <-chan telemetry.Snapshot
	cancel    context.CancelFunc

	cfg     *config.AppConfig
	cfgPath string
	log     logger.Logger
	killer  killer
	now     func() time.Time

	router Router
	ui     UIState
	theme  theme.Theme
	interp *Interpolator
	frame  telemetry.Snapshot
	procs  ProcessPanel

	lastFrame time.Time
	width     int
	height    int
	showHelp  bool
	quitting  bool
}

// frameMsg drives interpolation and draining of the snapshot channel.
type frameMsg time.Time

// killResultMsg carries the outcome of a confirmed termination.
type killResultMsg struct {
	status string
}

// NewModel creates the dashboard model. The color scheme comes from
// opts.Config.
func NewModel(opts Options) Model {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Runner == nil {
		opts.Runner = collector.ExecRunner{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ui := DefaultUIState()
	ui.ColorScheme = theme.Canonicalize(opts.Config.ColorScheme)
	if opts.UpdateInterval > 0 {
		ui.UpdateInterval = clampInterval(opts.UpdateInterval)
	}

	initial := telemetry.NewSnapshot()
	ui.Overlay(&initial)

	return Model{
		snapshots: opts.Snapshots,
		cancel:    opts.Cancel,
		cfg:       opts.Config,
		cfgPath:   opts.ConfigPath,
		log:       opts.Logger,
		killer:    killer{runner: opts.Runner, log: opts.Logger},
		now:       opts.Now,
		router:    NewRouter(DefaultKeyMap()),
		ui:        ui,
		theme:     theme.New(ui.ColorScheme),
		interp:    NewInterpolator(initial),
		frame:     initial,
		lastFrame: opts.Now(),
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return frameCmd()
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action, text := m.router.Route(msg, m.procs.Mode())
		cmd := m.apply(action, text)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case frameMsg:
		if m.quitting {
			return m, nil
		}
		m.advance()
		return m, frameCmd()

	case killResultMsg:
		m.procs.Status = msg.status
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderDashboard()
}

// advance drains pending samples without blocking, keeps the newest as the
// interpolation target and produces the next frame.
func (m *Model) advance() {
	if latest, ok := drain(m.snapshots); ok {
		m.ui.Overlay(&latest)
		m.interp.Push(latest)
	}

	now := m.now()
	dt := now.Sub(m.lastFrame)
	m.lastFrame = now
	m.frame = m.interp.Advance(dt)
	m.procs.Clamp(len(m.rows()))
}

// drain returns the newest snapshot waiting on ch. A closed or nil channel
// yields nothing.
func drain(ch <-chan telemetry.Snapshot) (telemetry.Snapshot, bool) {
	var latest telemetry.Snapshot
	got := false
	for {
		select {
		case s, ok := <-ch:
			if !ok {
				return latest, got
			}
			latest, got = s, true
		default:
			return latest, got
		}
	}
}

// rows returns the process rows of the current frame.
func (m Model) rows() []ProcessRow {
	return m.procs.Rows(m.frame.Processes, m.frame.ProcessSort)
}

// apply runs the effect of one action.
func (m *Model) apply(action Action, text string) tea.Cmd {
	if action == ActionNone {
		return nil
	}
	m.log.Debug("action %s", action)

	var cmd tea.Cmd
	switch action {
	case ActionQuit:
		m.quitting = true
		if m.cancel != nil {
			m.cancel()
		}
		return tea.Quit

	case ActionToggleAutoUpdate:
		m.ui.AutoUpdate = !m.ui.AutoUpdate
	case ActionIncreaseSpeed:
		m.ui.UpdateInterval = clampInterval(m.ui.UpdateInterval + updateIntervalStep)
	case ActionDecreaseSpeed:
		m.ui.UpdateInterval = clampInterval(m.ui.UpdateInterval - updateIntervalStep)
	case ActionSwitchProcessSort:
		m.ui.ProcessSort = m.ui.ProcessSort.Next()
	case ActionSwitchChartType:
		m.ui.ChartType = m.ui.ChartType.Next()
	case ActionCycleNetworkInterface:
		m.ui.SelectedInterface = NextInterface(m.frame.InterfaceNames(), m.frame.SelectedInterface)
	case ActionToggleGraphs:
		m.ui.ShowGraphs = !m.ui.ShowGraphs
	case ActionToggleHelp:
		m.showHelp = !m.showHelp

	case ActionSwitchTheme:
		m.ui.ColorScheme = m.ui.ColorScheme.Next()
		m.theme = theme.New(m.ui.ColorScheme)
		if err := m.saveConfig(); err != nil {
			m.procs.Status = statusConfigSaveFailed
		}
	case ActionSaveConfig:
		if err := m.saveConfig(); err != nil {
			m.procs.Status = statusConfigSaveFailed
		} else {
			m.procs.Status = statusConfigSaved
		}

	case ActionMoveUp:
		m.procs.MoveUp()
	case ActionMoveDown:
		m.procs.MoveDown(len(m.rows()))
	case ActionToggleProcessTree:
		m.procs.ToggleTree()

	case ActionStartProcessSearch:
		m.procs.StartSearch()
	case ActionUpdateProcessSearch:
		m.procs.TypeSearch(text)
	case ActionBackspaceProcessSearch:
		m.procs.BackspaceSearch()
	case ActionConfirmProcessSearch:
		m.procs.ConfirmSearch()
	case ActionCancelProcessSearch:
		m.procs.CancelSearch()

	case ActionRequestProcessKill:
		m.procs.RequestKill(m.rows())
	case ActionToggleProcessKillChoice:
		m.procs.ToggleKillChoice()
	case ActionConfirmProcessKill:
		if target, ok := m.procs.ConfirmKill(); ok {
			cmd = m.killCmd(target)
		}
	case ActionCancelProcessKill:
		m.procs.CancelKill()

	case ActionEnter, ActionBack:
	}

	m.interp.Overlay(m.ui)
	m.frame = m.interp.Current()
	m.procs.Clamp(len(m.rows()))
	return cmd
}

func (m Model) killCmd(target KillDialog) tea.Cmd {
	k := m.killer
	return func() tea.Msg {
		return killResultMsg{status: k.kill(context.Background(), target.PID, target.Name)}
	}
}

// saveConfig persists the active color scheme.
func (m *Model) saveConfig() error {
	path := m.cfgPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			m.log.Warn("%v", err)
			return err
		}
		path = p
	}
	m.cfg.ColorScheme = m.ui.ColorScheme
	if err := config.Save(path, m.cfg); err != nil {
		m.log.Warn("%v", err)
		return err
	}
	m.log.Info("saved config to %s", path)
	return nil
}

func clampInterval(ms int) int {
	return min(max(ms, minUpdateInterval), maxUpdateInterval)
}

// Frame returns the snapshot currently on screen.
func (m Model) Frame() telemetry.Snapshot {
	return m.frame
}

// UI returns the user's current view choices.
func (m Model) UI() UIState {
	return m.ui
}

// Processes returns the process panel state.
func (m Model) Processes() ProcessPanel {
	return m.procs
}

// Theme returns the active theme.
func (m Model) Theme() theme.Theme {
	return m.theme
}

// HelpVisible reports whether the help overlay is shown.
func (m Model) HelpVisible() bool {
	return m.showHelp
}
