package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/rileyhilliard/rtop/internal/collector"
	"github.com/rileyhilliard/rtop/internal/config"
	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/logger"
	"github.com/rileyhilliard/rtop/internal/monitor"
)

// DashboardOptions are the resolved root command flags.
type DashboardOptions struct {
	Interval   time.Duration
	Theme      string
	ConfigPath string
	LogFile    string
}

// stdoutIsTerminal is replaced in tests.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// dashboardCommand starts the sampler and runs the TUI until the user quits.
func dashboardCommand(opts DashboardOptions) error {
	if !stdoutIsTerminal() {
		return errors.New(errors.ErrTerminal,
			"rtop needs an interactive terminal",
			"Run it directly in a terminal, or use 'rtop snapshot' for piped output.")
	}

	log, closeLog, err := openLogger(opts.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, cfgPath, err := loadConfig(opts.ConfigPath, log)
	if err != nil {
		return err
	}
	scheme, override, err := ParseTheme(opts.Theme)
	if err != nil {
		return err
	}
	if override {
		cfg.ColorScheme = scheme
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := collector.New(ctx, collector.Options{Logger: log})
	snapshots := collector.NewSampler(c, opts.Interval).Start(ctx)
	defer func() {
		// NVML must outlive the sampler's last Collect.
		cancel()
		for range snapshots {
		}
		c.Close()
	}()
	log.Info("sampling every %s, theme %s", opts.Interval, cfg.ColorScheme)

	model := monitor.NewModel(monitor.Options{
		Snapshots:      snapshots,
		Cancel:         cancel,
		Config:         cfg,
		ConfigPath:     cfgPath,
		Logger:         log,
		UpdateInterval: int(opts.Interval / time.Millisecond),
	})

	defer func() {
		if r := recover(); r != nil {
			termenv.NewOutput(os.Stdout).ShowCursor()
			log.Error("panic: %v", r)
			panic(fmt.Sprintf("rtop: %v", r))
		}
	}()

	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrTerminal,
			"The dashboard stopped unexpectedly",
			"Try a different terminal emulator, or pass --log-file to capture details.")
	}
	log.Info("quit")
	return nil
}

// loadConfig resolves the config path and loads it. When the default path
// cannot be determined the defaults are used and saving falls back to the
// model's own lookup.
func loadConfig(path string, log logger.Logger) (*config.AppConfig, string, error) {
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			log.Warn("%v", err)
			return config.DefaultConfig(), "", nil
		}
		path = p
	}
	cfg, err := config.Load(path, log)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}
