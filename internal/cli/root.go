package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/logger"
	"github.com/rileyhilliard/rtop/internal/ui"
)

// Global flags
var (
	intervalFlag string
	themeFlag    string
	configFlag   string
	logFileFlag  string
	noColorFlag  bool
)

// rootCmd runs the dashboard when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "rtop",
	Short: "Terminal dashboard for local system telemetry",
	Long: `rtop samples CPU, GPU, memory, swap, network, disk, process, temperature,
power and battery readings and renders them as an animated dashboard.

Keyboard shortcuts:
  q/esc      Quit
  ↑/↓        Select process
  s          Cycle process sort (CPU, MEM, PID, NAME)
  S          Search processes
  k          Terminate the selected process
  T          Toggle process tree
  i          Cycle network interface
  t          Switch color theme (saved to config)
  w          Save config
  g          Toggle graphs
  ?          Show all shortcuts

Examples:
  rtop
  rtop --interval 500ms
  rtop --theme nord
  rtop --log-file /tmp/rtop.log`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColorFlag {
			ui.DisableColors()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		interval, err := ParseInterval(intervalFlag)
		if err != nil {
			return err
		}
		return dashboardCommand(DashboardOptions{
			Interval:   interval,
			Theme:      themeFlag,
			ConfigPath: configFlag,
			LogFile:    resolveLogFile(logFileFlag),
		})
	},
}

func init() {
	rootCmd.Flags().StringVar(&intervalFlag, "interval", DefaultInterval.String(), "sampling interval (minimum 250ms)")
	rootCmd.Flags().StringVar(&themeFlag, "theme", "", "color scheme, overriding the config (e.g. nord, gruvbox)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default <user config dir>/rtop/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "write logs to this file (or set "+LogFileEnv+")")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
}

// Execute runs the root command and exits with a non-zero code on error.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	if code, ok := errors.GetExitCode(err); ok {
		os.Exit(code)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

// openLogger returns the logger for a command: a logrus file logger when
// path is set, otherwise Noop. The returned close func is never nil.
func openLogger(path string) (logger.Logger, func(), error) {
	if path == "" {
		return logger.Noop(), func() {}, nil
	}
	fl, err := logger.NewFileLogger(path, logger.DebugEnabled())
	if err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot open log file",
			"Check that the directory for "+path+" exists and is writable")
	}
	fl.Info("rtop %s starting at %s", version, time.Now().Format(time.RFC3339))
	return fl, func() { _ = fl.Close() }, nil
}
