package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/rtop/internal/collector"
	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/ui"
)

// sensorsCmd reports which adapters work on this host.
var sensorsCmd = &cobra.Command{
	Use:   "sensors",
	Short: "Check which sensors are readable on this machine",
	Long: `Probe every sensor adapter once and report what it found.

Rate-based readings such as RAPL power need two samples and report
"Warmup" on a single pass.

Examples:
  rtop sensors
  sudo rtop sensors   # RAPL and some GPU counters need root

Exits 1 when no sensor could be read.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, closeLog, err := openLogger(resolveLogFile(logFileFlag))
		if err != nil {
			return err
		}
		defer closeLog()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		c := collector.New(ctx, collector.Options{Logger: log})
		defer c.Close()
		return renderProbes(cmd.OutOrStdout(), c.Probe(ctx))
	},
}

func init() {
	rootCmd.AddCommand(sensorsCmd)
}

// renderProbes writes one status line per adapter and a summary. When no
// adapter works it returns an ExitError so the command exits 1 without
// repeating the report.
func renderProbes(w io.Writer, results []collector.ProbeResult) error {
	width := 0
	for _, r := range results {
		width = max(width, len(r.Adapter))
	}

	ui.Heading(w, "Sensors")
	passed := 0
	for _, r := range results {
		if r.OK {
			passed++
		}
		fmt.Fprintln(w, ui.StatusLine(r.OK, r.Adapter, r.Detail, width))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.Summary(passed, len(results)))

	if passed == 0 {
		return errors.NewExitError(1)
	}
	return nil
}
