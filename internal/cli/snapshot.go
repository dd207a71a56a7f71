package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/rtop/internal/collector"
	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/telemetry"
)

// Snapshot output formats
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

var (
	snapshotFormatFlag   string
	snapshotIntervalFlag string
)

// snapshotCmd prints one snapshot for scripts and bug reports.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print one telemetry snapshot as YAML or JSON",
	Long: `Collect two samples one interval apart, so that rates and deltas are
populated, and print the second one.

Examples:
  rtop snapshot
  rtop snapshot --format json | jq .gpus
  rtop snapshot --interval 2s`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		interval, err := ParseInterval(snapshotIntervalFlag)
		if err != nil {
			return err
		}
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
		return snapshotCommand(ctx, cmd.OutOrStdout(), c.Collect, interval, snapshotFormatFlag)
	},
}

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotFormatFlag, "format", "f", FormatYAML, "output format (yaml or json)")
	snapshotCmd.Flags().StringVar(&snapshotIntervalFlag, "interval", DefaultInterval.String(), "delay between the two samples")
	rootCmd.AddCommand(snapshotCmd)
}

// snapshotCommand collects twice, interval apart, and writes the second
// snapshot to w.
func snapshotCommand(ctx context.Context, w io.Writer, collect func(context.Context) telemetry.Snapshot, interval time.Duration, format string) error {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != FormatYAML && format != FormatJSON {
		return errors.New(errors.ErrExport,
			fmt.Sprintf("Unknown format '%s'", format),
			"Use --format yaml or --format json.")
	}

	collect(ctx)
	select {
	case <-time.After(interval):
	case <-ctx.Done():
		return ctx.Err()
	}
	return writeSnapshot(w, collect(ctx), format)
}

// writeSnapshot encodes s in format.
func writeSnapshot(w io.Writer, s telemetry.Snapshot, format string) error {
	var err error
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(s)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(s)
		if err == nil {
			err = enc.Close()
		}
	}
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrExport,
			"Failed to write snapshot",
			"Check that the output is writable")
	}
	return nil
}
