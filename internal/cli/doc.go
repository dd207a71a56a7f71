// Package cli implements the rtop command-line interface.
//
// # Command Structure
//
// The root command runs the dashboard; the subcommands are for scripts
// and troubleshooting:
//
//	rtop                 - Interactive telemetry dashboard
//	rtop snapshot        - Print one snapshot as YAML or JSON
//	rtop sensors         - Report which sensor adapters work on this host
//	rtop version         - Print build information
//	rtop completion      - Generate shell completion scripts
//
// # Dashboard Startup
//
//  1. Refuse to start unless stdout is a terminal (ErrTerminal)
//  2. Open the log file from --log-file or RTOP_LOG_FILE, if any
//  3. Load the config and apply --theme
//  4. Start the collector's sampler goroutine
//  5. Run the Bubble Tea program on the alternate screen
//
// Quitting cancels the sampler's context, which closes the snapshot
// channel.
//
// # Flag Handling
//
// --config, --log-file and --no-color are persistent and apply to every
// subcommand. --interval and --theme belong to the dashboard; snapshot has
// its own --interval and --format.
package cli
