package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/theme"
)

// DefaultInterval is the sampling period when --interval is not given.
const DefaultInterval = time.Second

// MinInterval is the shortest accepted sampling period.
const MinInterval = 250 * time.Millisecond

// LogFileEnv names the log file when --log-file is not given.
const LogFileEnv = "RTOP_LOG_FILE"

// ParseInterval parses a sampling interval such as "1s" or "500ms". An
// empty flag yields DefaultInterval.
func ParseInterval(flag string) (time.Duration, error) {
	if flag == "" {
		return DefaultInterval, nil
	}

	d, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid interval", flag),
			"Try something like 1s, 2s, or 500ms.")
	}
	if d < MinInterval {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("Interval %s is too short", d),
			fmt.Sprintf("Use at least %s.", MinInterval))
	}
	return d, nil
}

// ParseTheme resolves a --theme value to a canonical scheme. An empty value
// yields ok == false with no error.
func ParseTheme(name string) (theme.Scheme, bool, error) {
	if strings.TrimSpace(name) == "" {
		return theme.Default, false, nil
	}
	s, ok := theme.ParseScheme(name)
	if !ok {
		names := make([]string, 0, len(theme.Cycle()))
		for _, c := range theme.Cycle() {
			names = append(names, strings.ToLower(c.String()))
		}
		return theme.Default, false, errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown theme '%s'", name),
			"Available themes: "+strings.Join(names, ", "))
	}
	return theme.Canonicalize(s), true, nil
}

// resolveLogFile prefers the flag over RTOP_LOG_FILE.
func resolveLogFile(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(LogFileEnv)
}
