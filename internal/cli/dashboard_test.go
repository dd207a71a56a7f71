package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/logger"
	"github.com/rileyhilliard/rtop/internal/theme"
)

func TestDashboardCommand_RequiresTerminal(t *testing.T) {
	orig := stdoutIsTerminal
	stdoutIsTerminal = func() bool { return false }
	t.Cleanup(func() { stdoutIsTerminal = orig })

	err := dashboardCommand(DashboardOptions{Interval: time.Second})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrTerminal))
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("color_scheme = \"SolarizedLight\"\n"), 0o644))

	cfg, got, err := loadConfig(path, logger.Noop())
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Equal(t, theme.SolarizedDark, cfg.ColorScheme)
}

func TestLoadConfig_DefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)

	cfg, got, err := loadConfig("", logger.Noop())
	require.NoError(t, err)
	assert.Equal(t, theme.Default, cfg.ColorScheme)
	assert.Equal(t, "config.toml", filepath.Base(got))
	assert.Equal(t, "rtop", filepath.Base(filepath.Dir(got)))
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("color_scheme = [\n"), 0o644))

	_, _, err := loadConfig(path, logger.Noop())
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestOpenLogger(t *testing.T) {
	log, closeLog, err := openLogger("")
	require.NoError(t, err)
	assert.IsType(t, logger.Noop(), log)
	closeLog()

	path := filepath.Join(t.TempDir(), "rtop.log")
	log, closeLog, err = openLogger(path)
	require.NoError(t, err)
	log.Warn("disk %s missing", "sdb")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "disk sdb missing")
	assert.Contains(t, string(data), "rtop")
}

func TestOpenLogger_BadPath(t *testing.T) {
	_, _, err := openLogger(filepath.Join(t.TempDir(), "missing", "rtop.log"))
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}
