package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/logger"
	"github.com/rileyhilliard/rtop/internal/theme"
)

// DefaultPath returns <UserConfigDir>/rtop/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine the user config directory",
			"Set $XDG_CONFIG_HOME or pass --config")
	}
	return filepath.Join(dir, ConfigDirName, ConfigFileName), nil
}

// Load reads the config at path. A missing file yields defaults; an unknown
// color scheme yields the default scheme and a warning on log. Legacy
// schemes are canonicalized.
func Load(path string, log logger.Logger) (*AppConfig, error) {
	if log == nil {
		log = logger.Noop()
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetDefault("color_scheme", theme.Default.String())
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check that "+path+" is valid TOML, or delete it to reset")
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot access config file: "+path,
			"Check file permissions")
	}

	var raw fileConfig
	if err := v.Unmarshal(&raw); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the TOML syntax in "+path)
	}

	cfg := DefaultConfig()
	scheme, ok := theme.ParseScheme(raw.ColorScheme)
	if !ok {
		log.Warn("unknown color scheme %q in %s, using %s", raw.ColorScheme, path, theme.Default)
		return cfg, nil
	}
	cfg.ColorScheme = theme.Canonicalize(scheme)
	return cfg, nil
}
