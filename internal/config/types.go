package config

import "github.com/rileyhilliard/rtop/internal/theme"

const (
	// ConfigDirName is the directory under os.UserConfigDir holding rtop's files.
	ConfigDirName = "rtop"
	// ConfigFileName is the config file name inside ConfigDirName.
	ConfigFileName = "config.toml"
	// EnvPrefix prefixes environment overrides, e.g. RTOP_COLOR_SCHEME.
	EnvPrefix = "RTOP"
)

// AppConfig is the persisted dashboard preferences.
type AppConfig struct {
	ColorScheme theme.Scheme
}

// fileConfig mirrors config.toml. The scheme is kept as text so an unknown
// name degrades to the default instead of failing the whole load.
type fileConfig struct {
	ColorScheme string `toml:"color_scheme" mapstructure:"color_scheme"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *AppConfig {
	return &AppConfig{ColorScheme: theme.Default}
}
