package config

// Source represents where a configuration value came from.
type Source string

const (
	SourceDefault  Source = "default"
	SourceUserFile Source = "user file"
	SourceProjFile Source = "project file"
	SourceDotEnv   Source = ".env"
	SourceEnv      Source = "environment"
	SourceFlag     Source = "flag"
)

// Default values.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultLogPrefix = "todos"
	DefaultFilter    = FilterAll
)

// UI list filters.
const (
	FilterAll     = "all"
	FilterPending = "pending"
	FilterDone    = "done"
)

// Config holds the full configuration for todos.
type Config struct {
	// Logging
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`
	LogPrefix     string `toml:"log_prefix"`

	// LogDir enables per-run JSONL log files when set.
	LogDir string `toml:"log_dir"`

	// Strict stops script runs at the first rejected step.
	Strict bool `toml:"strict"`

	UI UIConfig `toml:"ui"`

	// ConfigFile is the project file that was loaded, if any.
	ConfigFile string `toml:"-"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// UIConfig holds terminal UI settings.
type UIConfig struct {
	ShowHelp      bool   `toml:"show_help"`
	DefaultFilter string `toml:"default_filter"`
}

// WithSources holds configuration along with the source of each field,
// keyed by the field's TOML name (e.g. "log_level", "ui.default_filter").
type WithSources struct {
	Config  *Config
	Sources map[string]Source
}

// fieldNames lists the configurable fields for source tracking.
func fieldNames() []string {
	return []string{
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
		"log_prefix",
		"log_dir",
		"strict",
		"ui.show_help",
		"ui.default_filter",
	}
}

func setDefaults(cfg *Config) {
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogPrefix = DefaultLogPrefix
	cfg.LogTimestamps = false
	cfg.LogCaller = false
	cfg.LogDir = ""
	cfg.Strict = false
	cfg.UI = UIConfig{
		ShowHelp:      false,
		DefaultFilter: DefaultFilter,
	}
}
