package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from all sources. Flags are defined on fs and
// parsed from args; fs.Args() holds the remaining arguments afterwards.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg, err := load(fs, args, nil)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
func LoadWithSources(fs *flag.FlagSet, args []string) (*WithSources, error) {
	sources := make(map[string]Source)
	for _, field := range fieldNames() {
		sources[field] = SourceDefault
	}
	cfg, err := load(fs, args, sources)
	if err != nil {
		return nil, err
	}
	return &WithSources{Config: cfg, Sources: sources}, nil
}

// load is the shared implementation. If sources is non-nil, it records the
// source of every value it sets.
func load(fs *flag.FlagSet, args []string, sources map[string]Source) (*Config, error) {
	cfg := &Config{}

	// 1. Defaults
	setDefaults(cfg)

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	cfg.ProjectRoot = wd

	// 2. User config file
	if path := findUserConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path, sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
	}

	// 3. Project config file, or the one named on the command line
	projectFile := explicitConfigFile(args)
	if projectFile == "" {
		projectFile = findProjectConfigFile(wd)
	} else if _, err := os.Stat(projectFile); err != nil {
		return nil, fmt.Errorf("config file %s: %w", projectFile, err)
	}
	if projectFile != "" {
		if err := loadConfigFile(cfg, projectFile, sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectFile, err)
		}
		cfg.ConfigFile = projectFile
	}

	// 4 and 5. .env file, then the process environment
	dotenv, err := readDotEnv(filepath.Join(wd, ".env"))
	if err != nil {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	loadFromEnv(cfg, newEnvLookup(dotenv), sources)

	// 6. CLI flags
	if err := parseFlags(cfg, fs, args, sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}
	return cfg, nil
}

// loadConfigFile decodes TOML from path over cfg. Keys present in the file
// are attributed to source.
func loadConfigFile(cfg *Config, path string, sources map[string]Source, source Source) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if sources == nil {
		return nil
	}
	for _, key := range md.Keys() {
		name := key.String()
		if _, ok := sources[name]; ok {
			sources[name] = source
		}
	}
	return nil
}

// explicitConfigFile returns the value of a --config flag in args without
// parsing the rest, so the file can be loaded before flags override it.
func explicitConfigFile(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return ""
		}
		name := strings.TrimLeft(arg, "-")
		if name == arg {
			continue
		}
		if v, ok := strings.CutPrefix(name, "config="); ok {
			return v
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// finalizeConfig computes derived values and validates settings.
func finalizeConfig(cfg *Config) error {
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	cfg.UI.DefaultFilter = strings.ToLower(strings.TrimSpace(cfg.UI.DefaultFilter))

	switch cfg.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log_level %q, must be one of: debug, info, warn, error", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log_format %q, must be one of: text, json, logfmt", cfg.LogFormat)
	}
	switch cfg.UI.DefaultFilter {
	case "":
		cfg.UI.DefaultFilter = DefaultFilter
	case FilterAll, FilterPending, FilterDone:
	default:
		return fmt.Errorf("invalid ui.default_filter %q, must be one of: all, pending, done", cfg.UI.DefaultFilter)
	}

	if cfg.LogDir != "" {
		cfg.LogDir = expandPath(cfg.LogDir)
		if !filepath.IsAbs(cfg.LogDir) {
			cfg.LogDir = filepath.Join(cfg.ProjectRoot, cfg.LogDir)
		}
	}
	return nil
}
