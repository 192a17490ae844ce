package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// envLookup resolves a variable from the process environment first and the
// .env file second.
type envLookup struct {
	dotenv map[string]string
}

func newEnvLookup(dotenv map[string]string) envLookup {
	return envLookup{dotenv: dotenv}
}

// get returns the value of key and where it came from.
func (e envLookup) get(key string) (string, Source, bool) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v, SourceEnv, true
	}
	if v, ok := e.dotenv[key]; ok && v != "" {
		return v, SourceDotEnv, true
	}
	return "", "", false
}

// readDotEnv reads a .env file. A missing file yields an empty map.
func readDotEnv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	return values, nil
}

// loadFromEnv overrides config from TODOS_* variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, env envLookup, sources map[string]Source) {
	str := func(key, field string, target *string) {
		if v, src, ok := env.get(key); ok {
			*target = v
			if sources != nil {
				sources[field] = src
			}
		}
	}
	boolean := func(key, field string, target *bool) {
		if v, src, ok := env.get(key); ok {
			*target = boolFromString(v)
			if sources != nil {
				sources[field] = src
			}
		}
	}

	str("TODOS_LOG_LEVEL", "log_level", &cfg.LogLevel)
	str("TODOS_LOG_FORMAT", "log_format", &cfg.LogFormat)
	boolean("TODOS_LOG_TIMESTAMPS", "log_timestamps", &cfg.LogTimestamps)
	boolean("TODOS_LOG_CALLER", "log_caller", &cfg.LogCaller)
	str("TODOS_LOG_PREFIX", "log_prefix", &cfg.LogPrefix)
	str("TODOS_LOG_DIR", "log_dir", &cfg.LogDir)
	boolean("TODOS_STRICT", "strict", &cfg.Strict)
	boolean("TODOS_UI_SHOW_HELP", "ui.show_help", &cfg.UI.ShowHelp)
	str("TODOS_UI_DEFAULT_FILTER", "ui.default_filter", &cfg.UI.DefaultFilter)
}

func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s == "yes" || s == "on"
}
