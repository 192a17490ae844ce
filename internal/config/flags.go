package config

import "flag"

// flagFields maps flag names to the config field they set.
var flagFields = map[string]string{
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
	"log-prefix":     "log_prefix",
	"log-dir":        "log_dir",
	"strict":         "strict",
}

// parseFlags defines the global flags on fs with the values loaded so far as
// defaults, then parses args.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]Source) error {
	if fs == nil {
		fs = flag.NewFlagSet("todos", flag.ContinueOnError)
	}

	var configFile string
	fs.StringVar(&configFile, "config", cfg.ConfigFile, "Path to a config file (replaces todos.toml lookup)")

	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")
	fs.StringVar(&cfg.LogPrefix, "log-prefix", cfg.LogPrefix, "Prefix for log lines")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Directory for per-run JSONL logs (empty disables)")
	fs.BoolVar(&cfg.Strict, "strict", cfg.Strict, "Stop scripts at the first rejected step")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagFields[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}
	return nil
}
