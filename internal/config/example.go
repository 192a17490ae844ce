package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todos configuration file
# Values can be overridden by .env, TODOS_* environment variables, or CLI flags

# Log level: debug, info, warn, error
log_level = "info"

# Log format: text, json, logfmt
log_format = "text"

# Show timestamps and caller location in log lines
log_timestamps = false
log_caller = false

# Prefix shown on every log line
log_prefix = "todos"

# Directory for per-run JSONL logs (supports ~ expansion); empty disables
# log_dir = "~/.todos/logs"

# Stop script runs at the first rejected step
strict = false

[ui]
# Show the key help on start
show_help = false

# Initial list filter: all, pending, done
default_filter = "all"
`
}
