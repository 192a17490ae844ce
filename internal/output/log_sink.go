package output

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// LogOptions holds configuration for a LogSink.
type LogOptions struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
	ReportCaller    bool
	Prefix          string
	// Fields are attached to every message, e.g. a session id.
	Fields []any
}

// DefaultLogOptions returns the options used for console output.
func DefaultLogOptions() LogOptions {
	return LogOptions{
		Level:           log.InfoLevel,
		Formatter:       log.TextFormatter,
		ReportTimestamp: false,
		ReportCaller:    false,
		Prefix:          "todos",
	}
}

// LogSink implements Sink using charmbracelet/log for leveled,
// human-readable output.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink creates a sink writing to w. A nil w writes to stdout.
func NewLogSink(w io.Writer, opts LogOptions) *LogSink {
	if w == nil {
		w = os.Stdout
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		ReportCaller:    opts.ReportCaller,
		Prefix:          opts.Prefix,
	})
	if len(opts.Fields) > 0 {
		logger = logger.With(opts.Fields...)
	}
	return &LogSink{logger: logger}
}

// NewLogSinkWithLogger wraps an existing logger.
func NewLogSinkWithLogger(logger *log.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Logger returns the underlying logger.
func (s *LogSink) Logger() *log.Logger {
	return s.logger
}

// Info logs msg at info level.
func (s *LogSink) Info(msg string, keyvals ...any) {
	s.logger.Info(msg, keyvals...)
}

// Warn logs msg at warn level.
func (s *LogSink) Warn(msg string, keyvals ...any) {
	s.logger.Warn(msg, keyvals...)
}

// Error logs msg at error level.
func (s *LogSink) Error(msg string, keyvals ...any) {
	s.logger.Error(msg, keyvals...)
}

// ParseLevel parses a level name. Unknown names yield InfoLevel.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter parses a formatter name (text, json, logfmt).
// Unknown names yield TextFormatter.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
