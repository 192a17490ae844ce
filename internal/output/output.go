// Package output defines the status channel todo operations report through.
package output

// Level is the severity of a reported message.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// String returns the lower-case level name.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Sink receives human-readable status messages. Keyvals are alternating
// key/value pairs attached to the message.
type Sink interface {
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
}

// Discard is a Sink that drops every message.
var Discard Sink = discard{}

type discard struct{}

func (discard) Info(string, ...any)  {}
func (discard) Warn(string, ...any)  {}
func (discard) Error(string, ...any) {}

// Multi returns a Sink that forwards every message to each of sinks in order.
// Nil sinks are skipped.
func Multi(sinks ...Sink) Sink {
	out := make(multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

type multi []Sink

func (m multi) Info(msg string, keyvals ...any) {
	for _, s := range m {
		s.Info(msg, keyvals...)
	}
}

func (m multi) Warn(msg string, keyvals ...any) {
	for _, s := range m {
		s.Warn(msg, keyvals...)
	}
}

func (m multi) Error(msg string, keyvals ...any) {
	for _, s := range m {
		s.Error(msg, keyvals...)
	}
}
