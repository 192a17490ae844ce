package output

// Entry is one message captured by a Recorder.
type Entry struct {
	Level   Level
	Message string
	Fields  []any
}

// Recorder is a Sink that keeps every message in memory.
type Recorder struct {
	Entries []Entry
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Info records msg at info level.
func (r *Recorder) Info(msg string, keyvals ...any) {
	r.record(LevelInfo, msg, keyvals)
}

// Warn records msg at warn level.
func (r *Recorder) Warn(msg string, keyvals ...any) {
	r.record(LevelWarn, msg, keyvals)
}

// Error records msg at error level.
func (r *Recorder) Error(msg string, keyvals ...any) {
	r.record(LevelError, msg, keyvals)
}

func (r *Recorder) record(level Level, msg string, keyvals []any) {
	var fields []any
	if len(keyvals) > 0 {
		fields = append(fields, keyvals...)
	}
	r.Entries = append(r.Entries, Entry{Level: level, Message: msg, Fields: fields})
}

// Last returns the most recent entry, if any.
func (r *Recorder) Last() (Entry, bool) {
	if len(r.Entries) == 0 {
		return Entry{}, false
	}
	return r.Entries[len(r.Entries)-1], true
}

// Messages returns the messages recorded at level, oldest first.
func (r *Recorder) Messages(level Level) []string {
	var out []string
	for _, e := range r.Entries {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

// Count returns the number of entries recorded at level.
func (r *Recorder) Count(level Level) int {
	n := 0
	for _, e := range r.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// Reset drops all recorded entries.
func (r *Recorder) Reset() {
	r.Entries = nil
}
