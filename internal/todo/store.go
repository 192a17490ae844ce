package todo

import (
	"fmt"

	"github.com/nibzard/todos-go/internal/dates"
	"github.com/nibzard/todos-go/internal/output"
)

// Store is an ordered collection of records plus the counter that issues ids.
type Store struct {
	records []Record
	next    int
	sink    output.Sink
}

// Option configures a Store.
type Option func(*Store)

// WithSink sets where the store reports status messages.
func WithSink(sink output.Sink) Option {
	return func(s *Store) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// New returns an empty store. Without WithSink, messages are discarded.
func New(opts ...Option) *Store {
	s := &Store{
		next: 1,
		sink: output.Discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Len returns the number of records held.
func (s *Store) Len() int {
	return len(s.records)
}

// NextID returns the id the next accepted Add will assign.
func (s *Store) NextID() int {
	return s.next
}

// indexOf returns the position of the record with id, or -1.
func (s *Store) indexOf(id int) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

// Get returns a copy of the record with id.
func (s *Store) Get(id int) (Record, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Record{}, false
	}
	return s.records[i].clone(), true
}

// All returns copies of every record in store order.
func (s *Store) All() []Record {
	out := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r.clone())
	}
	return out
}

// Add appends a new, incomplete record. due may be nil.
func (s *Store) Add(text string, due *dates.Date) (Record, error) {
	if isBlank(text) {
		s.sink.Error("Todo text cannot be empty.")
		return Record{}, &ValidationError{Field: "text", Err: ErrEmptyText}
	}

	rec := Record{
		ID:   s.next,
		Text: text,
	}
	if due != nil {
		rec.DueDate = dates.Ptr(*due)
	}
	s.records = append(s.records, rec)
	s.next++

	msg := fmt.Sprintf(`Added: "%s"`, text)
	if due != nil {
		msg += dueSuffix(*due)
	}
	s.sink.Info(msg, "id", rec.ID)
	return rec.clone(), nil
}

// Complete marks the record with id as completed.
func (s *Store) Complete(id int) error {
	i := s.indexOf(id)
	if i < 0 {
		return s.notFound(id)
	}
	rec := &s.records[i]
	if rec.Completed {
		s.sink.Warn(fmt.Sprintf("Todo with ID %d is already completed.", id), "id", id)
		return &NoOpWarning{Op: "complete", ID: id}
	}
	rec.Completed = true
	s.sink.Info(fmt.Sprintf(`Completed: "%s"`, rec.Text), "id", id)
	return nil
}

// Remove deletes the record with id, keeping the order of the rest.
func (s *Store) Remove(id int) error {
	i := s.indexOf(id)
	if i < 0 {
		return s.notFound(id)
	}
	s.records = append(s.records[:i], s.records[i+1:]...)
	s.sink.Info(fmt.Sprintf("Removed todo with ID %d", id), "id", id)
	return nil
}

// List reports every record, one line each, and returns the same snapshot.
func (s *Store) List() []Record {
	if len(s.records) == 0 {
		s.sink.Info("No todos available.")
		return []Record{}
	}
	s.sink.Info("Todo List:")
	for _, r := range s.records {
		s.sink.Info(FormatRecord(r))
	}
	return s.All()
}

// Filter returns copies of the records whose completed flag equals
// completed, in store order. It reports nothing.
func (s *Store) Filter(completed bool) []Record {
	out := []Record{}
	for _, r := range s.records {
		if r.Completed == completed {
			out = append(out, r.clone())
		}
	}
	return out
}

// UpdateText replaces the text of the record with id.
func (s *Store) UpdateText(id int, text string) error {
	if isBlank(text) {
		s.sink.Error("New text cannot be empty.", "id", id)
		return &ValidationError{Field: "new text", Err: ErrEmptyText}
	}
	i := s.indexOf(id)
	if i < 0 {
		return s.notFound(id)
	}
	s.records[i].Text = text
	s.sink.Info(fmt.Sprintf(`Updated Todo ID %d to: "%s"`, id, text), "id", id)
	return nil
}

// ClearCompleted removes every completed record and returns how many were
// removed.
func (s *Store) ClearCompleted() (int, error) {
	kept := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		if !r.Completed {
			kept = append(kept, r)
		}
	}
	removed := len(s.records) - len(kept)
	if removed == 0 {
		s.sink.Warn("No completed todos to clear.")
		return 0, &NoOpWarning{Op: "clear completed"}
	}
	s.records = kept
	s.sink.Info("Cleared all completed todos.", "removed", removed)
	return removed, nil
}

func (s *Store) notFound(id int) error {
	s.sink.Error(fmt.Sprintf("Todo with ID %d not found.", id), "id", id)
	return &NotFoundError{ID: id}
}
