// Package todo holds an ordered, in-memory list of todo records.
//
// A Store owns its records and the counter that mints their ids:
//
//	store := todo.New(todo.WithSink(sink))
//	rec, err := store.Add("Learn Go", dates.Ptr(dates.MustNew(2025, time.March, 10)))
//	store.Complete(rec.ID)
//	store.List()
//
// # Identifiers
//
// Ids start at 1 and increase by one for every accepted Add. An id is never
// reused, even after its record is removed.
//
// # Reporting
//
// Every mutating operation reports its outcome through the store's
// output.Sink (info on success, warn on a no-op, error on a rejected call)
// and also returns a typed error:
//
//   - *ValidationError: empty or whitespace-only text (matches ErrEmptyText)
//   - *NotFoundError: no record with the given id (matches ErrNotFound)
//   - *NoOpWarning: the call would change nothing (matches ErrNoOp)
//
// A rejected call never mutates the store.
//
// # Copies
//
// Records returned by List, Filter, All and Get are copies. Changing them
// does not change the store.
//
// A Store is not safe for concurrent use.
package todo
