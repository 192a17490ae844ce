package script

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/nibzard/todos-go/internal/dates"
	"github.com/nibzard/todos-go/internal/output"
	"github.com/nibzard/todos-go/internal/todo"
)

//go:embed demo.json
var demoJSON []byte

// Demo returns the built-in example scenario.
func Demo() *Script {
	s, err := Parse(demoJSON, FormatJSON)
	if err != nil {
		panic(fmt.Sprintf("embedded demo script is invalid: %v", err))
	}
	return s
}

// Options controls a run.
type Options struct {
	// Sink receives the runner's own output (filter results). Nil discards.
	Sink output.Sink
	// Strict stops at the first rejected step and returns its error.
	Strict bool
}

// StepResult is the outcome of one step. Err is nil on success, a no-op
// warning for redundant steps, or the rejection error.
type StepResult struct {
	Index int
	Step  Step
	Err   error
}

// Report summarizes a run.
type Report struct {
	Steps    int
	Rejected int
	Warnings int
	Results  []StepResult
}

// OK reports whether no step was rejected.
func (r *Report) OK() bool {
	return r.Rejected == 0
}

// Run applies every step of s to store in order. The store reports each
// step through its own sink. Rejected steps are counted and skipped unless
// opts.Strict is set. Run stops early when ctx is cancelled.
func Run(ctx context.Context, store *todo.Store, s *Script, opts Options) (*Report, error) {
	sink := opts.Sink
	if sink == nil {
		sink = output.Discard
	}

	report := &Report{}
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		err := apply(store, step, sink)
		report.Steps++
		report.Results = append(report.Results, StepResult{Index: i, Step: step, Err: err})

		switch {
		case err == nil:
		case todo.IsWarning(err):
			report.Warnings++
		default:
			report.Rejected++
			if opts.Strict {
				return report, fmt.Errorf("step %d (%s): %w", i+1, step, err)
			}
		}
	}
	return report, nil
}

func apply(store *todo.Store, step Step, sink output.Sink) error {
	switch step.Op {
	case OpAdd:
		var due *dates.Date
		if step.Due != "" {
			d, err := dates.Parse(step.Due)
			if err != nil {
				sink.Error(err.Error(), "step", step.String())
				return err
			}
			due = &d
		}
		_, err := store.Add(step.Text, due)
		return err
	case OpComplete:
		return store.Complete(step.ID)
	case OpRemove:
		return store.Remove(step.ID)
	case OpList:
		store.List()
		return nil
	case OpFilter:
		completed := step.Completed != nil && *step.Completed
		matches := store.Filter(completed)
		label := "pending"
		if completed {
			label = "completed"
		}
		if len(matches) == 0 {
			sink.Info(fmt.Sprintf("No %s todos.", label))
			return nil
		}
		sink.Info(fmt.Sprintf("Todos (%s):", label), "count", len(matches))
		for _, r := range matches {
			sink.Info(todo.FormatRecord(r))
		}
		return nil
	case OpRename:
		return store.UpdateText(step.ID, step.Text)
	case OpClear:
		_, err := store.ClearCompleted()
		return err
	default:
		err := fmt.Errorf("unknown op %q", step.Op)
		sink.Error(err.Error())
		return err
	}
}
