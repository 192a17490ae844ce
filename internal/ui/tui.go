// Package ui provides the interactive terminal interface over a todo store.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/todos-go/internal/output"
	"github.com/nibzard/todos-go/internal/todo"
)

// Filter selects which records the list shows.
type Filter string

const (
	FilterAll     Filter = "all"
	FilterPending Filter = "pending"
	FilterDone    Filter = "done"
)

// next cycles all -> pending -> done -> all.
func (f Filter) next() Filter {
	switch f {
	case FilterAll:
		return FilterPending
	case FilterPending:
		return FilterDone
	default:
		return FilterAll
	}
}

// ParseFilter maps a config value to a Filter. Unknown values yield FilterAll.
func ParseFilter(s string) Filter {
	switch Filter(strings.ToLower(strings.TrimSpace(s))) {
	case FilterPending:
		return FilterPending
	case FilterDone:
		return FilterDone
	default:
		return FilterAll
	}
}

// Options configures the TUI.
type Options struct {
	ShowHelp bool
	Filter   Filter
}

type mode int

const (
	modeList mode = iota
	modeAdd
	modeRename
)

// Model is the bubbletea model. The store must report to status so the
// model can show the outcome of each action.
type Model struct {
	store    *todo.Store
	status   *output.Recorder
	filter   Filter
	cursor   int
	mode     mode
	renameID int
	input    textinput.Model
	showHelp bool
	// note is a local message that is not a store outcome, e.g. a bad date.
	note string
}

// NewModel creates a model over store. status must be (part of) the store's sink.
func NewModel(store *todo.Store, status *output.Recorder, opts Options) *Model {
	ti := textinput.New()
	ti.Placeholder = "Todo text (optional @YYYY-MM-DD due date)"
	ti.CharLimit = 256
	ti.Width = 50

	filter := opts.Filter
	if filter == "" {
		filter = FilterAll
	}
	return &Model{
		store:    store,
		status:   status,
		filter:   filter,
		input:    ti,
		showHelp: opts.ShowHelp,
	}
}

// Run starts the TUI and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, store *todo.Store, status *output.Recorder, opts Options) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	program := tea.NewProgram(NewModel(store, status, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode != modeList {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	case tea.WindowSizeMsg:
		if msg.Width > 20 {
			m.input.Width = msg.Width - 10
		}
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.note = ""
	visible := m.visible()

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "j", "down":
		m.cursor = clampCursor(m.cursor+1, len(visible))
	case "k", "up":
		m.cursor = clampCursor(m.cursor-1, len(visible))
	case "?", "h":
		m.showHelp = !m.showHelp
	case "f":
		m.filter = m.filter.next()
		m.cursor = clampCursor(m.cursor, len(m.visible()))
	case "a":
		m.mode = modeAdd
		m.input.SetValue("")
		return m, m.input.Focus()
	case "e":
		if len(visible) == 0 {
			return m, nil
		}
		rec := visible[m.cursor]
		m.mode = modeRename
		m.renameID = rec.ID
		m.input.SetValue(rec.Text)
		m.input.CursorEnd()
		return m, m.input.Focus()
	case " ", "space", "c":
		if len(visible) == 0 {
			return m, nil
		}
		m.store.Complete(visible[m.cursor].ID)
		m.cursor = clampCursor(m.cursor, len(m.visible()))
	case "d":
		if len(visible) == 0 {
			return m, nil
		}
		m.store.Remove(visible[m.cursor].ID)
		m.cursor = clampCursor(m.cursor, len(m.visible()))
	case "x":
		m.store.ClearCompleted()
		m.cursor = clampCursor(m.cursor, len(m.visible()))
	}
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.leaveInput()
		m.note = "Cancelled"
		return m, nil
	case "enter":
		value := m.input.Value()
		if m.mode == modeAdd {
			text, due, err := splitDue(value)
			if err != nil {
				m.note = err.Error()
				return m, nil
			}
			if _, err := m.store.Add(text, due); err != nil {
				// Keep the input open so the user can fix it.
				return m, nil
			}
			m.leaveInput()
			m.cursor = clampCursor(len(m.visible())-1, len(m.visible()))
			return m, nil
		}
		if err := m.store.UpdateText(m.renameID, value); err != nil && !isNotFound(err) {
			return m, nil
		}
		m.leaveInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) leaveInput() {
	m.mode = modeList
	m.renameID = 0
	m.input.SetValue("")
	m.input.Blur()
}

// visible returns the records the current filter shows.
func (m *Model) visible() []todo.Record {
	switch m.filter {
	case FilterPending:
		return m.store.Filter(false)
	case FilterDone:
		return m.store.Filter(true)
	default:
		return m.store.All()
	}
}

func clampCursor(cursor, n int) int {
	if n <= 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
