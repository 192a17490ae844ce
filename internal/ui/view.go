package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/todos-go/internal/output"
	"github.com/nibzard/todos-go/internal/todo"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	doneStyle    = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	dueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	promptStyle  = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().PaddingLeft(1)
)

func (m *Model) View() string {
	var b strings.Builder

	pending := len(m.store.Filter(false))
	b.WriteString(titleStyle.Render("todos"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d total, %d pending, filter: %s", m.store.Len(), pending, m.filter)))
	b.WriteString("\n\n")

	m.writeList(&b)
	b.WriteString("\n")

	switch m.mode {
	case modeAdd:
		b.WriteString(promptStyle.Render("Add: "))
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case modeRename:
		b.WriteString(promptStyle.Render(fmt.Sprintf("Rename %d: ", m.renameID)))
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	m.writeStatus(&b)
	if m.showHelp {
		writeHelp(&b)
	} else {
		b.WriteString(dimStyle.Render("? help  q quit"))
		b.WriteString("\n")
	}
	return sectionStyle.Render(b.String())
}

func (m *Model) writeList(b *strings.Builder) {
	visible := m.visible()
	if len(visible) == 0 {
		if m.store.Len() == 0 {
			b.WriteString(dimStyle.Render("No todos available."))
		} else {
			b.WriteString(dimStyle.Render(fmt.Sprintf("No %s todos.", m.filter)))
		}
		b.WriteString("\n")
		return
	}
	for i, rec := range visible {
		pointer := "  "
		if i == m.cursor {
			pointer = cursorStyle.Render("> ")
		}
		b.WriteString(pointer)
		b.WriteString(renderRecord(rec))
		b.WriteString("\n")
	}
}

func renderRecord(rec todo.Record) string {
	mark := "[ ]"
	text := rec.Text
	if rec.Completed {
		mark = "[✓]"
		text = doneStyle.Render(text)
	}
	line := fmt.Sprintf("%d: %s %s", rec.ID, mark, text)
	if rec.HasDueDate() {
		line += " " + dueStyle.Render("(Due: "+rec.DueDate.Human()+")")
	}
	return line
}

func (m *Model) writeStatus(b *strings.Builder) {
	if m.note != "" {
		b.WriteString(warnStyle.Render(m.note))
		b.WriteString("\n")
		return
	}
	if m.status == nil {
		return
	}
	entry, ok := m.status.Last()
	if !ok {
		return
	}
	style := infoStyle
	switch entry.Level {
	case output.LevelWarn:
		style = warnStyle
	case output.LevelError:
		style = errorStyle
	}
	b.WriteString(style.Render(entry.Message))
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString(dimStyle.Render("j/k move  a add  e rename  space/c complete  d remove"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("x clear completed  f filter  ? help  q quit"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("add \"text @YYYY-MM-DD\" to set a due date, enter saves, esc cancels"))
	b.WriteString("\n")
}
