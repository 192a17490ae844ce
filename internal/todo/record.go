package todo

import (
	"fmt"
	"strings"

	"github.com/nibzard/todos-go/internal/dates"
)

// Record is a single todo item.
type Record struct {
	ID        int         `json:"id"`
	Text      string      `json:"text"`
	Completed bool        `json:"completed"`
	DueDate   *dates.Date `json:"due_date,omitempty"`
}

// HasDueDate reports whether the record carries a due date.
func (r Record) HasDueDate() bool {
	return r.DueDate != nil
}

// clone returns a copy that shares no memory with r.
func (r Record) clone() Record {
	if r.DueDate != nil {
		r.DueDate = dates.Ptr(*r.DueDate)
	}
	return r
}

// FormatRecord renders a record as a list line:
//
//	1: [✓] Learn Go (Due: Mon Mar 10 2025)
func FormatRecord(r Record) string {
	marker := " "
	if r.Completed {
		marker = "✓"
	}
	line := fmt.Sprintf("%d: [%s] %s", r.ID, marker, r.Text)
	if r.DueDate != nil {
		line += dueSuffix(*r.DueDate)
	}
	return line
}

func dueSuffix(d dates.Date) string {
	return " (Due: " + d.Human() + ")"
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
