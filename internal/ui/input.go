package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nibzard/todos-go/internal/dates"
	"github.com/nibzard/todos-go/internal/todo"
)

// splitDue separates a trailing "@YYYY-MM-DD" token from the todo text.
// Input without such a token is returned unchanged with a nil date.
func splitDue(value string) (string, *dates.Date, error) {
	trimmed := strings.TrimRight(value, " \t")
	i := strings.LastIndex(trimmed, "@")
	if i < 0 {
		return value, nil, nil
	}
	token := trimmed[i+1:]
	if token == "" || strings.ContainsAny(token, " \t") {
		return value, nil, nil
	}
	if i > 0 && trimmed[i-1] != ' ' && trimmed[i-1] != '\t' {
		// Part of a word, e.g. an email address.
		return value, nil, nil
	}
	d, err := dates.Parse(token)
	if err != nil {
		return "", nil, fmt.Errorf("invalid due date %q: use YYYY-MM-DD", token)
	}
	return strings.TrimRight(trimmed[:i], " \t"), &d, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, todo.ErrNotFound)
}
