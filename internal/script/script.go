// Package script reads and runs batch files of todo operations.
package script

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nibzard/todos-go/internal/dates"
)

// Op names a store operation.
type Op string

const (
	OpAdd      Op = "add"
	OpComplete Op = "complete"
	OpRemove   Op = "remove"
	OpList     Op = "list"
	OpFilter   Op = "filter"
	OpRename   Op = "rename"
	OpClear    Op = "clear"
)

// Format is the encoding of a script file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Script is an ordered list of steps.
type Script struct {
	Version int    `json:"version"`
	Name    string `json:"name,omitempty"`
	Steps   []Step `json:"steps"`
}

// Step is one operation. Which fields are used depends on Op.
type Step struct {
	Op        Op     `json:"op"`
	Text      string `json:"text,omitempty"`
	Due       string `json:"due,omitempty"`
	ID        int    `json:"id,omitempty"`
	Completed *bool  `json:"completed,omitempty"`
}

// String renders the step compactly for log fields and errors.
func (s Step) String() string {
	switch s.Op {
	case OpAdd:
		if s.Due != "" {
			return fmt.Sprintf("add %q due %s", s.Text, s.Due)
		}
		return fmt.Sprintf("add %q", s.Text)
	case OpComplete, OpRemove:
		return fmt.Sprintf("%s %d", s.Op, s.ID)
	case OpRename:
		return fmt.Sprintf("rename %d %q", s.ID, s.Text)
	case OpFilter:
		completed := false
		if s.Completed != nil {
			completed = *s.Completed
		}
		return fmt.Sprintf("filter completed=%t", completed)
	default:
		return string(s.Op)
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported script extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// Load reads, validates and decodes the script at path.
func Load(path string) (*Script, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return Parse(data, format)
}

// Parse validates data against the script schema and decodes it.
func Parse(data []byte, format Format) (*Script, error) {
	doc, err := normalize(data, format)
	if err != nil {
		return nil, err
	}
	if err := validate(doc); err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode script: %w", err)
	}
	var s Script
	if err := json.Unmarshal(encoded, &s); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	return &s, nil
}

// normalize decodes data into the generic shape encoding/json produces, so
// YAML and JSON scripts validate the same way.
func normalize(data []byte, format Format) (any, error) {
	switch format {
	case FormatJSON:
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse script: %w", err)
		}
		return doc, nil
	case FormatYAML:
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse script: %w", err)
		}
		encoded, err := json.Marshal(yamlTimesToStrings(raw))
		if err != nil {
			return nil, fmt.Errorf("parse script: %w", err)
		}
		var doc any
		if err := json.Unmarshal(encoded, &doc); err != nil {
			return nil, fmt.Errorf("parse script: %w", err)
		}
		return doc, nil
	default:
		return nil, fmt.Errorf("unknown script format %q", format)
	}
}

// yamlTimesToStrings replaces the time.Time values YAML produces for unquoted
// timestamps (due: 2025-03-10) with their text form.
func yamlTimesToStrings(v any) any {
	switch v := v.(type) {
	case time.Time:
		if v.Equal(time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, v.Location())) {
			return v.Format(dates.Layout)
		}
		return v.Format(time.RFC3339)
	case map[string]any:
		for k, item := range v {
			v[k] = yamlTimesToStrings(item)
		}
		return v
	case []any:
		for i, item := range v {
			v[i] = yamlTimesToStrings(item)
		}
		return v
	default:
		return v
	}
}
