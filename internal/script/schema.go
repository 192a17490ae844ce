package script

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "https://github.com/nibzard/todos-go/script.schema.json"

//go:embed schema.json
var schemaJSON []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Schema returns the raw JSON Schema scripts are validated against.
func Schema() []byte {
	return bytes.Clone(schemaJSON)
}

func compiled() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("load script schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile script schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// ValidationError lists every schema violation found in a script.
type ValidationError struct {
	Problems []Problem
}

// Problem is a single schema violation.
type Problem struct {
	Path    string // e.g. steps[2].id
	Message string
}

func (p Problem) String() string {
	if p.Path == "" {
		return p.Message
	}
	return p.Path + ": " + p.Message
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, p.String())
	}
	return "invalid script: " + strings.Join(parts, "; ")
}

func validate(doc any) error {
	schema, err := compiled()
	if err != nil {
		return err
	}
	err = schema.Validate(doc)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	result := &ValidationError{}
	collectProblems(result, ve)
	if len(result.Problems) == 0 {
		result.Problems = append(result.Problems, Problem{
			Path:    pointerToPath(ve.InstanceLocation),
			Message: ve.Message,
		})
	}
	return result
}

// collectProblems gathers the leaf causes, which carry the specific messages.
func collectProblems(result *ValidationError, ve *jsonschema.ValidationError) {
	if len(ve.Causes) == 0 {
		result.Problems = append(result.Problems, Problem{
			Path:    pointerToPath(ve.InstanceLocation),
			Message: ve.Message,
		})
		return
	}
	for _, cause := range ve.Causes {
		collectProblems(result, cause)
	}
}

// pointerToPath converts a JSON pointer like /steps/2/id to steps[2].id.
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}
	var b strings.Builder
	for i, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(strings.ReplaceAll(part, "~1", "/"), "~0", "~")
		if isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
