// Package schemas holds the JSON Schemas for persisted builder snapshots and
// imported resume documents, and validates payloads against them.
package schemas

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var files embed.FS

// Schema names
const (
	SnapshotSchema = "snapshot.schema.json"
	ResumeSchema   = "resume.schema.json"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Schema string
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Name    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Name, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s validation failed:\n", ve.Schema)
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, err.Field, err.Message)
	}
	return sb.String()
}

var (
	compileOnce sync.Once
	compiled    map[string]*gojsonschema.Schema
	compileErr  error
)

func load(name string) (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled = make(map[string]*gojsonschema.Schema)
		for _, n := range []string{SnapshotSchema, ResumeSchema} {
			raw, err := files.ReadFile(n)
			if err != nil {
				compileErr = &SchemaLoadError{Name: n, Message: "embedded schema missing", Cause: err}
				return
			}
			schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
			if err != nil {
				compileErr = &SchemaLoadError{Name: n, Message: "invalid schema", Cause: err}
				return
			}
			compiled[n] = schema
		}
	})
	if compileErr != nil {
		return nil, compileErr
	}
	schema, ok := compiled[name]
	if !ok {
		return nil, &SchemaLoadError{Name: name, Message: "unknown schema"}
	}
	return schema, nil
}

// Validate checks document against the named embedded schema. It returns a
// *ValidationError listing every violation, or a *SchemaLoadError when the
// document is not JSON or the schema itself cannot be used.
func Validate(name string, document []byte) error {
	schema, err := load(name)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return &SchemaLoadError{Name: name, Message: "document could not be loaded", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Schema: name,
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

// ValidateSnapshot checks a persisted builder snapshot
func ValidateSnapshot(document []byte) error {
	return Validate(SnapshotSchema, document)
}

// ValidateResume checks an imported resume document (JSON form)
func ValidateResume(document []byte) error {
	return Validate(ResumeSchema, document)
}
