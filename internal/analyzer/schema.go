package analyzer

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed analysis.schema.json
var analysisSchema string

var (
	schemaOnce     sync.Once
	compiledSchema *gojsonschema.Schema
	schemaErr      error
)

// ValidationError lists every schema violation in a response.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single violation at a JSON path.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:")
	for _, e := range ve.Errors {
		fmt.Fprintf(&sb, " %s: %s;", e.Field, e.Message)
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// Problems renders the violations as short lines for a repair prompt.
func (ve *ValidationError) Problems() []string {
	out := make([]string, 0, len(ve.Errors))
	for _, e := range ve.Errors {
		out = append(out, e.Field+": "+e.Message)
	}
	return out
}

func loadSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(analysisSchema))
	})
	return compiledSchema, schemaErr
}

// ValidateDocument checks a JSON document against the analysis schema.
// A malformed document is reported as a ValidationError on the root.
func ValidateDocument(doc string) error {
	schema, err := loadSchema()
	if err != nil {
		return fmt.Errorf("load analysis schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewStringLoader(doc))
	if err != nil {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: "invalid JSON: " + err.Error()}}}
	}
	if result.Valid() {
		return nil
	}
	ve := &ValidationError{}
	for _, desc := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{Field: desc.Field(), Message: desc.Description()})
	}
	return ve
}
