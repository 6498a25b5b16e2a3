package ftm

import (
	"errors"
	"strings"
)

// Sentinel errors for model configuration failures.
var (
	// ErrInvalidModel indicates a model description that cannot be interpreted.
	ErrInvalidModel = errors.New("ftm: invalid model")
	// ErrUnknownSchema indicates a schema name missing from the model.
	ErrUnknownSchema = errors.New("ftm: unknown schema")
	// ErrUnknownType indicates a property type name missing from the model.
	ErrUnknownType = errors.New("ftm: unknown property type")
	// ErrInvalidEntity indicates an entity payload that cannot be bound.
	ErrInvalidEntity = errors.New("ftm: invalid entity")
)

// SchemaError describes a mismatch between the model description and the
// names a caller (or the description itself) refers to.
type SchemaError struct {
	Schema   string // Schema name (if applicable)
	Property string // Property name (if applicable)
	Message  string
	Err      error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("ftm: schema error")
	if e.Schema != "" {
		b.WriteString(" on schema ")
		b.WriteString(e.Schema)
	}
	if e.Property != "" {
		b.WriteString(" property ")
		b.WriteString(e.Property)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying sentinel.
func (e *SchemaError) Unwrap() error {
	return e.Err
}

func newSchemaError(schema, property, message string, err error) *SchemaError {
	return &SchemaError{
		Schema:   schema,
		Property: property,
		Message:  message,
		Err:      err,
	}
}

// IsSchemaError reports whether the error is a SchemaError.
func IsSchemaError(err error) bool {
	var schemaErr *SchemaError
	return errors.As(err, &schemaErr)
}
