// SPDX-License-Identifier: MPL-2.0

package devfile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/devinstaller/devinstaller/pkg/cueutil"
)

const (
	// CodeInvalidSpec flags a devfile or argument that references something inconsistent.
	CodeInvalidSpec ErrorCode = "S100"
	// CodeInvalidSource flags a source string that does not start with a known method.
	CodeInvalidSource ErrorCode = "S101"
)

var (
	// ErrSpecification is the sentinel wrapped by SpecificationError.
	ErrSpecification = errors.New("specification error")
	// ErrSchema is the sentinel wrapped by SchemaError.
	ErrSchema = errors.New("devfile does not comply with the schema")
	// ErrParse is the sentinel wrapped by ParseError.
	ErrParse = errors.New("devfile could not be parsed")
)

type (
	// ErrorCode is a short, stable identifier for a class of specification errors.
	ErrorCode string

	// SpecificationError reports that the devfile or a CLI argument references
	// something inconsistent: an unknown module or platform, a malformed command,
	// or supported_platforms used without a platform block.
	SpecificationError struct {
		Code    ErrorCode
		Subject string
		Message string
	}

	// SchemaError reports every field of a document that failed schema validation.
	SchemaError struct {
		Filename string
		Fields   []cueutil.FieldError
	}

	// ParseError reports a document that is not valid TOML, YAML, JSON or CUE.
	ParseError struct {
		Filename string
		Format   Format
		Err      error
	}
)

// NewSpecificationError builds a SpecificationError.
func NewSpecificationError(code ErrorCode, subject, format string, args ...any) *SpecificationError {
	return &SpecificationError{Code: code, Subject: subject, Message: fmt.Sprintf(format, args...)}
}

func (e *SpecificationError) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("specification error %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("specification error %s: %s: %q", e.Code, e.Message, e.Subject)
}

// Unwrap returns ErrSpecification for errors.Is() compatibility.
func (e *SpecificationError) Unwrap() error { return ErrSpecification }

func (e *SchemaError) Error() string {
	lines := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		lines[i] = f.String()
	}
	return fmt.Sprintf("%s: schema validation failed:\n  %s", e.Filename, strings.Join(lines, "\n  "))
}

// Unwrap returns ErrSchema for errors.Is() compatibility.
func (e *SchemaError) Unwrap() error { return ErrSchema }

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %v", e.Filename, e.Format, e.Err)
}

// Unwrap returns both ErrParse and the decoder's error.
func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

// schemaErrorFrom converts a cueutil validation error into a SchemaError.
// Other errors are returned unchanged.
func schemaErrorFrom(err error, filename string) error {
	var verr *cueutil.ValidationError
	if errors.As(err, &verr) {
		return &SchemaError{Filename: filename, Fields: verr.Fields}
	}
	return err
}
