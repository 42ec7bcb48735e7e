// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue/errors"
)

type (
	// FieldError is a single CUE validation failure.
	FieldError struct {
		// Path is the JSON path to the invalid value (e.g., "modules[0].name").
		// Empty when CUE did not attribute the error to a field.
		Path string

		// Message is the validation error message.
		Message string
	}

	// ValidationError collects every field error CUE reported for one file.
	ValidationError struct {
		// FilePath is the file being validated.
		FilePath string

		// Fields holds the individual failures in CUE's reporting order.
		Fields []FieldError
	}
)

// String renders the field error as "<path>: <message>".
func (f FieldError) String() string {
	if f.Path == "" {
		return f.Message
	}
	return f.Path + ": " + f.Message
}

// Error implements the error interface.
//
// Error format: <file-path>: <json-path>: <message>
//
// Examples:
//   - devfile.toml: modules[0].module_type: 2 errors in empty disjunction
//   - config.cue: shell.runtime: conflicting values "virtual" and "bash"
func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("%s: %s", e.FilePath, e.Fields[0])
	}
	lines := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		lines[i] = f.String()
	}
	return fmt.Sprintf("%s: validation failed:\n  %s", e.FilePath, strings.Join(lines, "\n  "))
}

// FormatError converts a CUE error into a *ValidationError with JSON path
// prefixes. Non-CUE errors are wrapped with the file path and returned as-is.
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	cueErrors := errors.Errors(err)
	if len(cueErrors) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	verr := &ValidationError{FilePath: filePath}
	for _, e := range cueErrors {
		pathStr := formatPath(errors.Path(e))
		msg := e.Error()

		// CUE sometimes includes the path in the message itself
		if pathStr != "" && strings.HasPrefix(msg, pathStr) {
			msg = strings.TrimPrefix(msg, pathStr)
			msg = strings.TrimPrefix(msg, ":")
			msg = strings.TrimSpace(msg)
		}

		verr.Fields = append(verr.Fields, FieldError{Path: pathStr, Message: msg})
	}

	return verr
}

// formatPath converts a CUE error path to JSON-path notation for user-facing messages.
// CUE provides error paths as flat string slices (e.g., ["modules", "0", "requires"])
// where numeric elements represent array indices; the result reads "modules[0].requires".
func formatPath(path []string) string {
	if len(path) == 0 {
		return ""
	}

	var result strings.Builder
	for i, part := range path {
		if i > 0 && isIndex(part) {
			result.WriteString("[")
			result.WriteString(part)
			result.WriteString("]")
			continue
		}
		if i > 0 {
			result.WriteString(".")
		}
		result.WriteString(part)
	}

	return result.String()
}

func isIndex(part string) bool {
	if part == "" {
		return false
	}
	for _, c := range part {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CheckFileSize verifies that data does not exceed the specified maximum size.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes",
			filename, len(data), maxSize)
	}
	return nil
}
