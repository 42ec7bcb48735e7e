// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

type (
	// Input is user data to be unified with a schema definition.
	// Construct one with FromBytes or FromGo.
	Input struct {
		data    []byte
		value   any
		encoded bool
	}

	// ParseResult contains the result of a successful CUE parse operation.
	ParseResult[T any] struct {
		// Value is the decoded Go struct.
		Value *T

		// Unified is the unified CUE value, available for advanced use cases
		// such as extracting additional metadata or performing custom validation.
		Unified cue.Value
	}
)

// FromBytes wraps CUE source text.
func FromBytes(data []byte) Input {
	return Input{data: data}
}

// FromGo wraps an already decoded Go value (typically map[string]any from a
// TOML, YAML or JSON parser). The value is encoded into CUE before unification.
func FromGo(v any) Input {
	return Input{value: v, encoded: true}
}

// Unify compiles the schema, looks up the root definition at schemaPath,
// unifies it with the input and validates the result.
//
// Validation errors are returned as *ValidationError carrying one FieldError per
// CUE error, so callers can report every offending field at once.
func Unify(schema []byte, schemaPath string, in Input, opts ...Option) (cue.Value, error) {
	options := newSettings(opts)
	filename := options.filename

	if !in.encoded {
		// Early file size check to prevent OOM attacks from large files
		if err := CheckFileSize(in.data, options.maxFileSize, filename); err != nil {
			return cue.Value{}, err
		}
	}

	ctx := cuecontext.New()

	// Step 1: Compile the schema
	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	schemaRoot := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if schemaRoot.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, schemaRoot.Err())
	}

	// Step 2: Compile or encode the user data
	var userValue cue.Value
	if in.encoded {
		userValue = ctx.Encode(in.value)
	} else {
		userValue = ctx.CompileBytes(in.data, cue.Filename(filename))
	}
	if userValue.Err() != nil {
		return cue.Value{}, FormatError(userValue.Err(), filename)
	}

	unified := schemaRoot.Unify(userValue)

	// Step 3: Validate
	if err := unified.Validate(cue.Concrete(options.concrete)); err != nil {
		return cue.Value{}, FormatError(err, filename)
	}

	return unified, nil
}

// ParseAndDecode performs the full parse flow for CUE source bytes and decodes
// the unified value into T.
func ParseAndDecode[T any](schema, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	unified, err := Unify(schema, schemaPath, FromBytes(data), opts...)
	if err != nil {
		return nil, err
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, newSettings(opts).filename)
	}

	return &ParseResult[T]{
		Value:   &result,
		Unified: unified,
	}, nil
}
