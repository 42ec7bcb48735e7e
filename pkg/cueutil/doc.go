// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE validation utilities.
//
// The package consolidates the 3-step CUE validation pattern used by the devfile
// and config packages:
//
//  1. Compile the embedded schema
//  2. Compile (or encode) user data and unify it with a schema definition
//  3. Validate, then hand the unified value back for decoding
//
// User data can come from CUE source bytes (FromBytes) or from an already
// decoded Go value such as the map produced by a TOML, YAML or JSON parser
// (FromGo). Either way the caller gets CUE's field-level errors rendered with
// JSON-path prefixes.
//
// # Usage
//
//	//go:embed devfile_schema.cue
//	var schemaBytes []byte
//
//	unified, err := cueutil.Unify(schemaBytes, "#Devfile",
//	    cueutil.FromGo(raw),
//	    cueutil.WithFilename("devfile.toml"),
//	)
//	if err != nil {
//	    return nil, err // *cueutil.ValidationError with one entry per field
//	}
package cueutil
