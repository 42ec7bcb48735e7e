// SPDX-License-Identifier: MPL-2.0

package devfile

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/devinstaller/devinstaller/pkg/cueutil"
)

// schemaRoot is the root definition every devfile is unified with.
const schemaRoot = "#Devfile"

//go:embed devfile_schema.cue
var schemaBytes []byte

// Schema returns the embedded CUE schema source.
func Schema() []byte {
	return schemaBytes
}

// Validate checks an already parsed document (as produced by a TOML, YAML or JSON
// decoder) against the schema and returns the sanitized, typed document.
// Schema failures are reported as one *SchemaError listing every offending field.
func Validate(raw map[string]any, filename string) (*Document, error) {
	return validate(cueutil.FromGo(raw), filename)
}

// ValidateCUE is Validate for devfiles written in CUE.
func ValidateCUE(data []byte, filename string) (*Document, error) {
	return validate(cueutil.FromBytes(data), filename)
}

func validate(in cueutil.Input, filename string) (*Document, error) {
	unified, err := cueutil.Unify(schemaBytes, schemaRoot, in, cueutil.WithFilename(filename))
	if err != nil {
		return nil, schemaErrorFrom(err, filename)
	}

	// A JSON round trip lets Instruction pick between its string and table forms.
	data, err := unified.MarshalJSON()
	if err != nil {
		return nil, schemaErrorFrom(cueutil.FormatError(err, filename), filename)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: decode validated devfile: %w", filename, err)
	}
	return &doc, nil
}
