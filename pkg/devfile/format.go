// SPDX-License-Identifier: MPL-2.0

package devfile

import (
	"encoding/json"
	"path"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	// FormatTOML is the default devfile format.
	FormatTOML Format = "toml"
	// FormatYAML covers .yaml and .yml files.
	FormatYAML Format = "yaml"
	// FormatJSON covers .json files.
	FormatJSON Format = "json"
	// FormatCUE covers .cue files.
	FormatCUE Format = "cue"
)

// Format is the serialization of a devfile.
type Format string

// FormatFor picks the format from a file name or URL path extension,
// defaulting to TOML.
func FormatFor(location string) Format {
	// URLs may carry a query string; only the path matters.
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		location = location[:i]
	}
	switch strings.ToLower(path.Ext(location)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	case ".cue":
		return FormatCUE
	default:
		return FormatTOML
	}
}

// Parse decodes and validates raw devfile contents.
func Parse(data []byte, format Format, filename string) (*Document, error) {
	if format == FormatCUE {
		return ValidateCUE(data, filename)
	}

	raw, err := decodeRaw(data, format)
	if err != nil {
		return nil, &ParseError{Filename: filename, Format: format, Err: err}
	}
	return Validate(raw, filename)
}

func decodeRaw(data []byte, format Format) (map[string]any, error) {
	raw := map[string]any{}
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	case FormatJSON:
		err = json.Unmarshal(data, &raw)
	default:
		err = toml.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, err
	}
	// An empty YAML document decodes to a nil map.
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}
