// SPDX-License-Identifier: MPL-2.0

// Package devfile reads and validates devfiles: the declarative documents that list
// the platforms and modules of an environment setup.
//
// A devfile is addressed by a source string of the form "<method>: <location>":
//
//	file: ~/dotfiles/devfile.toml   read from disk
//	url: https://example.com/devfile.yaml   download over HTTP
//	data: <inline document>   use the text itself
//
// A bare path is read as a file. The format (TOML, YAML, JSON or CUE) is chosen by
// extension, defaulting to TOML. Every document is validated against the embedded
// CUE schema (devfile_schema.cue) before it is decoded into a Document, so the rest
// of the program only ever sees schema-compliant data.
package devfile
