// SPDX-License-Identifier: MPL-2.0

// Package issue turns failures into messages a user can act on: a one-line
// summary with suggestions, plus a Markdown guide rendered with glamour for
// each class of problem devinstaller knows about.
package issue
