// SPDX-License-Identifier: MPL-2.0

// Package runtime executes the "sh:" and "py:" commands that devfile modules
// declare in their init, command, config and uninstall steps.
//
// Three runtime implementations are available:
//   - virtual: runs shell commands in an embedded interpreter (mvdan/sh)
//   - native: runs shell commands through the host shell
//   - python: runs Python snippets through "<interpreter> -c"
//
// A Dispatcher parses the command prefix, picks the runtime from its Registry
// and turns non-zero exits into *CommandFailedError.
package runtime
