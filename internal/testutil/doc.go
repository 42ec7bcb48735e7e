// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers shared by devinstaller's tests: fatal-on-error
// filesystem and environment wrappers, devfile fixtures, and a Recorder that
// stands in for the command runner.
package testutil
