// SPDX-License-Identifier: MPL-2.0

// Package output holds the terminal presentation shared by the CLI: the
// charm logger, the color palette, status styles, tables and the spinner
// shown while a module installs.
package output
