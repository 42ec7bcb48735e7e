// SPDX-License-Identifier: MPL-2.0

// Package prompt asks the user to confirm, select and multi-select.
//
// Form renders interactive prompts with huh. NonInteractive answers from fixed
// defaults where one is safe, and Scripted replays canned answers for tests.
package prompt
