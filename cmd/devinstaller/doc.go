// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the devinstaller CLI.
//
// The Cobra tree is built by NewRootCommand from an App, which carries the
// configuration provider and the collaborators an installer session needs.
// Tests build an App with fakes through Dependencies.
package cmd
