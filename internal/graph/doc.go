// SPDX-License-Identifier: MPL-2.0

// Package graph builds the module map for one platform-resolved run and
// installs requested modules dependency-first.
//
// Install is a depth-first traversal. A module is installed only after all of
// its requires have succeeded; optionals are attempted but never block it.
// Modules that were pulled in for a dependent that failed are reported as
// orphans so the caller can offer to uninstall them.
//
// A Graph is not safe for concurrent use and Install may run only once.
package graph
