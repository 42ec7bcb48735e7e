// SPDX-License-Identifier: MPL-2.0

// Package installer runs a devinstaller session: load the devfile, resolve
// the platform, build the module graph, pick the requirements, install them
// and deal with the orphans the run leaves behind.
package installer
