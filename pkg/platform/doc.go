// SPDX-License-Identifier: MPL-2.0

// Package platform inspects the host the installer runs on: its system name
// and version, whether it runs inside a Flatpak or Snap sandbox, and which
// file names the host reserves.
package platform
