// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"path/filepath"
	"strings"
)

// IsWindowsReservedName reports whether name, ignoring case and any extension,
// is a device name Windows refuses as a file name (CON, NUL, COM1, LPT9, ...).
func IsWindowsReservedName(name string) bool {
	base := strings.ToUpper(strings.TrimSuffix(name, filepath.Ext(name)))
	switch base {
	case "CON", "PRN", "AUX", "NUL":
		return true
	}
	if len(base) == 4 && (strings.HasPrefix(base, "COM") || strings.HasPrefix(base, "LPT")) {
		return base[3] >= '1' && base[3] <= '9'
	}
	return false
}
