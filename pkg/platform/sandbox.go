// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"os"
	"sync"
)

// Sandbox type constants.
const (
	// SandboxNone indicates no sandbox environment detected.
	SandboxNone SandboxType = ""
	// SandboxFlatpak indicates a Flatpak sandbox environment.
	SandboxFlatpak SandboxType = "flatpak"
	// SandboxSnap indicates a Snap sandbox environment.
	SandboxSnap SandboxType = "snap"
)

// detectOnce caches the sandbox detection result for the lifetime of the process.
//
// INVARIANT: detectSandboxFrom MUST NOT panic. sync.OnceValue propagates a
// panic on every call.
var detectOnce = sync.OnceValue(func() SandboxType {
	return detectSandboxFrom(os.Getenv, statFile)
})

// SandboxType identifies the type of application sandbox, if any.
type SandboxType string

// DetectSandbox returns the sandbox the current process runs in. The result
// is cached after the first call.
//
// Detection methods:
//   - Flatpak: Checks for existence of /.flatpak-info
//   - Snap: Checks for SNAP_NAME environment variable
func DetectSandbox() SandboxType {
	return detectOnce()
}

// HostCommand rewrites name and args so that the program runs on the host
// rather than inside the sandbox st. Outside a sandbox they are returned unchanged.
func HostCommand(st SandboxType, name string, args []string) (string, []string) {
	spawn := SpawnCommandFor(st)
	if spawn == "" {
		return name, args
	}
	full := append(SpawnArgsFor(st), name)
	return spawn, append(full, args...)
}

// SpawnCommandFor returns the spawn command for a given sandbox type.
func SpawnCommandFor(st SandboxType) string {
	switch st {
	case SandboxFlatpak:
		return "flatpak-spawn"
	case SandboxSnap:
		return "snap"
	default:
		return ""
	}
}

// SpawnArgsFor returns the spawn arguments for a given sandbox type.
func SpawnArgsFor(st SandboxType) []string {
	switch st {
	case SandboxFlatpak:
		return []string{"--host"}
	case SandboxSnap:
		return []string{"run", "--shell"}
	default:
		return nil
	}
}

// detectSandboxFrom performs sandbox detection using the provided lookup functions.
func detectSandboxFrom(lookupEnv func(string) string, statFile func(string) error) SandboxType {
	// The /.flatpak-info file is always present inside Flatpak sandboxes.
	if err := statFile("/.flatpak-info"); err == nil {
		return SandboxFlatpak
	}
	if lookupEnv("SNAP_NAME") != "" {
		return SandboxSnap
	}
	return SandboxNone
}

func statFile(path string) error {
	_, err := os.Stat(path)
	return err
}
