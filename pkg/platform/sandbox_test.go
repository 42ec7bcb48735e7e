// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"io/fs"
	"slices"
	"testing"
)

func TestDetectSandboxFrom(t *testing.T) {
	t.Parallel()

	missing := func(string) error { return fs.ErrNotExist }
	present := func(path string) error {
		if path == "/.flatpak-info" {
			return nil
		}
		return errors.New("unexpected path " + path)
	}
	env := func(vals map[string]string) func(string) string {
		return func(k string) string { return vals[k] }
	}

	tests := []struct {
		name   string
		env    map[string]string
		stat   func(string) error
		expect SandboxType
	}{
		{name: "no sandbox", stat: missing, expect: SandboxNone},
		{name: "flatpak", stat: present, expect: SandboxFlatpak},
		{name: "snap", env: map[string]string{"SNAP_NAME": "devinstaller"}, stat: missing, expect: SandboxSnap},
		{name: "flatpak takes precedence", env: map[string]string{"SNAP_NAME": "x"}, stat: present, expect: SandboxFlatpak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := detectSandboxFrom(env(tt.env), tt.stat); got != tt.expect {
				t.Errorf("detectSandboxFrom() = %q, want %q", got, tt.expect)
			}
		})
	}
}

func TestHostCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sandbox  SandboxType
		wantName string
		wantArgs []string
	}{
		{sandbox: SandboxNone, wantName: "sh", wantArgs: []string{"-c", "echo"}},
		{sandbox: SandboxFlatpak, wantName: "flatpak-spawn", wantArgs: []string{"--host", "sh", "-c", "echo"}},
		{sandbox: SandboxSnap, wantName: "snap", wantArgs: []string{"run", "--shell", "sh", "-c", "echo"}},
	}

	for _, tt := range tests {
		name, args := HostCommand(tt.sandbox, "sh", []string{"-c", "echo"})
		if name != tt.wantName || !slices.Equal(args, tt.wantArgs) {
			t.Errorf("HostCommand(%q) = %s %v, want %s %v", tt.sandbox, name, args, tt.wantName, tt.wantArgs)
		}
	}
}
