// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/devinstaller/devinstaller/pkg/platform"
)

// NativeRuntime executes shell scripts through the host shell.
type NativeRuntime struct {
	// Shell overrides the default shell
	Shell string
	// ShellArgs overrides the default shell arguments
	ShellArgs []string
	// Sandbox routes the shell to the host when running inside Flatpak or Snap
	Sandbox platform.SandboxType
}

// NewNativeRuntime creates a native runtime. An empty shell selects the
// platform default.
func NewNativeRuntime(shell string) *NativeRuntime {
	return &NativeRuntime{Shell: shell, Sandbox: platform.DetectSandbox()}
}

// Name returns the runtime name.
func (r *NativeRuntime) Name() string {
	return string(RuntimeTypeNative)
}

// Available returns whether a shell can be found.
func (r *NativeRuntime) Available() bool {
	_, err := r.getShell()
	return err == nil
}

// Execute runs the script through the host shell.
func (r *NativeRuntime) Execute(ctx *ExecutionContext) *Result {
	shell, err := r.getShell()
	if err != nil {
		return &Result{ExitCode: 1, Error: err}
	}

	name, args := platform.HostCommand(r.Sandbox, shell, append(r.getShellArgs(shell), ctx.Script))
	cmd := exec.CommandContext(contextOrBackground(ctx.Context), name, args...)
	cmd.Dir = ctx.WorkDir
	cmd.Env = ctx.Env
	cmd.Stdin = ctx.Stdin
	cmd.Stdout = ctx.Stdout
	cmd.Stderr = ctx.Stderr

	return extractExitCode(cmd.Run())
}

// getShell determines which shell to use.
func (r *NativeRuntime) getShell() (string, error) {
	if r.Shell != "" {
		return exec.LookPath(r.Shell)
	}

	switch runtime.GOOS {
	case platform.Windows:
		// Try PowerShell first, then cmd
		if pwsh, err := exec.LookPath("pwsh"); err == nil {
			return pwsh, nil
		}
		if ps, err := exec.LookPath("powershell"); err == nil {
			return ps, nil
		}
		return exec.LookPath("cmd")
	default:
		// Unix-like: use SHELL env var, or fall back to common shells
		if shell := os.Getenv("SHELL"); shell != "" {
			return shell, nil
		}
		if bash, err := exec.LookPath("bash"); err == nil {
			return bash, nil
		}
		if sh, err := exec.LookPath("sh"); err == nil {
			return sh, nil
		}
		return "", fmt.Errorf("no shell found")
	}
}

// getShellArgs returns the arguments placed before the script.
func (r *NativeRuntime) getShellArgs(shell string) []string {
	if len(r.ShellArgs) > 0 {
		return slices.Clone(r.ShellArgs)
	}

	base := strings.TrimSuffix(filepath.Base(shell), ".exe")
	switch base {
	case "cmd":
		return []string{"/C"}
	case "powershell", "pwsh":
		return []string{"-NoProfile", "-Command"}
	default:
		// Assume POSIX shell
		return []string{"-c"}
	}
}
