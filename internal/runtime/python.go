// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"os/exec"

	"github.com/devinstaller/devinstaller/pkg/platform"
)

// DefaultPythonInterpreter is used when no interpreter is configured.
const DefaultPythonInterpreter = "python3"

// PythonRuntime runs "py:" snippets with "<interpreter> -c <script>".
type PythonRuntime struct {
	Interpreter string
	// Sandbox routes the interpreter to the host when running inside Flatpak or Snap
	Sandbox platform.SandboxType
}

// NewPythonRuntime creates a Python runtime. An empty interpreter selects
// DefaultPythonInterpreter.
func NewPythonRuntime(interpreter string) *PythonRuntime {
	if interpreter == "" {
		interpreter = DefaultPythonInterpreter
	}
	return &PythonRuntime{Interpreter: interpreter, Sandbox: platform.DetectSandbox()}
}

// Name returns the runtime name.
func (r *PythonRuntime) Name() string {
	return string(RuntimeTypePython)
}

// Available reports whether the interpreter is on PATH.
func (r *PythonRuntime) Available() bool {
	_, err := exec.LookPath(r.Interpreter)
	return err == nil
}

// Execute runs the snippet in a fresh interpreter process.
func (r *PythonRuntime) Execute(ctx *ExecutionContext) *Result {
	name, args := platform.HostCommand(r.Sandbox, r.Interpreter, []string{"-c", ctx.Script})
	cmd := exec.CommandContext(contextOrBackground(ctx.Context), name, args...)
	cmd.Dir = ctx.WorkDir
	cmd.Env = ctx.Env
	cmd.Stdin = ctx.Stdin
	cmd.Stdout = ctx.Stdout
	cmd.Stderr = ctx.Stderr

	return extractExitCode(cmd.Run())
}
