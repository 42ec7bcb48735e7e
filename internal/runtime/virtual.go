// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualRuntime executes shell scripts with the embedded mvdan/sh interpreter.
// External programs are still resolved from PATH.
type VirtualRuntime struct{}

// NewVirtualRuntime creates a new virtual runtime.
func NewVirtualRuntime() *VirtualRuntime {
	return &VirtualRuntime{}
}

// Name returns the runtime name.
func (r *VirtualRuntime) Name() string {
	return string(RuntimeTypeVirtual)
}

// Available returns whether this runtime is available.
func (r *VirtualRuntime) Available() bool {
	// Virtual runtime is always available as it's built-in
	return true
}

// Validate checks that the script parses.
func (r *VirtualRuntime) Validate(script string) error {
	if _, err := syntax.NewParser().Parse(strings.NewReader(script), "script"); err != nil {
		return fmt.Errorf("script syntax error: %w", err)
	}
	return nil
}

// Execute runs a script using the virtual shell.
func (r *VirtualRuntime) Execute(ctx *ExecutionContext) *Result {
	prog, err := syntax.NewParser().Parse(strings.NewReader(ctx.Script), "script")
	if err != nil {
		return &Result{ExitCode: 1, Error: fmt.Errorf("failed to parse script: %w", err)}
	}

	env := ctx.Env
	if env == nil {
		env = os.Environ()
	}

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(ctx.Stdin, ctx.Stdout, ctx.Stderr),
	}
	if ctx.WorkDir != "" {
		opts = append(opts, interp.Dir(ctx.WorkDir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return &Result{ExitCode: 1, Error: fmt.Errorf("failed to create interpreter: %w", err)}
	}

	if err := runner.Run(contextOrBackground(ctx.Context), prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return &Result{ExitCode: ExitCode(exitStatus)}
		}
		return &Result{ExitCode: 1, Error: fmt.Errorf("script execution failed: %w", err)}
	}

	return &Result{}
}
