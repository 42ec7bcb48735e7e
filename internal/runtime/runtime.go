// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"slices"
)

// Runtime type constants for the supported execution environments.
const (
	RuntimeTypeVirtual RuntimeType = "virtual"
	RuntimeTypeNative  RuntimeType = "native"
	RuntimeTypePython  RuntimeType = "python"
)

type (
	// ExecutionContext contains everything needed to execute one command.
	ExecutionContext struct {
		// Context is the Go context for cancellation
		Context context.Context
		// Script is the command body without its language prefix
		Script string
		// Stdout is where to write standard output
		Stdout io.Writer
		// Stderr is where to write standard error
		Stderr io.Writer
		// Stdin is where to read standard input
		Stdin io.Reader
		// Env is the full environment in KEY=VALUE form; nil inherits the host's
		Env []string
		// WorkDir overrides the working directory
		WorkDir string
	}

	// Result contains the result of a command execution.
	Result struct {
		// ExitCode is the exit code of the command
		ExitCode ExitCode
		// Error contains any error that prevented the command from producing an exit code
		Error error
	}

	// Runtime executes command scripts.
	Runtime interface {
		// Name returns the runtime name
		Name() string
		// Execute runs a script in this runtime
		Execute(ctx *ExecutionContext) *Result
		// Available returns whether this runtime is available on the current system
		Available() bool
	}

	// RuntimeType identifies the type of runtime.
	//
	//nolint:revive // RuntimeType is more descriptive than Type for external callers
	RuntimeType string

	// Registry holds all available runtimes.
	Registry struct {
		runtimes map[RuntimeType]Runtime
	}
)

// Success returns true if the command executed successfully.
func (r *Result) Success() bool {
	return r.ExitCode.IsSuccess() && r.Error == nil
}

// NewRegistry creates a new runtime registry.
func NewRegistry() *Registry {
	return &Registry{
		runtimes: make(map[RuntimeType]Runtime),
	}
}

// Register adds a runtime to the registry.
func (r *Registry) Register(typ RuntimeType, rt Runtime) {
	r.runtimes[typ] = rt
}

// Get returns a runtime by type.
func (r *Registry) Get(typ RuntimeType) (Runtime, error) {
	rt, ok := r.runtimes[typ]
	if !ok {
		return nil, fmt.Errorf("runtime '%s' not registered", typ)
	}
	return rt, nil
}

// Available returns all available runtimes, sorted by name.
func (r *Registry) Available() []RuntimeType {
	var types []RuntimeType
	for typ, rt := range r.runtimes {
		if rt.Available() {
			types = append(types, typ)
		}
	}
	slices.Sort(types)
	return types
}

// extractExitCode turns the error returned by exec.Cmd.Run into a Result.
func extractExitCode(err error) *Result {
	if err == nil {
		return &Result{}
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		code := ExitCode(exitErr.ExitCode())
		if valid, errs := code.IsValid(); !valid {
			return &Result{ExitCode: 1, Error: errs[0]}
		}
		return &Result{ExitCode: code}
	}

	// Some other error (e.g., command not found, permission denied)
	return &Result{ExitCode: 1, Error: err}
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
