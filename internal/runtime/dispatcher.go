// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

type (
	// Runner executes a prefixed command string.
	Runner interface {
		Run(ctx context.Context, command string) error
	}

	// Dispatcher routes "sh:" commands to the configured shell runtime and
	// "py:" commands to the Python runtime.
	Dispatcher struct {
		registry *Registry
		shell    RuntimeType
		timeout  time.Duration
		workDir  string
		stdout   io.Writer
		stderr   io.Writer
		stdin    io.Reader
		logger   *log.Logger
	}

	// DispatcherOption configures a Dispatcher.
	DispatcherOption func(*Dispatcher)
)

// WithShellRuntime selects the runtime used for "sh:" commands.
func WithShellRuntime(typ RuntimeType) DispatcherOption {
	return func(d *Dispatcher) { d.shell = typ }
}

// WithTimeout bounds every command. Zero disables the bound.
func WithTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) { d.timeout = timeout }
}

// WithWorkDir sets the working directory of every command.
func WithWorkDir(dir string) DispatcherOption {
	return func(d *Dispatcher) { d.workDir = dir }
}

// WithIO redirects command stdio.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) DispatcherOption {
	return func(d *Dispatcher) {
		d.stdin = stdin
		d.stdout = stdout
		d.stderr = stderr
	}
}

// WithLogger sets the logger commands are traced to.
func WithLogger(logger *log.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.logger = logger }
}

// NewDispatcher creates a dispatcher over registry. "sh:" commands default to
// the virtual runtime.
func NewDispatcher(registry *Registry, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		shell:    RuntimeTypeVirtual,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		stdin:    os.Stdin,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewDefaultRegistry registers the virtual, native and python runtimes.
func NewDefaultRegistry(nativeShell, pythonInterpreter string) *Registry {
	r := NewRegistry()
	r.Register(RuntimeTypeVirtual, NewVirtualRuntime())
	r.Register(RuntimeTypeNative, NewNativeRuntime(nativeShell))
	r.Register(RuntimeTypePython, NewPythonRuntime(pythonInterpreter))
	return r
}

// RuntimeFor returns the runtime type a command language maps to.
func (d *Dispatcher) RuntimeFor(lang Language) RuntimeType {
	if lang == LanguagePython {
		return RuntimeTypePython
	}
	return d.shell
}

// Run parses and executes command. Malformed commands are specification
// errors; failures to run or non-zero exits are *CommandFailedError.
func (d *Dispatcher) Run(ctx context.Context, command string) error {
	cmd, err := ParseCommand(command)
	if err != nil {
		return err
	}

	typ := d.RuntimeFor(cmd.Language)
	rt, err := d.registry.Get(typ)
	if err != nil {
		return &CommandFailedError{Command: command, Runtime: typ, ExitCode: 1, Err: err}
	}
	if !rt.Available() {
		return &CommandFailedError{
			Command:  command,
			Runtime:  typ,
			ExitCode: 1,
			Err:      fmt.Errorf("%w: %s", ErrRuntimeUnavailable, rt.Name()),
		}
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	d.logger.Debug("running command", "runtime", typ, "command", command)

	execCtx := &ExecutionContext{
		Context: ctx,
		Script:  cmd.Script,
		Stdout:  d.stdout,
		Stderr:  d.stderr,
		Stdin:   d.stdin,
		WorkDir: d.workDir,
	}
	result := rt.Execute(execCtx)

	// A killed process reports a meaningless status; surface the context error instead.
	if ctxErr := ctx.Err(); ctxErr != nil && !result.Success() {
		return &CommandFailedError{Command: command, Runtime: typ, ExitCode: 1, Err: ctxErr}
	}
	if result.Error != nil {
		return &CommandFailedError{Command: command, Runtime: typ, ExitCode: result.ExitCode, Err: result.Error}
	}
	if !result.ExitCode.IsSuccess() {
		return &CommandFailedError{Command: command, Runtime: typ, ExitCode: result.ExitCode}
	}
	return nil
}
