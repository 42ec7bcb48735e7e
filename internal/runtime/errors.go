// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrCommandFailed is the sentinel wrapped by CommandFailedError.
	ErrCommandFailed = errors.New("command failed")
	// ErrRuntimeUnavailable is returned when the selected runtime cannot run on this host.
	ErrRuntimeUnavailable = errors.New("runtime not available")
	// ErrInvalidExitCode is returned for exit statuses outside 0-255.
	ErrInvalidExitCode = errors.New("invalid exit code")
)

// ExitCode is a process exit status. Zero is success.
type ExitCode int

// IsValid reports whether c fits a process exit status.
func (c ExitCode) IsValid() (bool, []error) {
	if c < 0 || c > 255 {
		return false, []error{fmt.Errorf("%w %d (must be in range 0-255)", ErrInvalidExitCode, c)}
	}
	return true, nil
}

// IsSuccess reports whether c is zero.
func (c ExitCode) IsSuccess() bool { return c == 0 }

func (c ExitCode) String() string { return strconv.Itoa(int(c)) }

// CommandFailedError reports a command that exited non-zero or could not be started.
type CommandFailedError struct {
	Command  string
	Runtime  RuntimeType
	ExitCode ExitCode
	// Err is set when the command never produced an exit status
	// (interpreter missing, timeout, parse failure).
	Err error
}

func (e *CommandFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("command %q failed (%s): %v", e.Command, e.Runtime, e.Err)
	}
	return fmt.Sprintf("command %q failed (%s): exit status %s", e.Command, e.Runtime, e.ExitCode)
}

// Unwrap returns ErrCommandFailed and the underlying cause, if any.
func (e *CommandFailedError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrCommandFailed, e.Err}
	}
	return []error{ErrCommandFailed}
}
