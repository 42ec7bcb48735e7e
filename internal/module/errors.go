// SPDX-License-Identifier: MPL-2.0

package module

import (
	"errors"
	"fmt"
)

var (
	// ErrInstallationFailed is the sentinel wrapped by InstallationFailedError.
	ErrInstallationFailed = errors.New("module installation failed")
	// ErrRollbackFailed is the sentinel wrapped by RollbackFailedError.
	// System state is unknown once this is returned.
	ErrRollbackFailed = errors.New("module rollback failed")
	// ErrUninstallFailed is the sentinel wrapped by UninstallFailedError.
	ErrUninstallFailed = errors.New("module uninstallation failed")
)

type (
	// InstallationFailedError reports a step failure whose completed
	// predecessors were rolled back successfully.
	InstallationFailedError struct {
		Module string
		Step   string
		Err    error
	}

	// RollbackFailedError reports a compensating step that failed.
	RollbackFailedError struct {
		Module string
		Step   string
		Err    error
		// Cause is the install failure that triggered the rollback, if any.
		Cause error
	}

	// UninstallFailedError reports an uninstall step that failed.
	UninstallFailedError struct {
		Module string
		Step   string
		Err    error
	}
)

func (e *InstallationFailedError) Error() string {
	return fmt.Sprintf("installation of %s failed at %q: %v", e.Module, e.Step, e.Err)
}

// Unwrap returns ErrInstallationFailed and the step error.
func (e *InstallationFailedError) Unwrap() []error { return []error{ErrInstallationFailed, e.Err} }

func (e *RollbackFailedError) Error() string {
	msg := fmt.Sprintf("rollback of %s failed at %q: %v", e.Module, e.Step, e.Err)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (rolling back after: %v)", e.Cause)
	}
	return msg
}

// Unwrap returns ErrRollbackFailed and the rollback step error.
func (e *RollbackFailedError) Unwrap() []error { return []error{ErrRollbackFailed, e.Err} }

func (e *UninstallFailedError) Error() string {
	return fmt.Sprintf("uninstallation of %s failed at %q: %v", e.Module, e.Step, e.Err)
}

// Unwrap returns ErrUninstallFailed and the step error.
func (e *UninstallFailedError) Unwrap() []error { return []error{ErrUninstallFailed, e.Err} }
