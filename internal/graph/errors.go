// SPDX-License-Identifier: MPL-2.0

package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/devinstaller/devinstaller/pkg/devfile"
)

var (
	// ErrModuleNotFound is the sentinel wrapped by ModuleNotFoundError.
	ErrModuleNotFound = errors.New("module not found")
	// ErrDependencyFailed is the sentinel wrapped by DependencyFailedError.
	ErrDependencyFailed = errors.New("required dependency failed")
	// ErrAlreadyInstalled is returned when Install is called twice on one Graph.
	ErrAlreadyInstalled = errors.New("graph has already been installed")
)

type (
	// ModuleNotFoundError reports a codename absent from the resolved graph.
	// It is a specification error.
	ModuleNotFoundError struct {
		Codename string
		// Referrer is the module whose requires or optionals named Codename;
		// empty for requested roots.
		Referrer string
	}

	// DependencyFailedError records why a module was not installed.
	DependencyFailedError struct {
		Module     string
		Dependency string
	}

	// DanglingReferenceError reports a requires or optionals entry that names no module.
	DanglingReferenceError struct {
		Module   string
		Ref      string
		Optional bool
	}

	// CycleError reports modules whose requires form a cycle, together with
	// the modules that depend on them.
	CycleError struct {
		Modules []string
	}
)

func (e *ModuleNotFoundError) Error() string {
	if e.Referrer != "" {
		return fmt.Sprintf("module %q required by %q is not defined for this platform", e.Codename, e.Referrer)
	}
	return fmt.Sprintf("module %q is not defined for this platform", e.Codename)
}

// Unwrap returns ErrModuleNotFound and devfile.ErrSpecification.
func (e *ModuleNotFoundError) Unwrap() []error {
	return []error{ErrModuleNotFound, devfile.ErrSpecification}
}

func (e *DependencyFailedError) Error() string {
	return fmt.Sprintf("%s not installed: required module %s failed", e.Module, e.Dependency)
}

// Unwrap returns ErrDependencyFailed for errors.Is() compatibility.
func (e *DependencyFailedError) Unwrap() error { return ErrDependencyFailed }

func (e *DanglingReferenceError) Error() string {
	field := "requires"
	if e.Optional {
		field = "optionals"
	}
	return fmt.Sprintf("module %q: %s entry %q names no module on this platform", e.Module, field, e.Ref)
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle among requires: %s", strings.Join(e.Modules, ", "))
}
