// SPDX-License-Identifier: MPL-2.0

package module

import (
	"context"
	"errors"
	"io/fs"
	"os"
)

type (
	// App installs software through init, command and config steps.
	App struct {
		Base
		version    string
		executable string
		uninstall  []Action
	}

	// File creates a file at Path with optional content.
	File struct {
		Base
		path     string
		rollback bool
		created  *bool
	}

	// Folder creates a directory at Path.
	Folder struct {
		Base
		path     string
		rollback bool
		created  *bool
	}

	// Link creates a symbolic or hard link at Target pointing to Source.
	Link struct {
		Base
		source   string
		target   string
		symbolic bool
		rollback bool
		created  *bool
	}

	// Group aggregates requires and optionals and installs nothing itself.
	Group struct {
		Base
	}

	// Phony is a named placeholder without an action.
	Phony struct {
		Base
	}
)

// Version returns the declared version, if any.
func (a *App) Version() string { return a.version }

// Executable returns the declared executable name, if any.
func (a *App) Executable() string { return a.executable }

// Uninstall runs the declared uninstall commands in order. Without any, the
// rollback commands of the install steps are run in reverse order.
func (a *App) Uninstall(ctx context.Context) error {
	if len(a.uninstall) == 0 {
		return a.rollbackAll(ctx)
	}
	for _, act := range a.uninstall {
		a.exec.logger.Debug("uninstall", "module", a.codename, "action", act.String())
		if err := act.Run(ctx); err != nil {
			return &UninstallFailedError{Module: a.codename, Step: act.String(), Err: err}
		}
	}
	return nil
}

// Path returns the file location.
func (f *File) Path() string { return f.path }

// Uninstall removes the file if this run created it, unless rollback was
// disabled.
func (f *File) Uninstall(context.Context) error {
	if !f.rollback || !wasCreated(f.created) {
		return nil
	}
	return removeIfExists(f.codename, f.path, f.created)
}

// Path returns the directory location.
func (f *Folder) Path() string { return f.path }

// Uninstall removes the directory if this run created it and it is empty,
// unless rollback was disabled. A directory that still has entries is kept.
func (f *Folder) Uninstall(context.Context) error {
	if !f.rollback || !wasCreated(f.created) {
		return nil
	}
	entries, err := os.ReadDir(f.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &UninstallFailedError{Module: f.codename, Step: "read " + f.path, Err: err}
	}
	if len(entries) > 0 {
		f.exec.logger.Debug("folder not empty, keeping it", "module", f.codename, "path", f.path)
		return nil
	}
	return removeIfExists(f.codename, f.path, f.created)
}

// Source returns the path the link points to.
func (l *Link) Source() string { return l.source }

// Target returns the link location.
func (l *Link) Target() string { return l.target }

// Symbolic reports whether the link is symbolic.
func (l *Link) Symbolic() bool { return l.symbolic }

// Uninstall removes the link if this run created it, unless rollback was
// disabled.
func (l *Link) Uninstall(context.Context) error {
	if !l.rollback || !wasCreated(l.created) {
		return nil
	}
	return removeIfExists(l.codename, l.target, l.created)
}

func wasCreated(created *bool) bool { return created != nil && *created }

func removeIfExists(module, path string, created *bool) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &UninstallFailedError{Module: module, Step: "remove " + path, Err: err}
	}
	*created = false
	return nil
}
