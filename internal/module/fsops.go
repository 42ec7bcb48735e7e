// SPDX-License-Identifier: MPL-2.0

package module

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	defaultFilePerm   fs.FileMode = 0o644
	defaultFolderPerm fs.FileMode = 0o755
)

// parsePermission parses an octal permission string such as "0755".
func parsePermission(s string, def fs.FileMode) (fs.FileMode, error) {
	if s == "" {
		return def, nil
	}
	n, err := strconv.ParseUint(s, 8, 32)
	if err != nil || n > 0o7777 {
		return 0, fmt.Errorf("invalid permission %q", s)
	}
	return fs.FileMode(n), nil
}

// createFolder returns the step creating path and, when rollback is set,
// removing it again. An existing directory is accepted and never removed.
// *created is true while path exists because of this step.
func createFolder(path string, perm fs.FileMode, rollback bool, created *bool) Instruction {
	inst := Instruction{
		Install: Func("create folder "+path, func(context.Context) error {
			if info, err := os.Stat(path); err == nil {
				if !info.IsDir() {
					return fmt.Errorf("%s exists and is not a directory", path)
				}
				return nil
			}
			if err := os.MkdirAll(filepath.Dir(path), defaultFolderPerm); err != nil {
				return err
			}
			if err := os.Mkdir(path, perm); err != nil {
				return err
			}
			// Mkdir is subject to the umask.
			if err := os.Chmod(path, perm); err != nil {
				_ = os.Remove(path)
				return err
			}
			*created = true
			return nil
		}),
	}
	if rollback {
		inst.Rollback = Func("remove folder "+path, func(context.Context) error {
			return removeCreated(path, created)
		})
	}
	return inst
}

// createFile returns the step writing content to path. An existing file is
// accepted only if it already holds content, and is never removed.
func createFile(path, content string, perm fs.FileMode, rollback bool, created *bool) Instruction {
	inst := Instruction{
		Install: Func("create file "+path, func(context.Context) error {
			if existing, err := os.ReadFile(path); err == nil {
				if string(existing) != content {
					return fmt.Errorf("%s already exists with different content", path)
				}
				return nil
			}
			if err := os.MkdirAll(filepath.Dir(path), defaultFolderPerm); err != nil {
				return err
			}
			f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
			if err != nil {
				return err
			}
			if err := writeAndClose(f, content, perm); err != nil {
				_ = os.Remove(path)
				return err
			}
			*created = true
			return nil
		}),
	}
	if rollback {
		inst.Rollback = Func("remove file "+path, func(context.Context) error {
			return removeCreated(path, created)
		})
	}
	return inst
}

// writeAndClose writes content to f, closes it and applies perm, which the
// umask may have narrowed on open.
func writeAndClose(f *os.File, content string, perm fs.FileMode) error {
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Chmod(f.Name(), perm)
}

// createLink returns the step creating target as a link to source. An existing
// symlink to the same source is accepted and never removed.
func createLink(source, target string, symbolic, rollback bool, created *bool) Instruction {
	kind, link := "hard link", os.Link
	if symbolic {
		kind, link = "symlink", os.Symlink
	}
	inst := Instruction{
		Install: Func(fmt.Sprintf("create %s %s -> %s", kind, target, source), func(context.Context) error {
			if symbolic {
				if dest, err := os.Readlink(target); err == nil && dest == source {
					return nil
				}
			}
			if err := link(source, target); err != nil {
				return err
			}
			*created = true
			return nil
		}),
	}
	if rollback {
		inst.Rollback = Func("remove link "+target, func(context.Context) error {
			return removeCreated(target, created)
		})
	}
	return inst
}

// removeCreated removes path if this run created it.
func removeCreated(path string, created *bool) error {
	if !*created {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	*created = false
	return nil
}

// changeOwner returns the step that hands path to owner ("user" or "user:group").
// Ownership changes are not reverted; removing the path undoes them.
func changeOwner(path, owner string) Instruction {
	return Instruction{
		Install: Func(fmt.Sprintf("chown %s %s", owner, path), func(context.Context) error {
			uid, gid, err := lookupOwner(owner)
			if err != nil {
				return err
			}
			return os.Lchown(path, uid, gid)
		}),
	}
}

func lookupOwner(owner string) (uid, gid int, err error) {
	name, group, hasGroup := strings.Cut(owner, ":")
	u, err := user.Lookup(name)
	if err != nil {
		return 0, 0, fmt.Errorf("lookup owner: %w", err)
	}
	uid, err = strconv.Atoi(u.Uid)
	if err != nil {
		return 0, 0, fmt.Errorf("owner %q has no numeric uid", name)
	}
	gidStr := u.Gid
	if hasGroup {
		g, err := user.LookupGroup(group)
		if err != nil {
			return 0, 0, fmt.Errorf("lookup group: %w", err)
		}
		gidStr = g.Gid
	}
	gid, err = strconv.Atoi(gidStr)
	if err != nil {
		return 0, 0, errors.New("group has no numeric gid")
	}
	return uid, gid, nil
}
