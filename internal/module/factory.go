// SPDX-License-Identifier: MPL-2.0

package module

import (
	"fmt"
	"io/fs"
	"path/filepath"
	goruntime "runtime"

	"github.com/devinstaller/devinstaller/internal/runtime"
	"github.com/devinstaller/devinstaller/pkg/devfile"
	"github.com/devinstaller/devinstaller/pkg/platform"
)

// Factory turns raw devfile modules into typed Modules.
type Factory struct {
	runner    runtime.Runner
	exec      *Executor
	constants map[string]string
}

// NewFactory creates a Factory. constants are the document-level constants;
// each module's own constants are merged over them.
func NewFactory(runner runtime.Runner, exec *Executor, constants map[string]string) *Factory {
	if exec == nil {
		exec = NewExecutor(nil)
	}
	return &Factory{runner: runner, exec: exec, constants: constants}
}

// New builds the Module for raw. Every command is checked for a valid
// "sh: " or "py: " prefix so malformed devfiles fail before anything runs.
func (f *Factory) New(raw *devfile.Module) (Module, error) {
	b := &builder{factory: f, vars: raw.ConstantMap(f.constants), codename: raw.Codename()}

	var m Module
	switch raw.EffectiveKind() {
	case devfile.KindApp:
		m = b.app(raw)
	case devfile.KindFile:
		m = b.file(raw)
	case devfile.KindFolder:
		m = b.folder(raw)
	case devfile.KindLink:
		m = b.link(raw)
	case devfile.KindGroup:
		m = &Group{Base: newBase(raw, f.exec, nil)}
	case devfile.KindPhony:
		m = &Phony{Base: newBase(raw, f.exec, nil)}
	default:
		b.fail(devfile.NewSpecificationError(devfile.CodeInvalidSpec, string(raw.Kind), "unknown module type"))
	}

	if b.err != nil {
		return nil, fmt.Errorf("module %q: %w", b.codename, b.err)
	}
	return m, nil
}

// builder accumulates steps for one module and records the first error.
type builder struct {
	factory  *Factory
	vars     map[string]string
	codename string
	err      error
}

func (b *builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *builder) expand(s string) string {
	return devfile.Expand(s, b.vars)
}

// shellSyntax checks "sh:" scripts at build time so a typo fails before any
// step has run.
var shellSyntax = runtime.NewVirtualRuntime()

func (b *builder) command(raw string) Action {
	cmd := b.expand(raw)
	parsed, err := runtime.ParseCommand(cmd)
	switch {
	case err != nil:
		b.fail(err)
	case parsed.Language == runtime.LanguageShell:
		if err := shellSyntax.Validate(parsed.Script); err != nil {
			b.fail(devfile.NewSpecificationError(devfile.CodeInvalidSpec, cmd, "%v", err))
		}
	}
	return Command(b.factory.runner, cmd)
}

func (b *builder) instruction(raw devfile.Instruction) Instruction {
	inst := Instruction{Install: b.command(raw.Install)}
	if raw.Rollback != "" {
		inst.Rollback = b.command(raw.Rollback)
	}
	return inst
}

func (b *builder) instructions(raw []devfile.Instruction) []Instruction {
	out := make([]Instruction, 0, len(raw))
	for _, r := range raw {
		out = append(out, b.instruction(r))
	}
	return out
}

// wrap places main between the module's init and config steps.
func (b *builder) wrap(raw *devfile.Module, main ...Instruction) []Instruction {
	steps := b.instructions(raw.Init)
	steps = append(steps, main...)
	return append(steps, b.instructions(raw.Config)...)
}

func (b *builder) app(raw *devfile.Module) *App {
	var main []Instruction
	if raw.Command != nil {
		main = append(main, b.instruction(*raw.Command))
	}
	uninstall := make([]Action, 0, len(raw.Uninstall))
	for _, u := range raw.Uninstall {
		uninstall = append(uninstall, b.command(u))
	}
	return &App{
		Base:       newBase(raw, b.factory.exec, b.wrap(raw, main...)),
		version:    raw.Version,
		executable: raw.Executable,
		uninstall:  uninstall,
	}
}

func (b *builder) path(raw *devfile.Module) string {
	dir := b.expand(raw.ParentDir)
	if dir == "" {
		dir = "."
	}
	name := b.expand(raw.Name)
	if goruntime.GOOS == platform.Windows && platform.IsWindowsReservedName(name) {
		b.fail(devfile.NewSpecificationError(devfile.CodeInvalidSpec, name, "file name is reserved on Windows"))
	}
	return filepath.Join(dir, name)
}

func (b *builder) permission(raw *devfile.Module, def fs.FileMode) fs.FileMode {
	perm, err := parsePermission(raw.Permission, def)
	if err != nil {
		b.fail(devfile.NewSpecificationError(devfile.CodeInvalidSpec, raw.Permission, "invalid permission"))
	}
	return perm
}

// owned appends the ownership change, if any, after the create step.
func (b *builder) owned(raw *devfile.Module, path string, create Instruction) []Instruction {
	main := []Instruction{create}
	if raw.Owner != "" {
		main = append(main, changeOwner(path, b.expand(raw.Owner)))
	}
	return main
}

func (b *builder) file(raw *devfile.Module) *File {
	path := b.path(raw)
	rollback := devfile.BoolOr(raw.Rollback, true)
	created := new(bool)
	var main []Instruction
	if devfile.BoolOr(raw.Create, true) {
		perm := b.permission(raw, defaultFilePerm)
		main = b.owned(raw, path, createFile(path, b.expand(raw.Content), perm, rollback, created))
	}
	return &File{
		Base:     newBase(raw, b.factory.exec, b.wrap(raw, main...)),
		path:     path,
		rollback: rollback,
		created:  created,
	}
}

func (b *builder) folder(raw *devfile.Module) *Folder {
	path := b.path(raw)
	rollback := devfile.BoolOr(raw.Rollback, true)
	created := new(bool)
	var main []Instruction
	if devfile.BoolOr(raw.Create, true) {
		perm := b.permission(raw, defaultFolderPerm)
		main = b.owned(raw, path, createFolder(path, perm, rollback, created))
	}
	return &Folder{
		Base:     newBase(raw, b.factory.exec, b.wrap(raw, main...)),
		path:     path,
		rollback: rollback,
		created:  created,
	}
}

func (b *builder) link(raw *devfile.Module) *Link {
	source, target := b.expand(raw.Source), b.expand(raw.Target)
	symbolic := devfile.BoolOr(raw.Symbolic, true)
	rollback := devfile.BoolOr(raw.Rollback, true)
	create := devfile.BoolOr(raw.Create, true)
	created := new(bool)
	if create && (source == "" || target == "") {
		b.fail(devfile.NewSpecificationError(devfile.CodeInvalidSpec, raw.Name, "link module needs both source and target"))
	}
	var main []Instruction
	if create {
		main = b.owned(raw, target, createLink(source, target, symbolic, rollback, created))
	}
	return &Link{
		Base:     newBase(raw, b.factory.exec, b.wrap(raw, main...)),
		source:   source,
		target:   target,
		symbolic: symbolic,
		rollback: rollback,
		created:  created,
	}
}
