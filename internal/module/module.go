// SPDX-License-Identifier: MPL-2.0

package module

import (
	"context"
	"slices"

	"github.com/devinstaller/devinstaller/pkg/devfile"
)

type (
	// Module is one installable unit.
	Module interface {
		// Codename is the graph key: the alias, else the name.
		Codename() string
		Name() string
		// Display is the label used in user-facing messages.
		Display() string
		Description() string
		Kind() devfile.ModuleKind
		// Requires lists hard dependencies in declaration order.
		Requires() []string
		// Optionals lists soft dependencies in declaration order.
		Optionals() []string
		// Steps returns the instructions Install runs, in order.
		Steps() []Instruction
		Install(ctx context.Context) error
		Uninstall(ctx context.Context) error
	}

	// Base carries the fields shared by every kind and runs Steps through
	// an Executor. Kinds embed it and override Uninstall where they can undo
	// their work.
	Base struct {
		codename    string
		name        string
		display     string
		description string
		kind        devfile.ModuleKind
		requires    []string
		optionals   []string
		steps       []Instruction
		exec        *Executor
	}
)

func newBase(raw *devfile.Module, exec *Executor, steps []Instruction) Base {
	display := raw.Display
	if display == "" {
		display = raw.Name
	}
	return Base{
		codename:    raw.Codename(),
		name:        raw.Name,
		display:     display,
		description: raw.Description,
		kind:        raw.EffectiveKind(),
		requires:    slices.Clone(raw.Requires),
		optionals:   slices.Clone(raw.Optionals),
		steps:       steps,
		exec:        exec,
	}
}

func (b *Base) Codename() string         { return b.codename }
func (b *Base) Name() string             { return b.name }
func (b *Base) Display() string          { return b.display }
func (b *Base) Description() string      { return b.description }
func (b *Base) Kind() devfile.ModuleKind { return b.kind }
func (b *Base) Requires() []string       { return slices.Clone(b.requires) }
func (b *Base) Optionals() []string      { return slices.Clone(b.optionals) }
func (b *Base) Steps() []Instruction     { return slices.Clone(b.steps) }

// Install executes the module's steps transactionally.
func (b *Base) Install(ctx context.Context) error {
	return b.exec.Execute(ctx, b.codename, b.steps)
}

// Uninstall does nothing by default.
func (b *Base) Uninstall(context.Context) error { return nil }

// rollbackAll undoes every step in reverse order.
func (b *Base) rollbackAll(ctx context.Context) error {
	steps := slices.Clone(b.steps)
	slices.Reverse(steps)
	return b.exec.Rollback(ctx, b.codename, steps)
}
