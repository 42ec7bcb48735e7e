// SPDX-License-Identifier: MPL-2.0

package module

import (
	"context"

	"github.com/devinstaller/devinstaller/internal/runtime"
)

type (
	// Action is one executable step.
	Action interface {
		Run(ctx context.Context) error
		// String describes the step for logs and dry-run plans.
		String() string
	}

	// Instruction is an install action with an optional compensating action.
	// A nil Rollback means the step's effect is permanent.
	Instruction struct {
		Install  Action
		Rollback Action
	}

	commandAction struct {
		runner  runtime.Runner
		command string
	}

	funcAction struct {
		desc string
		fn   func(ctx context.Context) error
	}
)

// Command returns an Action that runs a prefixed command string.
func Command(runner runtime.Runner, command string) Action {
	return &commandAction{runner: runner, command: command}
}

// Func returns an Action backed by a Go function.
func Func(desc string, fn func(ctx context.Context) error) Action {
	return &funcAction{desc: desc, fn: fn}
}

func (a *commandAction) Run(ctx context.Context) error { return a.runner.Run(ctx, a.command) }

func (a *commandAction) String() string { return a.command }

func (a *funcAction) Run(ctx context.Context) error { return a.fn(ctx) }

func (a *funcAction) String() string { return a.desc }
