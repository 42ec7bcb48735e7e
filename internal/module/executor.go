// SPDX-License-Identifier: MPL-2.0

package module

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// Executor runs instruction lists with all-or-nothing semantics.
type Executor struct {
	logger *log.Logger
}

// NewExecutor creates an Executor. A nil logger discards output.
func NewExecutor(logger *log.Logger) *Executor {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Executor{logger: logger}
}

// Execute runs each instruction's install action in order. When step i fails,
// steps [0, i) are rolled back in reverse order and *InstallationFailedError is
// returned. If a rollback action fails, *RollbackFailedError is returned and
// no further rollbacks are attempted. An empty list succeeds.
func (e *Executor) Execute(ctx context.Context, module string, insts []Instruction) error {
	for i, inst := range insts {
		e.logger.Debug("step", "module", module, "index", i, "action", inst.Install.String())
		err := inst.Install.Run(ctx)
		if err == nil {
			continue
		}

		e.logger.Warn("step failed, rolling back", "module", module, "action", inst.Install.String(), "err", err)
		done := make([]Instruction, i)
		for j := range i {
			done[j] = insts[i-1-j]
		}
		if rbErr := e.Rollback(ctx, module, done); rbErr != nil {
			if rf, ok := rbErr.(*RollbackFailedError); ok {
				rf.Cause = err
			}
			return rbErr
		}
		return &InstallationFailedError{Module: module, Step: inst.Install.String(), Err: err}
	}
	return nil
}

// Rollback runs the rollback action of each instruction in the order given,
// skipping instructions without one. The first failure stops the rollback.
//
// Rollback actions run even if ctx has been cancelled.
func (e *Executor) Rollback(ctx context.Context, module string, insts []Instruction) error {
	ctx = context.WithoutCancel(ctx)
	for _, inst := range insts {
		if inst.Rollback == nil {
			e.logger.Debug("no rollback for step", "module", module, "action", inst.Install.String())
			continue
		}
		e.logger.Debug("rollback", "module", module, "action", inst.Rollback.String())
		if err := inst.Rollback.Run(ctx); err != nil {
			return &RollbackFailedError{Module: module, Step: inst.Rollback.String(), Err: err}
		}
	}
	return nil
}
