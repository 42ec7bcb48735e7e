// SPDX-License-Identifier: MPL-2.0

package output

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh/spinner"
)

// RunWithSpinner runs action while a spinner titled title is shown. Without a
// terminal, or when disabled, action runs directly.
//
// action must not read stdin or write to stdout while the spinner is up.
func RunWithSpinner(ctx context.Context, title string, enabled bool, action func(ctx context.Context) error) error {
	if !enabled || !IsTTY() {
		return action(ctx)
	}

	result := make(chan error, 1)
	done := make(chan struct{})
	go func() {
		result <- action(ctx)
		close(done)
	}()

	spinnerErr := spinner.New().
		Title(title).
		Context(ctx).
		Action(func() { <-done }).
		Run()

	// The spinner stops early on ctx; the action is still awaited.
	if err := <-result; err != nil {
		return err
	}
	if spinnerErr != nil && ctx.Err() == nil {
		return fmt.Errorf("spinner: %w", spinnerErr)
	}
	return nil
}
