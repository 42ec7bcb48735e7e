// SPDX-License-Identifier: MPL-2.0

package prompt

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrCancelled is the sentinel wrapped by CancelledError.
	ErrCancelled = errors.New("prompt cancelled")

	// ErrSelectionRequired is returned by NonInteractive.MultiSelect, which
	// has no safe default.
	ErrSelectionRequired = errors.New("a selection is required but prompts are disabled")
)

type (
	// Prompter asks the user questions. Every method blocks until answered.
	Prompter interface {
		Confirm(ctx context.Context, title string) (bool, error)
		// Select returns the index of the chosen option.
		Select(ctx context.Context, title string, options []string) (int, error)
		// MultiSelect returns the indices of the chosen options in ascending order.
		MultiSelect(ctx context.Context, title string, options []string) ([]int, error)
	}

	// CancelledError reports that the user aborted a prompt.
	CancelledError struct {
		Title string
	}

	// NonInteractive answers without asking. Confirm returns Yes and Select
	// picks the first option. MultiSelect refuses to guess.
	NonInteractive struct {
		Yes bool
	}
)

func (e *CancelledError) Error() string {
	return fmt.Sprintf("prompt %q cancelled", e.Title)
}

// Unwrap returns ErrCancelled for errors.Is() compatibility.
func (e *CancelledError) Unwrap() error { return ErrCancelled }

// Confirm returns n.Yes.
func (n NonInteractive) Confirm(context.Context, string) (bool, error) {
	return n.Yes, nil
}

// Select returns 0, or an error when there is nothing to pick.
func (n NonInteractive) Select(_ context.Context, title string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("%s: no options to select from", title)
	}
	return 0, nil
}

// MultiSelect returns ErrSelectionRequired.
func (n NonInteractive) MultiSelect(_ context.Context, title string, _ []string) ([]int, error) {
	return nil, fmt.Errorf("%s: %w", title, ErrSelectionRequired)
}
