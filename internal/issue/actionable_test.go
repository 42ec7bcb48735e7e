// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"

	"github.com/devinstaller/devinstaller/internal/module"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "load devfile"},
			expected: "failed to load devfile",
		},
		{
			name:     "operation and resource",
			err:      &ActionableError{Operation: "load devfile", Resource: "file: ./devfile.toml"},
			expected: "failed to load devfile: file: ./devfile.toml",
		},
		{
			name:     "with cause",
			err:      &ActionableError{Operation: "install modules", Resource: "git", Cause: errors.New("exit status 1")},
			expected: "failed to install modules: git: exit status 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := &module.RollbackFailedError{Module: "git", Step: "sh: undo", Err: errors.New("exit 2")}
	err := WrapWithContext(cause, "install modules", "git")
	if !errors.Is(err, module.ErrRollbackFailed) {
		t.Error("errors.Is should reach the rollback sentinel")
	}
	if err.IssueID() != RollbackFailedId {
		t.Errorf("IssueID() = %d, want %d", err.IssueID(), RollbackFailedId)
	}

	if WrapWithOperation(nil, "x") != nil || WrapWithContext(nil, "x", "y") != nil {
		t.Error("wrapping nil should return nil")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	inner := errors.New("no such file")
	err := NewErrorContext().
		WithOperation("load devfile").
		WithResource("file: ./devfile.toml").
		WithSuggestions("Pass --spec", "Check the path").
		Wrap(&wrapped{inner}).
		Build()

	plain := err.Format(false)
	for _, want := range []string{"failed to load devfile", "• Pass --spec", "• Check the path"} {
		if !strings.Contains(plain, want) {
			t.Errorf("Format(false) missing %q:\n%s", want, plain)
		}
	}
	if strings.Contains(plain, "Error chain") {
		t.Error("Format(false) should not include the error chain")
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "1. wrapped: no such file") || !strings.Contains(verbose, "2. no such file") {
		t.Errorf("Format(true) chain missing:\n%s", verbose)
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	t.Run("no operation", func(t *testing.T) {
		t.Parallel()

		ctx := NewErrorContext().WithResource("x")
		if ctx.Build() != nil {
			t.Error("Build() without operation should be nil")
		}
		if ctx.BuildError() != nil {
			t.Error("BuildError() without operation should be untyped nil")
		}
	})

	t.Run("explicit issue wins", func(t *testing.T) {
		t.Parallel()

		err := NewErrorContext().WithOperation("load config").WithIssue(ConfigLoadFailedId).
			Wrap(errors.New("bad")).Build()
		if err.IssueID() != ConfigLoadFailedId {
			t.Errorf("IssueID() = %d", err.IssueID())
		}
	})

	t.Run("reuse does not share suggestions", func(t *testing.T) {
		t.Parallel()

		ctx := NewErrorContext().WithOperation("install").WithSuggestion("a")
		first := ctx.Build()
		ctx.WithSuggestion("b")
		second := ctx.Build()
		if len(first.Suggestions) != 1 || len(second.Suggestions) != 2 {
			t.Errorf("suggestions = %v / %v", first.Suggestions, second.Suggestions)
		}
		if !first.HasSuggestions() || NewActionableError("x").HasSuggestions() {
			t.Error("HasSuggestions() mismatch")
		}
	})
}

type wrapped struct{ err error }

func (w *wrapped) Error() string { return "wrapped: " + w.err.Error() }
func (w *wrapped) Unwrap() error { return w.err }
