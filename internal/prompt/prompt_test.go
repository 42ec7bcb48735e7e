// SPDX-License-Identifier: MPL-2.0

package prompt

import (
	"context"
	"errors"
	"slices"
	"testing"
)

var (
	_ Prompter = (*Form)(nil)
	_ Prompter = NonInteractive{}
	_ Prompter = (*Scripted)(nil)
)

func TestNonInteractive(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	yes := NonInteractive{Yes: true}

	if ok, err := yes.Confirm(ctx, "continue?"); err != nil || !ok {
		t.Errorf("Confirm() = %v, %v", ok, err)
	}
	if ok, _ := (NonInteractive{}).Confirm(ctx, "continue?"); ok {
		t.Error("Confirm() without Yes should be false")
	}
	if idx, err := yes.Select(ctx, "pick", []string{"a", "b"}); err != nil || idx != 0 {
		t.Errorf("Select() = %d, %v", idx, err)
	}
	if _, err := yes.Select(ctx, "pick", nil); err == nil {
		t.Error("Select() with no options should fail")
	}
	if got, err := yes.MultiSelect(ctx, "pick", []string{"a", "b", "c"}); !errors.Is(err, ErrSelectionRequired) || len(got) != 0 {
		t.Errorf("MultiSelect() = %v, %v, want ErrSelectionRequired", got, err)
	}
}

func TestScripted(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewScripted().OnConfirm(true, false).OnSelect(1).OnMultiSelect(0, 2)

	if ok, _ := s.Confirm(ctx, "first"); !ok {
		t.Error("first Confirm() should be true")
	}
	if ok, _ := s.Confirm(ctx, "second"); ok {
		t.Error("second Confirm() should be false")
	}
	if _, err := s.Confirm(ctx, "third"); err == nil {
		t.Error("exhausted Confirm() should fail")
	}
	if idx, err := s.Select(ctx, "pick", []string{"a", "b"}); err != nil || idx != 1 {
		t.Errorf("Select() = %d, %v", idx, err)
	}
	if got, err := s.MultiSelect(ctx, "many", []string{"a", "b", "c"}); err != nil || !slices.Equal(got, []int{0, 2}) {
		t.Errorf("MultiSelect() = %v, %v", got, err)
	}

	asked := s.Asked()
	if len(asked) != 5 || asked[3].Kind != "select" || !slices.Equal(asked[3].Options, []string{"a", "b"}) {
		t.Errorf("Asked() = %+v", asked)
	}
}

func TestScripted_SelectOutOfRange(t *testing.T) {
	t.Parallel()

	s := NewScripted().OnSelect(5)
	if _, err := s.Select(context.Background(), "pick", []string{"a"}); err == nil {
		t.Error("out-of-range answer should fail")
	}
}

func TestCancelledError(t *testing.T) {
	t.Parallel()

	err := error(&CancelledError{Title: "pick"})
	if !errors.Is(err, ErrCancelled) {
		t.Errorf("errors.Is(ErrCancelled) = false for %v", err)
	}
}
