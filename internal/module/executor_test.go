// SPDX-License-Identifier: MPL-2.0

package module

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
)

// recorder is an Action factory that logs every run and fails on demand.
type recorder struct {
	calls []string
	fail  map[string]bool
}

func newRecorder(fail ...string) *recorder {
	r := &recorder{fail: map[string]bool{}}
	for _, f := range fail {
		r.fail[f] = true
	}
	return r
}

func (r *recorder) Run(_ context.Context, command string) error {
	r.calls = append(r.calls, command)
	if r.fail[command] {
		return fmt.Errorf("%s: exit status 1", command)
	}
	return nil
}

func (r *recorder) step(install, rollback string) Instruction {
	inst := Instruction{Install: Command(r, install)}
	if rollback != "" {
		inst.Rollback = Command(r, rollback)
	}
	return inst
}

func TestExecutor_Execute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		steps     [][2]string
		fail      []string
		wantCalls []string
		wantErr   error
	}{
		{
			name:  "empty list succeeds",
			steps: nil,
		},
		{
			name:      "all steps succeed",
			steps:     [][2]string{{"i1", "r1"}, {"i2", "r2"}},
			wantCalls: []string{"i1", "i2"},
		},
		{
			name:      "failure rolls back completed steps in reverse",
			steps:     [][2]string{{"i1", "r1"}, {"i2", "r2"}, {"i3", "r3"}},
			fail:      []string{"i3"},
			wantCalls: []string{"i1", "i2", "i3", "r2", "r1"},
			wantErr:   ErrInstallationFailed,
		},
		{
			name:      "steps without rollback are skipped",
			steps:     [][2]string{{"i1", "r1"}, {"i2", ""}, {"i3", "r3"}},
			fail:      []string{"i3"},
			wantCalls: []string{"i1", "i2", "i3", "r1"},
			wantErr:   ErrInstallationFailed,
		},
		{
			name:      "first step failure rolls back nothing",
			steps:     [][2]string{{"i1", "r1"}, {"i2", "r2"}},
			fail:      []string{"i1"},
			wantCalls: []string{"i1"},
			wantErr:   ErrInstallationFailed,
		},
		{
			name:      "rollback failure stops further rollbacks",
			steps:     [][2]string{{"i1", "r1"}, {"i2", "r2"}, {"i3", "r3"}},
			fail:      []string{"i3", "r2"},
			wantCalls: []string{"i1", "i2", "i3", "r2"},
			wantErr:   ErrRollbackFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := newRecorder(tt.fail...)
			var steps []Instruction
			for _, s := range tt.steps {
				steps = append(steps, rec.step(s[0], s[1]))
			}

			err := NewExecutor(nil).Execute(context.Background(), "mod", steps)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Execute() error = %v, want %v", err, tt.wantErr)
			}
			if !slices.Equal(rec.calls, tt.wantCalls) {
				t.Errorf("calls = %v, want %v", rec.calls, tt.wantCalls)
			}
		})
	}
}

func TestExecutor_RollbackFailedCarriesCause(t *testing.T) {
	t.Parallel()

	rec := newRecorder("i2", "r1")
	steps := []Instruction{rec.step("i1", "r1"), rec.step("i2", "r2")}

	err := NewExecutor(nil).Execute(context.Background(), "mod", steps)
	var rf *RollbackFailedError
	if !errors.As(err, &rf) {
		t.Fatalf("Execute() error = %v, want *RollbackFailedError", err)
	}
	if rf.Module != "mod" || rf.Step != "r1" || rf.Cause == nil {
		t.Errorf("RollbackFailedError = %+v", rf)
	}
	if errors.Is(err, ErrInstallationFailed) {
		t.Error("rollback failure must not also read as a plain installation failure")
	}
}

func TestExecutor_RollbackIgnoresCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	var sawCancelled bool
	steps := []Instruction{
		{
			Install:  Func("i1", func(context.Context) error { return nil }),
			Rollback: Func("r1", func(ctx context.Context) error { sawCancelled = ctx.Err() != nil; return nil }),
		},
		{
			Install: Func("i2", func(context.Context) error { cancel(); return context.Canceled }),
		},
	}

	err := NewExecutor(nil).Execute(ctx, "mod", steps)
	if !errors.Is(err, ErrInstallationFailed) || !errors.Is(err, context.Canceled) {
		t.Fatalf("Execute() error = %v", err)
	}
	if sawCancelled {
		t.Error("rollback ran with a cancelled context")
	}
}

func TestExecutor_Rollback(t *testing.T) {
	t.Parallel()

	rec := newRecorder()
	steps := []Instruction{rec.step("i3", "r3"), rec.step("i2", ""), rec.step("i1", "r1")}

	if err := NewExecutor(nil).Rollback(context.Background(), "mod", steps); err != nil {
		t.Fatalf("Rollback() error = %v", err)
	}
	if want := []string{"r3", "r1"}; !slices.Equal(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}
