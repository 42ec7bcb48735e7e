// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Recorder is a command runner that records every command instead of
// executing it. Commands registered with Fail return an error.
type Recorder struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool
}

// NewRecorder returns a Recorder failing the given commands.
func NewRecorder(fail ...string) *Recorder {
	r := &Recorder{fail: make(map[string]bool)}
	r.Fail(fail...)
	return r
}

// Fail makes the given commands fail from now on.
func (r *Recorder) Fail(commands ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range commands {
		r.fail[c] = true
	}
}

// Run records command and fails it if registered.
func (r *Recorder) Run(ctx context.Context, command string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, command)
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.fail[command] {
		return fmt.Errorf("%s: exit status 1", command)
	}
	return nil
}

// Calls returns the commands run so far, in order.
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}
