// SPDX-License-Identifier: MPL-2.0

package prompt

import (
	"context"
	"fmt"
	"sync"
)

type (
	// Scripted replays canned answers in order and records every question.
	// Running out of answers is an error, so unexpected prompts fail loudly.
	Scripted struct {
		mu       sync.Mutex
		confirms []bool
		selects  []int
		multis   [][]int
		asked    []Question
	}

	// Question is one prompt recorded by Scripted.
	Question struct {
		Kind    string
		Title   string
		Options []string
	}
)

// NewScripted creates an empty script.
func NewScripted() *Scripted {
	return &Scripted{}
}

// OnConfirm queues answers for Confirm.
func (s *Scripted) OnConfirm(answers ...bool) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirms = append(s.confirms, answers...)
	return s
}

// OnSelect queues answers for Select.
func (s *Scripted) OnSelect(answers ...int) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selects = append(s.selects, answers...)
	return s
}

// OnMultiSelect queues one answer for MultiSelect.
func (s *Scripted) OnMultiSelect(answer ...int) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.multis = append(s.multis, answer)
	return s
}

// Asked returns the questions asked so far.
func (s *Scripted) Asked() []Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Question(nil), s.asked...)
}

// Confirm implements Prompter.
func (s *Scripted) Confirm(_ context.Context, title string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.asked = append(s.asked, Question{Kind: "confirm", Title: title})
	if len(s.confirms) == 0 {
		return false, fmt.Errorf("unexpected confirm %q", title)
	}
	answer := s.confirms[0]
	s.confirms = s.confirms[1:]
	return answer, nil
}

// Select implements Prompter.
func (s *Scripted) Select(_ context.Context, title string, options []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.asked = append(s.asked, Question{Kind: "select", Title: title, Options: options})
	if len(s.selects) == 0 {
		return 0, fmt.Errorf("unexpected select %q", title)
	}
	answer := s.selects[0]
	s.selects = s.selects[1:]
	if answer < 0 || answer >= len(options) {
		return 0, fmt.Errorf("scripted answer %d out of range for %q", answer, title)
	}
	return answer, nil
}

// MultiSelect implements Prompter.
func (s *Scripted) MultiSelect(_ context.Context, title string, options []string) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.asked = append(s.asked, Question{Kind: "multiselect", Title: title, Options: options})
	if len(s.multis) == 0 {
		return nil, fmt.Errorf("unexpected multi-select %q", title)
	}
	answer := s.multis[0]
	s.multis = s.multis[1:]
	return answer, nil
}
