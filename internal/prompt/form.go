// SPDX-License-Identifier: MPL-2.0

package prompt

import (
	"context"
	"errors"
	"slices"

	"github.com/charmbracelet/huh"
)

// Form prompts on the terminal with huh forms.
type Form struct {
	// Accessible switches huh to its screen-reader friendly line mode.
	Accessible bool
	// Theme is applied to every form; nil selects huh's Charm theme.
	Theme *huh.Theme
}

// Confirm asks a yes/no question.
func (f *Form) Confirm(ctx context.Context, title string) (bool, error) {
	var ok bool
	field := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok)
	if err := f.run(ctx, title, field); err != nil {
		return false, err
	}
	return ok, nil
}

// Select asks for exactly one option.
func (f *Form) Select(ctx context.Context, title string, options []string) (int, error) {
	var choice int
	field := huh.NewSelect[int]().
		Title(title).
		Options(indexed(options)...).
		Value(&choice)
	if err := f.run(ctx, title, field); err != nil {
		return 0, err
	}
	return choice, nil
}

// MultiSelect asks for any number of options.
func (f *Form) MultiSelect(ctx context.Context, title string, options []string) ([]int, error) {
	var choices []int
	field := huh.NewMultiSelect[int]().
		Title(title).
		Options(indexed(options)...).
		Value(&choices)
	if err := f.run(ctx, title, field); err != nil {
		return nil, err
	}
	slices.Sort(choices)
	return choices, nil
}

func (f *Form) run(ctx context.Context, title string, field huh.Field) error {
	theme := f.Theme
	if theme == nil {
		theme = huh.ThemeCharm()
	}
	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(theme).
		WithAccessible(f.Accessible)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return &CancelledError{Title: title}
		}
		return err
	}
	return nil
}

func indexed(options []string) []huh.Option[int] {
	out := make([]huh.Option[int], len(options))
	for i, opt := range options {
		out[i] = huh.NewOption(opt, i)
	}
	return out
}
