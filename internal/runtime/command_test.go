// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"testing"

	"github.com/devinstaller/devinstaller/pkg/devfile"
)

func TestParseCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		wantLang Language
		wantBody string
		wantErr  bool
	}{
		{name: "shell", raw: "sh: echo hi", wantLang: LanguageShell, wantBody: "echo hi"},
		{name: "python", raw: "py: print('hi')", wantLang: LanguagePython, wantBody: "print('hi')"},
		{name: "multi-line body", raw: "sh: echo a\necho b", wantLang: LanguageShell, wantBody: "echo a\necho b"},
		{name: "empty body", raw: "sh: ", wantLang: LanguageShell, wantBody: ""},
		{name: "missing prefix", raw: "echo hi", wantErr: true},
		{name: "unknown prefix", raw: "rb: puts 1", wantErr: true},
		{name: "missing space", raw: "sh:echo hi", wantErr: true},
		{name: "uppercase prefix", raw: "SH: echo hi", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd, err := ParseCommand(tt.raw)
			if tt.wantErr {
				var specErr *devfile.SpecificationError
				if !errors.As(err, &specErr) {
					t.Fatalf("ParseCommand(%q) error = %v, want *SpecificationError", tt.raw, err)
				}
				if specErr.Subject != tt.raw {
					t.Errorf("Subject = %q, want %q", specErr.Subject, tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCommand(%q) error = %v", tt.raw, err)
			}
			if cmd.Language != tt.wantLang || cmd.Script != tt.wantBody {
				t.Errorf("ParseCommand(%q) = %+v", tt.raw, cmd)
			}
			if cmd.String() != tt.raw {
				t.Errorf("String() = %q, want %q", cmd.String(), tt.raw)
			}
		})
	}
}

func TestExitCode_IsValid(t *testing.T) {
	t.Parallel()

	for _, code := range []ExitCode{0, 1, 255} {
		if ok, errs := code.IsValid(); !ok || errs != nil {
			t.Errorf("ExitCode(%d).IsValid() = %v, %v", code, ok, errs)
		}
	}
	for _, code := range []ExitCode{-1, 256} {
		ok, errs := code.IsValid()
		if ok || len(errs) != 1 || !errors.Is(errs[0], ErrInvalidExitCode) {
			t.Errorf("ExitCode(%d).IsValid() = %v, %v", code, ok, errs)
		}
	}
}
