// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"regexp"

	"github.com/devinstaller/devinstaller/pkg/devfile"
)

const (
	// LanguageShell marks a command run by a shell runtime.
	LanguageShell Language = "sh"
	// LanguagePython marks a command run by the Python interpreter.
	LanguagePython Language = "py"
)

var commandPattern = regexp.MustCompile(`(?s)^(sh|py): (.*)$`)

type (
	// Language is the prefix of a command string.
	Language string

	// Command is a parsed "<language>: <script>" string.
	Command struct {
		Language Language
		Script   string
		// Raw is the unparsed command string.
		Raw string
	}
)

// ParseCommand splits a command string into its language and script.
// Anything that does not start with "sh: " or "py: " is a specification error.
func ParseCommand(raw string) (Command, error) {
	m := commandPattern.FindStringSubmatch(raw)
	if m == nil {
		return Command{}, devfile.NewSpecificationError(devfile.CodeInvalidSpec, raw,
			`command must start with "sh: " or "py: "`)
	}
	return Command{Language: Language(m[1]), Script: m[2], Raw: raw}, nil
}

func (c Command) String() string { return c.Raw }
