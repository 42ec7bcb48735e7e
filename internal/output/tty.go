// SPDX-License-Identifier: MPL-2.0

package output

import (
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether both stdin and stdout are attached to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
