// SPDX-License-Identifier: MPL-2.0

package output

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger returns a logger writing to w. Verbose enables debug records
// with timestamps; otherwise only info and above are shown, without
// decoration.
func NewLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: verbose,
		Prefix:          "devinstaller",
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
