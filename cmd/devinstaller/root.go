// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/devinstaller/devinstaller/internal/output"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree for app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "devinstaller",
		Short: "Install development environments from a devfile",
		Long: output.TitleStyle.Render("devinstaller") + output.SubtitleStyle.Render(" - Install development environments from a devfile") + `

devinstaller reads a devfile describing platforms and modules, picks the
platform matching this machine, and installs the requested modules together
with everything they require. Every module is installed as a transaction: if
a step fails, the steps already run are rolled back.

` + output.SubtitleStyle.Render("Examples:") + `
  devinstaller install                      Pick modules from ./devfile.toml
  devinstaller install -m git -m neovim     Install git and neovim
  devinstaller install "url: https://example.org/devfile.toml" --yes
  devinstaller show -p ubuntu               List modules for the ubuntu platform
  devinstaller validate devfile.yaml        Check a devfile`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default is $HOME/.config/devinstaller/config.cue)")

	rootCmd.AddCommand(newInstallCommand(app))
	rootCmd.AddCommand(newShowCommand(app))
	rootCmd.AddCommand(newValidateCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. It is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(ExitFailure)
	}
}
