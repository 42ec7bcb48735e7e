// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/devinstaller/devinstaller/internal/config"
	"github.com/devinstaller/devinstaller/internal/installer"
	"github.com/devinstaller/devinstaller/internal/issue"
	"github.com/devinstaller/devinstaller/internal/output"
	"github.com/devinstaller/devinstaller/internal/prompt"
	"github.com/devinstaller/devinstaller/internal/runtime"
	"github.com/devinstaller/devinstaller/pkg/devfile"
	hostplatform "github.com/devinstaller/devinstaller/pkg/platform"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root
	// for the CLI layer; every command handler receives it.
	App struct {
		Config   config.Provider
		Prompter prompt.Prompter
		Detector hostplatform.Detector
		Runner   runtime.Runner

		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer

		verbose    bool
		configPath string
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp, except Prompter, Detector
	// and Runner which are chosen per command from the loaded configuration.
	Dependencies struct {
		Config   config.Provider
		Prompter prompt.Prompter
		Detector hostplatform.Detector
		Runner   runtime.Runner
		Stdin    io.Reader
		Stdout   io.Writer
		Stderr   io.Writer
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{
		Config:   deps.Config,
		Prompter: deps.Prompter,
		Detector: deps.Detector,
		Runner:   deps.Runner,
		stdin:    deps.Stdin,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
	}, nil
}

// loadConfig loads the configuration selected by --config and returns a copy
// the command may adjust. A broken config file is reported and the defaults
// are used instead.
func (a *App) loadConfig(ctx context.Context) *config.Config {
	cfg, _, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.configPath})
	if err != nil {
		fmt.Fprintln(a.stderr, output.WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.verbose))
		return config.DefaultConfig()
	}
	if !a.verbose {
		a.verbose = cfg.UI.Verbose
	}
	local := *cfg
	return &local
}

func (a *App) logger() *log.Logger {
	return output.NewLogger(a.stderr, a.verbose)
}

// prompter returns the injected prompter, or a terminal form when stdin is a
// terminal and a non-interactive answerer otherwise.
func (a *App) prompter(cfg *config.Config, yes bool) prompt.Prompter {
	switch {
	case a.Prompter != nil:
		return a.Prompter
	case yes || !output.IsTTY():
		return prompt.NonInteractive{Yes: yes}
	default:
		return &prompt.Form{Accessible: cfg.UI.Accessible}
	}
}

// service builds an installer for one command invocation.
func (a *App) service(cfg *config.Config, p prompt.Prompter, opts ...installer.Option) *installer.Service {
	logger := a.logger()
	runner := a.Runner
	if runner == nil {
		runner = installer.NewDispatcher(cfg, logger, a.stdin, a.stdout, a.stderr)
	}
	base := []installer.Option{
		installer.WithLogger(logger),
		installer.WithPrompter(p),
		installer.WithRunner(runner),
	}
	if a.Detector != nil {
		base = append(base, installer.WithDetector(a.Detector))
	}
	return installer.New(cfg, append(base, opts...)...)
}

// fail renders err with its issue guide and converts it into an ExitError.
func (a *App) fail(cfg *config.Config, err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	id := issue.Classify(err)
	if entry := issue.Get(id); entry != nil {
		rendered, renderErr := entry.Render(string(cfg.UI.ColorScheme))
		if renderErr != nil {
			a.logger().Warn("failed to render issue guide", "issue", id, "error", renderErr)
		} else {
			fmt.Fprint(a.stderr, rendered)
		}
	}

	code := ExitFailure
	if errors.Is(err, devfile.ErrSpecification) || errors.Is(err, devfile.ErrParse) || errors.Is(err, devfile.ErrSchema) ||
		errors.Is(err, prompt.ErrSelectionRequired) {
		code = ExitSpecification
	}
	return &ExitError{Code: code, Err: err}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}
