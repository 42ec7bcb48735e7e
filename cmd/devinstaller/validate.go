// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devinstaller/devinstaller/internal/installer"
	"github.com/devinstaller/devinstaller/internal/output"
	"github.com/devinstaller/devinstaller/internal/prompt"
)

func newValidateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [SPEC]",
		Short: "Check a devfile without installing anything",
		Long: `Check a devfile without installing anything.

The devfile is parsed and checked against the schema, then the module graph
of every declared platform is built and checked for references to undefined
modules and for dependency cycles.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := ""
			if len(args) == 1 {
				source = args[0]
			}
			return runValidate(cmd.Context(), app, source)
		},
	}
}

func runValidate(ctx context.Context, app *App, source string) error {
	cfg := app.loadConfig(ctx)
	svc := app.service(cfg, prompt.NonInteractive{})

	var checks []installer.Check
	var sourceName string
	err := output.RunWithSpinner(ctx, "Validating devfile", true, func(ctx context.Context) error {
		file, cs, err := svc.Validate(ctx, source)
		if err != nil {
			return err
		}
		sourceName, checks = file.Source.String(), cs
		return nil
	})
	if err != nil {
		fmt.Fprintln(app.stdout, output.Cross("devfile is invalid"))
		return app.fail(cfg, err)
	}

	var problems []error
	for _, c := range checks {
		label := fmt.Sprintf("%s (%d modules)", output.NounStyle.Render(c.Platform), c.Modules)
		if c.Err == nil {
			fmt.Fprintln(app.stdout, output.Checkmark(label))
			continue
		}
		fmt.Fprintln(app.stdout, output.Cross(label))
		for _, e := range unjoin(c.Err) {
			fmt.Fprintln(app.stdout, "    "+output.ErrorStyle.Render(e.Error()))
		}
		problems = append(problems, c.Err)
	}

	if len(problems) > 0 {
		return app.fail(cfg, errors.Join(problems...))
	}
	fmt.Fprintln(app.stdout, output.SuccessStyle.Render(sourceName+" is valid"))
	return nil
}

// unjoin splits an errors.Join result back into its parts.
func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
