// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devinstaller/devinstaller/internal/config"
	"github.com/devinstaller/devinstaller/internal/graph"
	"github.com/devinstaller/devinstaller/internal/installer"
	"github.com/devinstaller/devinstaller/internal/module"
	"github.com/devinstaller/devinstaller/internal/output"
)

type installOptions struct {
	platform string
	modules  []string
	yes      bool
	dryRun   bool
}

func newInstallCommand(app *App) *cobra.Command {
	var opts installOptions

	installCmd := &cobra.Command{
		Use:   "install [SPEC]",
		Short: "Install modules from a devfile",
		Long: `Install modules from a devfile.

SPEC selects the devfile as "<method>: <location>" where method is file, url
or data. A bare path is read as a file. The default is "` + installer.DefaultSource + `".

Without --module the modules to install are picked interactively. Modules
left behind by failed installs are offered for removal afterwards.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := ""
			if len(args) == 1 {
				source = args[0]
			}
			return runInstall(cmd.Context(), app, source, opts)
		},
	}

	installCmd.Flags().StringVarP(&opts.platform, "platform", "p", "", "platform codename to install for (default: detected)")
	installCmd.Flags().StringArrayVarP(&opts.modules, "module", "m", nil, "module codename to install (repeatable)")
	installCmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "answer yes to every question")
	installCmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the install plan without running anything")

	return installCmd
}

func runInstall(ctx context.Context, app *App, source string, opts installOptions) error {
	cfg := app.loadConfig(ctx)
	if opts.yes {
		cfg.Policy.Collision = config.CollisionFirst
	}

	svc := app.service(cfg, app.prompter(cfg, opts.yes), installer.WithHooks(progressHooks(app)))
	report, err := svc.Install(ctx, installer.Request{
		Source:   source,
		Platform: opts.platform,
		Modules:  opts.modules,
		DryRun:   opts.dryRun,
	})
	if report != nil {
		fmt.Fprintln(app.stdout)
		fmt.Fprintln(app.stdout, report.Table())
		fmt.Fprintln(app.stdout, report.Summary())
	}
	if err != nil {
		return app.fail(cfg, err)
	}
	if report.Failed() {
		return &ExitError{Code: ExitFailure, Err: fmt.Errorf("%d module(s) failed to install", report.Count(graph.StatusFailed))}
	}
	return nil
}

// progressHooks prints one line per finished module.
func progressHooks(app *App) graph.Hooks {
	return graph.Hooks{
		OnStart: func(m module.Module) {
			if app.verbose {
				fmt.Fprintln(app.stderr, output.DimStyle.Render("installing "+m.Codename()))
			}
		},
		OnDone: func(m module.Module, status graph.Status, _ error) {
			word := output.StatusInstalled
			if status == graph.StatusFailed {
				word = output.StatusFailed
			}
			fmt.Fprintln(app.stdout, output.FormatModuleLine(m.Codename(), word))
		},
		OnUninstall: func(m module.Module, err error) {
			word := output.StatusUninstalled
			if err != nil {
				word = output.StatusFailed
			}
			fmt.Fprintln(app.stdout, output.FormatModuleLine(m.Codename(), word))
		},
	}
}
