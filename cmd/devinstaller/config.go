// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devinstaller/devinstaller/internal/config"
	"github.com/devinstaller/devinstaller/internal/output"
	"github.com/devinstaller/devinstaller/internal/runtime"
)

// newConfigCommand creates the `devinstaller config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage devinstaller configuration",
		Long: `Manage devinstaller configuration.

Configuration is stored in:
  - Linux: ~/.config/devinstaller/config.cue
  - macOS: ~/Library/Application Support/devinstaller/config.cue
  - Windows: %APPDATA%\devinstaller\config.cue

Every value can be overridden with a DEVINSTALLER_* environment variable,
for example DEVINSTALLER_SHELL_RUNTIME=native.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := app.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: app.configPath})
			if err != nil {
				return app.fail(config.DefaultConfig(), err)
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	cfg, path, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: app.configPath})
	if err != nil {
		return app.fail(config.DefaultConfig(), err)
	}

	keyStyle := output.NounStyle
	valueStyle := output.SuccessStyle
	w := app.stdout

	fmt.Fprintln(w, output.TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)
	if path == "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), output.SubtitleStyle.Render("(using defaults)"))
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), path)
	}

	section := func(name string, pairs ...string) {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s:\n", keyStyle.Render(name))
		for i := 0; i+1 < len(pairs); i += 2 {
			fmt.Fprintf(w, "  %s: %s\n", pairs[i], valueStyle.Render(pairs[i+1]))
		}
	}

	section("shell", "runtime", cfg.Shell.Runtime.String(), "native_shell", cfg.Shell.NativeShell)
	section("python", "interpreter", cfg.Python.Interpreter)
	timeout := "none"
	if cfg.CommandTimeout > 0 {
		timeout = cfg.CommandTimeout.String()
	}
	section("commands", "command_timeout", timeout)
	section("ui",
		"verbose", fmt.Sprint(cfg.UI.Verbose),
		"accessible", fmt.Sprint(cfg.UI.Accessible),
		"color_scheme", cfg.UI.ColorScheme.String())
	section("policy", "collision", string(cfg.Policy.Collision), "orphans", string(cfg.Policy.Orphans))

	var available []string
	for _, typ := range runtime.NewDefaultRegistry(cfg.Shell.NativeShell, cfg.Python.Interpreter).Available() {
		available = append(available, string(typ))
	}
	section("runtimes", "available", strings.Join(available, ", "))

	return nil
}

func initConfig(app *App, force bool) error {
	path, written, err := "", false, error(nil)
	if app.configPath != "" {
		path = app.configPath
		if _, statErr := os.Stat(path); force || errors.Is(statErr, fs.ErrNotExist) {
			err = config.Save(config.DefaultConfig(), path)
			written = err == nil
		}
	} else {
		path, written, err = config.CreateDefaultConfig("", force)
	}
	if err != nil {
		return app.fail(config.DefaultConfig(), err)
	}
	if !written {
		fmt.Fprintf(app.stdout, "Config file already exists at: %s\n", path)
		fmt.Fprintln(app.stdout, output.SubtitleStyle.Render("Use --force to overwrite it."))
		return nil
	}
	fmt.Fprintln(app.stdout, output.Checkmark("Created default config file at: "+path))
	return nil
}
