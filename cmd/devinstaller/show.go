// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/devinstaller/devinstaller/internal/config"
	"github.com/devinstaller/devinstaller/internal/installer"
	"github.com/devinstaller/devinstaller/internal/output"
	"github.com/devinstaller/devinstaller/internal/prompt"
)

func newShowCommand(app *App) *cobra.Command {
	var platformCodename string

	showCmd := &cobra.Command{
		Use:     "show [SPEC]",
		Aliases: []string{"list"},
		Short:   "List the platforms and modules of a devfile",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := ""
			if len(args) == 1 {
				source = args[0]
			}
			return runShow(cmd.Context(), app, source, platformCodename)
		},
	}
	showCmd.Flags().StringVarP(&platformCodename, "platform", "p", "", "platform whose modules are listed (default: detected)")

	return showCmd
}

func runShow(ctx context.Context, app *App, source, platformCodename string) error {
	cfg := app.loadConfig(ctx)
	cfg.Policy.Collision = config.CollisionFirst
	svc := app.service(cfg, prompt.NonInteractive{})

	var sess *installer.Session
	err := output.RunWithSpinner(ctx, "Loading devfile", true, func(ctx context.Context) error {
		var err error
		sess, err = svc.Open(ctx, source, platformCodename)
		return err
	})
	if err != nil {
		return app.fail(cfg, err)
	}

	rendered, err := glamour.Render(showMarkdown(sess), string(cfg.UI.ColorScheme))
	if err != nil {
		return app.fail(cfg, fmt.Errorf("render devfile summary: %w", err))
	}
	fmt.Fprint(app.stdout, rendered)
	return nil
}

// showMarkdown describes the devfile's platforms and the modules available on
// the session's platform.
func showMarkdown(sess *installer.Session) string {
	doc := sess.File.Document
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", mdEscape(sess.File.Source.String()))
	if doc.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", doc.Description)
	}
	if doc.Author != "" || doc.Version != "" {
		fmt.Fprintf(&sb, "Version `%s` by %s\n\n", or(doc.Version, "-"), or(doc.Author, "unknown"))
	}

	sb.WriteString("## Platforms\n\n")
	if len(doc.Platforms) == 0 {
		sb.WriteString("_No platforms declared; every module is available._\n\n")
	} else {
		sb.WriteString("| Name | System | Version | Description |\n|---|---|---|---|\n")
		for _, p := range doc.Platforms {
			name := mdEscape(p.Name)
			if p.Name == sess.Platform.Codename {
				name = "**" + name + "**"
			}
			fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", name, mdEscape(p.Info.System), or(mdEscape(p.Info.Version), "any"), mdEscape(p.Description))
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "## Modules for %s\n\n", mdEscape(sess.Platform.Codename))
	mods := sess.Graph.Modules()
	if len(mods) == 0 {
		sb.WriteString("_No modules._\n")
		return sb.String()
	}
	sb.WriteString("| Module | Kind | Requires | Optionals | Description |\n|---|---|---|---|---|\n")
	for _, m := range mods {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
			mdEscape(m.Codename()),
			m.Kind(),
			mdEscape(strings.Join(m.Requires(), ", ")),
			mdEscape(strings.Join(m.Optionals(), ", ")),
			mdEscape(m.Description()))
	}
	return sb.String()
}

func mdEscape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
