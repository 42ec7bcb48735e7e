// SPDX-License-Identifier: MPL-2.0

package installer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/devinstaller/devinstaller/internal/graph"
	"github.com/devinstaller/devinstaller/internal/output"
	"github.com/devinstaller/devinstaller/pkg/devfile"
)

type (
	// Report summarizes an install run.
	Report struct {
		Source    string
		Platform  string
		Requested []string
		DryRun    bool
		// Plan is the dependency-first order of a dry run.
		Plan []string
		// Results lists every visited module in declaration order.
		Results     []Result
		Orphans     []string
		Uninstalled []string
		// Errors maps failed codenames to their failure.
		Errors map[string]error
	}

	// Result is the outcome for one module.
	Result struct {
		Codename string
		Kind     devfile.ModuleKind
		Status   graph.Status
		Err      error
	}
)

func (r *Report) collect(g *graph.Graph) {
	r.Errors = make(map[string]error)
	for _, m := range g.Modules() {
		c := m.Codename()
		st := g.Status(c)
		if st == graph.StatusUnset {
			continue
		}
		res := Result{Codename: c, Kind: m.Kind(), Status: st, Err: g.Err(c)}
		r.Results = append(r.Results, res)
		if res.Err != nil {
			r.Errors[c] = res.Err
		}
	}
}

// Count returns how many modules ended in st.
func (r *Report) Count(st graph.Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == st {
			n++
		}
	}
	return n
}

// Failed reports whether any module failed.
func (r *Report) Failed() bool {
	return r.Count(graph.StatusFailed) > 0
}

// statusWord maps a graph status to the word printed for it.
func (r *Report) statusWord(res Result) string {
	switch {
	case slices.Contains(r.Uninstalled, res.Codename):
		return output.StatusUninstalled
	case res.Status == graph.StatusFailed:
		return output.StatusFailed
	case slices.Contains(r.Orphans, res.Codename):
		return output.StatusOrphaned
	case res.Status == graph.StatusSuccess:
		return output.StatusInstalled
	default:
		return output.StatusSkipped
	}
}

// Table renders one row per visited module, or the plan for a dry run.
func (r *Report) Table() string {
	if r.DryRun {
		t := output.NewTable("#", "MODULE", "STATUS")
		t.StatusColumn = 2
		for i, c := range r.Plan {
			t.Row(fmt.Sprint(i+1), c, output.StatusPlanned)
		}
		return t.String()
	}

	t := output.NewTable("MODULE", "KIND", "STATUS", "DETAIL")
	t.StatusColumn = 2
	for _, res := range r.Results {
		detail := ""
		if res.Err != nil {
			detail = firstLine(res.Err.Error())
		}
		t.Row(res.Codename, string(res.Kind), r.statusWord(res), detail)
	}
	return t.String()
}

// Summary is a one-line count of the outcome.
func (r *Report) Summary() string {
	if r.DryRun {
		return fmt.Sprintf("%d module(s) would be installed on %s", len(r.Plan), r.Platform)
	}
	parts := []string{
		output.SuccessStyle.Render(fmt.Sprintf("%d installed", r.Count(graph.StatusSuccess))),
	}
	if n := r.Count(graph.StatusFailed); n > 0 {
		parts = append(parts, output.ErrorStyle.Render(fmt.Sprintf("%d failed", n)))
	}
	if len(r.Orphans) > 0 {
		parts = append(parts, output.WarningStyle.Render(fmt.Sprintf("%d orphaned", len(r.Orphans))))
	}
	if len(r.Uninstalled) > 0 {
		parts = append(parts, fmt.Sprintf("%d uninstalled", len(r.Uninstalled)))
	}
	return strings.Join(parts, ", ") + " on " + output.NounStyle.Render(r.Platform)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
