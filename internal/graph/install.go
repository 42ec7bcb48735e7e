// SPDX-License-Identifier: MPL-2.0

package graph

import (
	"context"
	"errors"
	"slices"

	"github.com/devinstaller/devinstaller/internal/module"
)

// Install installs each requested codename and its dependencies, returning
// the sorted orphan codenames.
//
// Unknown codenames and rollback failures abort the run immediately; ordinary
// install failures are recorded and traversal continues with the next module.
// Cancelling ctx stops before the next root.
func (g *Graph) Install(ctx context.Context, roots []string) ([]string, error) {
	if g.ran {
		return nil, ErrAlreadyInstalled
	}
	g.ran = true

	orphans := make(map[string]bool)
	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := g.traverse(ctx, root, "", orphans); err != nil {
			return nil, err
		}
	}

	return g.settleOrphans(roots, orphans), nil
}

func (g *Graph) traverse(ctx context.Context, codename, referrer string, orphans map[string]bool) error {
	n, ok := g.nodes[codename]
	if !ok {
		return &ModuleNotFoundError{Codename: codename, Referrer: referrer}
	}

	// Reaching a module proves it is still needed.
	delete(orphans, codename)

	if n.status != StatusUnset {
		if n.status == StatusInProgress {
			g.logger.Warn("dependency cycle, continuing without waiting", "module", codename, "from", referrer)
		}
		return nil
	}
	n.status = StatusInProgress

	requires := n.module.Requires()
	for i, dep := range requires {
		if err := g.traverse(ctx, dep, codename, orphans); err != nil {
			return err
		}
		if g.nodes[dep].status == StatusFailed {
			g.fail(n, orphans, &DependencyFailedError{Module: codename, Dependency: dep})
			for _, o := range requires[i:] {
				orphans[o] = true
			}
			return nil
		}
	}

	for _, dep := range n.module.Optionals() {
		if err := g.traverse(ctx, dep, codename, orphans); err != nil {
			return err
		}
		if g.nodes[dep].status == StatusFailed {
			g.logger.Warn("optional dependency failed", "module", codename, "optional", dep)
		}
	}

	if g.hooks.OnStart != nil {
		g.hooks.OnStart(n.module)
	}
	if err := n.module.Install(ctx); err != nil {
		g.fail(n, orphans, err)
		for _, o := range requires {
			orphans[o] = true
		}
		for _, o := range n.module.Optionals() {
			orphans[o] = true
		}
		if errors.Is(err, module.ErrRollbackFailed) {
			return err
		}
		return nil
	}

	n.status = StatusSuccess
	g.logger.Debug("module installed", "module", codename)
	if g.hooks.OnDone != nil {
		g.hooks.OnDone(n.module, StatusSuccess, nil)
	}
	return nil
}

// fail marks n failed. A failed module is itself an orphan candidate:
// nothing that needed it can use it.
func (g *Graph) fail(n *node, orphans map[string]bool, err error) {
	n.status = StatusFailed
	n.err = err
	orphans[n.module.Codename()] = true
	g.logger.Debug("module failed", "module", n.module.Codename(), "err", err)
	if g.hooks.OnDone != nil {
		g.hooks.OnDone(n.module, StatusFailed, err)
	}
}

// settleOrphans drops requested roots and anything a successful root still
// reaches through successful modules, then sorts the rest.
func (g *Graph) settleOrphans(roots []string, orphans map[string]bool) []string {
	live := make(map[string]bool)
	var mark func(codename string)
	mark = func(codename string) {
		n, ok := g.nodes[codename]
		if !ok || live[codename] || n.status != StatusSuccess {
			return
		}
		live[codename] = true
		for _, dep := range n.module.Requires() {
			mark(dep)
		}
		for _, dep := range n.module.Optionals() {
			mark(dep)
		}
	}
	for _, r := range roots {
		mark(r)
	}

	out := make([]string, 0, len(orphans))
	for o := range orphans {
		if live[o] || slices.Contains(roots, o) {
			continue
		}
		out = append(out, o)
	}
	slices.Sort(out)
	return out
}

// UninstallOrphans uninstalls each codename in order and returns the ones
// that were removed. It stops at the first failure.
func (g *Graph) UninstallOrphans(ctx context.Context, codenames []string) ([]string, error) {
	done := make([]string, 0, len(codenames))
	for _, codename := range codenames {
		n, ok := g.nodes[codename]
		if !ok {
			return done, &ModuleNotFoundError{Codename: codename}
		}
		err := n.module.Uninstall(ctx)
		if g.hooks.OnUninstall != nil {
			g.hooks.OnUninstall(n.module, err)
		}
		if err != nil {
			return done, err
		}
		done = append(done, codename)
		g.logger.Debug("module uninstalled", "module", codename)
	}
	return done, nil
}

// Plan returns the order Install would attempt modules in for roots, without
// running anything. Every module is listed once.
func (g *Graph) Plan(roots []string) ([]string, error) {
	seen := make(map[string]bool)
	var plan []string
	var visit func(codename, referrer string) error
	visit = func(codename, referrer string) error {
		n, ok := g.nodes[codename]
		if !ok {
			return &ModuleNotFoundError{Codename: codename, Referrer: referrer}
		}
		if seen[codename] {
			return nil
		}
		seen[codename] = true
		for _, dep := range n.module.Requires() {
			if err := visit(dep, codename); err != nil {
				return err
			}
		}
		for _, dep := range n.module.Optionals() {
			if err := visit(dep, codename); err != nil {
				return err
			}
		}
		plan = append(plan, codename)
		return nil
	}
	for _, r := range roots {
		if err := visit(r, ""); err != nil {
			return nil, err
		}
	}
	return plan, nil
}
