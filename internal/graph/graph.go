// SPDX-License-Identifier: MPL-2.0

package graph

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/devinstaller/devinstaller/internal/module"
	"github.com/devinstaller/devinstaller/internal/platform"
	"github.com/devinstaller/devinstaller/pkg/devfile"
)

type (
	// Factory builds typed modules from raw devfile entries.
	Factory interface {
		New(raw *devfile.Module) (module.Module, error)
	}

	// Selector asks the user to pick one of several options and returns its index.
	Selector interface {
		Select(ctx context.Context, title string, options []string) (int, error)
	}

	// Hooks are called as modules change state. Nil hooks are skipped.
	Hooks struct {
		OnStart     func(m module.Module)
		OnDone      func(m module.Module, status Status, err error)
		OnUninstall func(m module.Module, err error)
	}

	// Option configures Build.
	Option func(*Graph)

	// Graph maps codenames to modules for one platform and drives installation.
	Graph struct {
		platform platform.Platform
		nodes    map[string]*node
		order    []string
		selector Selector
		logger   *log.Logger
		hooks    Hooks
		ran      bool
	}

	node struct {
		module module.Module
		status Status
		err    error
	}
)

// WithSelector sets how codename collisions are resolved. Without one the
// first declaration wins.
func WithSelector(s Selector) Option {
	return func(g *Graph) { g.selector = s }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Graph) { g.logger = l }
}

// WithHooks sets progress callbacks.
func WithHooks(h Hooks) Option {
	return func(g *Graph) { g.hooks = h }
}

// Build filters raws by plat, resolves codename collisions and instantiates
// one module per codename.
//
// Declaring supported_platforms while plat is the MOCK platform is a
// specification error. Modules whose supported_platforms do not include plat
// are left out.
func Build(ctx context.Context, raws []devfile.Module, plat platform.Platform, factory Factory, opts ...Option) (*Graph, error) {
	g := &Graph{
		platform: plat,
		nodes:    make(map[string]*node),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}

	candidates := make(map[string][]*devfile.Module)
	for i := range raws {
		raw := &raws[i]
		if len(raw.SupportedPlatforms) > 0 {
			if plat.IsMock() {
				return nil, devfile.NewSpecificationError(devfile.CodeInvalidSpec, raw.Codename(),
					"supported_platforms is set but the devfile declares no platforms")
			}
			if !slices.Contains(raw.SupportedPlatforms, plat.Codename) {
				g.logger.Debug("module excluded on this platform", "module", raw.Codename(), "platform", plat.Codename)
				continue
			}
		}
		codename := raw.Codename()
		if _, seen := candidates[codename]; !seen {
			g.order = append(g.order, codename)
		}
		candidates[codename] = append(candidates[codename], raw)
	}

	for _, codename := range g.order {
		raw, err := g.pick(ctx, codename, candidates[codename])
		if err != nil {
			return nil, err
		}
		m, err := factory.New(raw)
		if err != nil {
			return nil, err
		}
		g.nodes[codename] = &node{module: m}
	}

	return g, nil
}

// pick resolves a codename collision. It is called once per codename at build
// time, never during traversal.
func (g *Graph) pick(ctx context.Context, codename string, cands []*devfile.Module) (*devfile.Module, error) {
	if len(cands) == 1 {
		return cands[0], nil
	}
	if g.selector == nil {
		g.logger.Warn("duplicate module, keeping the first declaration", "module", codename, "count", len(cands))
		return cands[0], nil
	}

	labels := make([]string, len(cands))
	for i, c := range cands {
		labels[i] = fmt.Sprintf("%d. %s (%s)", i+1, c.Name, c.EffectiveKind())
		if c.Description != "" {
			labels[i] += " - " + c.Description
		}
	}
	idx, err := g.selector.Select(ctx, fmt.Sprintf("Several modules are named %q. Which one should be used?", codename), labels)
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(cands) {
		return nil, fmt.Errorf("module selection %d out of range", idx)
	}
	return cands[idx], nil
}

// Platform returns the platform the graph was built for.
func (g *Graph) Platform() platform.Platform { return g.platform }

// Len returns the number of modules.
func (g *Graph) Len() int { return len(g.order) }

// Codenames returns every codename in declaration order.
func (g *Graph) Codenames() []string { return slices.Clone(g.order) }

// Modules returns every module in declaration order.
func (g *Graph) Modules() []module.Module {
	out := make([]module.Module, len(g.order))
	for i, c := range g.order {
		out[i] = g.nodes[c].module
	}
	return out
}

// Lookup returns the module for codename.
func (g *Graph) Lookup(codename string) (module.Module, bool) {
	n, ok := g.nodes[codename]
	if !ok {
		return nil, false
	}
	return n.module, true
}

// Status returns the state of codename in the current run.
func (g *Graph) Status(codename string) Status {
	if n, ok := g.nodes[codename]; ok {
		return n.status
	}
	return StatusUnset
}

// Err returns the failure recorded for codename, if any.
func (g *Graph) Err(codename string) error {
	if n, ok := g.nodes[codename]; ok {
		return n.err
	}
	return nil
}
