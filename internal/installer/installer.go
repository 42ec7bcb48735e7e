// SPDX-License-Identifier: MPL-2.0

package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/devinstaller/devinstaller/internal/config"
	"github.com/devinstaller/devinstaller/internal/graph"
	"github.com/devinstaller/devinstaller/internal/module"
	"github.com/devinstaller/devinstaller/internal/platform"
	"github.com/devinstaller/devinstaller/internal/prompt"
	"github.com/devinstaller/devinstaller/internal/runtime"
	"github.com/devinstaller/devinstaller/pkg/devfile"
	hostplatform "github.com/devinstaller/devinstaller/pkg/platform"
)

// DefaultSource is used when no devfile source is given.
const DefaultSource = "file: devfile.toml"

// ErrNothingSelected is returned when the requirement selection is empty.
var ErrNothingSelected = errors.New("no modules selected")

type (
	// Request captures one install invocation.
	Request struct {
		// Source is the devfile source string; empty means DefaultSource.
		Source string
		// Platform forces a declared platform codename.
		Platform string
		// Modules are the requested codenames; empty means ask.
		Modules []string
		// DryRun prints the plan without running anything.
		DryRun bool
	}

	// Session is a loaded devfile with its platform and module graph.
	Session struct {
		File     *devfile.File
		Platform platform.Platform
		Graph    *graph.Graph
	}

	// Service runs installer sessions.
	Service struct {
		cfg      *config.Config
		prompter prompt.Prompter
		detector hostplatform.Detector
		runner   runtime.Runner
		logger   *log.Logger
		hooks    graph.Hooks
		loadOpts []devfile.LoadOption
	}

	// Option configures a Service.
	Option func(*Service)
)

// WithPrompter sets how questions are asked.
func WithPrompter(p prompt.Prompter) Option { return func(s *Service) { s.prompter = p } }

// WithDetector replaces host detection.
func WithDetector(d hostplatform.Detector) Option { return func(s *Service) { s.detector = d } }

// WithRunner replaces command execution.
func WithRunner(r runtime.Runner) Option { return func(s *Service) { s.runner = r } }

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(s *Service) { s.logger = l } }

// WithHooks sets graph progress callbacks.
func WithHooks(h graph.Hooks) Option { return func(s *Service) { s.hooks = h } }

// WithLoadOptions passes options to devfile.Load.
func WithLoadOptions(opts ...devfile.LoadOption) Option {
	return func(s *Service) { s.loadOpts = append(s.loadOpts, opts...) }
}

// New creates a Service. Without a runner, commands go through a
// runtime.Dispatcher configured from cfg writing to stdout and stderr.
func New(cfg *config.Config, opts ...Option) *Service {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := &Service{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.prompter == nil {
		s.prompter = prompt.NonInteractive{}
	}
	if s.detector == nil {
		s.detector = hostplatform.NewHostDetector()
	}
	if s.runner == nil {
		s.runner = NewDispatcher(cfg, s.logger, os.Stdin, os.Stdout, os.Stderr)
	}
	return s
}

// NewDispatcher builds the command runner described by cfg.
func NewDispatcher(cfg *config.Config, logger *log.Logger, stdin io.Reader, stdout, stderr io.Writer) *runtime.Dispatcher {
	return runtime.NewDispatcher(
		runtime.NewDefaultRegistry(cfg.Shell.NativeShell, cfg.Python.Interpreter),
		runtime.WithShellRuntime(runtime.RuntimeType(cfg.Shell.Runtime)),
		runtime.WithTimeout(cfg.CommandTimeout),
		runtime.WithIO(stdin, stdout, stderr),
		runtime.WithLogger(logger),
	)
}

// Open loads source, resolves the platform and builds the graph.
func (s *Service) Open(ctx context.Context, source, platformCodename string) (*Session, error) {
	if source == "" {
		source = DefaultSource
	}

	file, err := devfile.Load(ctx, source, s.loadOpts...)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("devfile loaded", "source", file.Source, "sha256", file.Digest, "modules", len(file.Document.Modules))

	resolver := platform.NewResolver(s.detector, s.prompter, s.logger)
	plat, err := resolver.Resolve(ctx, platformCodename, file.Document.Platforms)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("platform resolved", "platform", plat.Codename)

	g, err := s.build(ctx, file.Document, plat, s.selector())
	if err != nil {
		return nil, err
	}

	return &Session{File: file, Platform: plat, Graph: g}, nil
}

func (s *Service) build(ctx context.Context, doc *devfile.Document, plat platform.Platform, sel graph.Selector) (*graph.Graph, error) {
	factory := module.NewFactory(s.runner, module.NewExecutor(s.logger), doc.ConstantMap())
	opts := []graph.Option{graph.WithLogger(s.logger), graph.WithHooks(s.hooks)}
	if sel != nil {
		opts = append(opts, graph.WithSelector(sel))
	}
	return graph.Build(ctx, doc.Modules, plat, factory, opts...)
}

func (s *Service) selector() graph.Selector {
	if s.cfg.Policy.Collision == config.CollisionFirst {
		return nil
	}
	return s.prompter
}

// Install runs the whole session for req. The returned report is non-nil
// whenever the graph was built, including when err reports a fatal failure.
func (s *Service) Install(ctx context.Context, req Request) (*Report, error) {
	sess, err := s.Open(ctx, req.Source, req.Platform)
	if err != nil {
		return nil, err
	}

	roots, err := s.requirements(ctx, sess.Graph, req.Modules)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Source:    sess.File.Source.String(),
		Platform:  sess.Platform.Codename,
		Requested: roots,
		DryRun:    req.DryRun,
	}

	if req.DryRun {
		plan, err := sess.Graph.Plan(roots)
		if err != nil {
			return nil, err
		}
		report.Plan = plan
		return report, nil
	}

	orphans, installErr := sess.Graph.Install(ctx, roots)
	report.collect(sess.Graph)
	if installErr != nil {
		return report, installErr
	}
	report.Orphans = orphans

	return report, s.handleOrphans(ctx, sess.Graph, report)
}

// requirements returns the requested codenames, or asks the user to pick from
// every module in the graph.
func (s *Service) requirements(ctx context.Context, g *graph.Graph, requested []string) ([]string, error) {
	if len(requested) > 0 {
		roots := make([]string, 0, len(requested))
		seen := make(map[string]bool, len(requested))
		for _, r := range requested {
			if _, ok := g.Lookup(r); !ok {
				return nil, &graph.ModuleNotFoundError{Codename: r}
			}
			if !seen[r] {
				seen[r] = true
				roots = append(roots, r)
			}
		}
		return roots, nil
	}

	mods := g.Modules()
	if len(mods) == 0 {
		return nil, ErrNothingSelected
	}
	labels := make([]string, len(mods))
	for i, m := range mods {
		labels[i] = m.Display()
		if m.Description() != "" {
			labels[i] += " - " + m.Description()
		}
	}

	picked, err := s.prompter.MultiSelect(ctx, "Which modules should be installed?", labels)
	if err != nil {
		return nil, err
	}
	if len(picked) == 0 {
		return nil, ErrNothingSelected
	}
	roots := make([]string, 0, len(picked))
	for _, i := range picked {
		if i < 0 || i >= len(mods) {
			return nil, fmt.Errorf("module selection %d out of range", i)
		}
		roots = append(roots, mods[i].Codename())
	}
	return roots, nil
}

func (s *Service) handleOrphans(ctx context.Context, g *graph.Graph, report *Report) error {
	if len(report.Orphans) == 0 {
		return nil
	}

	switch s.cfg.Policy.Orphans {
	case config.OrphansKeep:
		s.logger.Info("keeping orphaned modules", "modules", strings.Join(report.Orphans, ", "))
		return nil
	case config.OrphansPrompt:
		ok, err := s.prompter.Confirm(ctx, fmt.Sprintf("Uninstall %d orphaned module(s): %s?",
			len(report.Orphans), strings.Join(report.Orphans, ", ")))
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	done, err := g.UninstallOrphans(ctx, report.Orphans)
	report.Uninstalled = done
	return err
}
