// SPDX-License-Identifier: MPL-2.0

package installer

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/devinstaller/devinstaller/internal/config"
	"github.com/devinstaller/devinstaller/internal/graph"
	"github.com/devinstaller/devinstaller/internal/platform"
	"github.com/devinstaller/devinstaller/internal/prompt"
	"github.com/devinstaller/devinstaller/internal/testutil"
	hostplatform "github.com/devinstaller/devinstaller/pkg/platform"
)

const workstation = `
[[platforms]]
name = "ubuntu"
[platforms.platform_info]
system = "Linux"

[[platforms]]
name = "macos"
[platforms.platform_info]
system = "Darwin"

[[modules]]
name = "a"
module_type = "app"
requires = ["c"]
command = "sh: install a"

[[modules]]
name = "b"
module_type = "group"
optionals = ["d"]

[[modules]]
name = "c"
module_type = "app"
command = "sh: install c"

[[modules]]
name = "d"
module_type = "app"
command = { install = "sh: install d", rollback = "sh: undo d" }

[[modules]]
name = "brew"
module_type = "app"
supported_platforms = ["macos"]
command = "sh: install brew"
`

type fixture struct {
	source   string
	recorder *testutil.Recorder
	prompter *prompt.Scripted
	cfg      *config.Config
}

func newFixture(t *testing.T, devfile string, fail ...string) *fixture {
	t.Helper()
	return &fixture{
		source:   testutil.WriteDevfile(t, t.TempDir(), "devfile.toml", devfile),
		recorder: testutil.NewRecorder(fail...),
		prompter: prompt.NewScripted(),
		cfg:      config.DefaultConfig(),
	}
}

func (f *fixture) service(system string) *Service {
	return New(f.cfg,
		WithRunner(f.recorder),
		WithPrompter(f.prompter),
		WithDetector(hostplatform.StaticDetector{System: system}),
	)
}

func TestInstall_OptionalFailureIsOrphaned(t *testing.T) {
	t.Parallel()

	f := newFixture(t, workstation, "sh: install d")
	f.cfg.Policy.Orphans = config.OrphansKeep

	report, err := f.service("linux").Install(context.Background(), Request{Source: f.source, Modules: []string{"a", "b"}})
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	if report.Platform != "ubuntu" {
		t.Errorf("Platform = %q, want ubuntu", report.Platform)
	}
	if want := []string{"sh: install c", "sh: install a", "sh: install d"}; !slices.Equal(f.recorder.Calls(), want) {
		t.Errorf("calls = %v, want %v", f.recorder.Calls(), want)
	}
	if !slices.Equal(report.Orphans, []string{"d"}) {
		t.Errorf("Orphans = %v, want [d]", report.Orphans)
	}
	if report.Count(graph.StatusSuccess) != 3 || report.Count(graph.StatusFailed) != 1 {
		t.Errorf("counts: %d success, %d failed", report.Count(graph.StatusSuccess), report.Count(graph.StatusFailed))
	}
	if _, ok := report.Errors["d"]; !ok {
		t.Error("d's failure should be recorded")
	}
	if len(report.Uninstalled) != 0 {
		t.Errorf("keep policy uninstalled %v", report.Uninstalled)
	}
	if !strings.Contains(report.Table(), "orphaned") && !strings.Contains(report.Table(), "failed") {
		t.Errorf("table should show d's status:\n%s", report.Table())
	}
}

func TestInstall_OrphanPromptConfirmed(t *testing.T) {
	t.Parallel()

	f := newFixture(t, workstation, "sh: install d")
	f.prompter.OnConfirm(true)

	report, err := f.service("Linux").Install(context.Background(), Request{Source: f.source, Modules: []string{"b"}})
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if !slices.Equal(report.Uninstalled, []string{"d"}) {
		t.Errorf("Uninstalled = %v, want [d]", report.Uninstalled)
	}
	asked := f.prompter.Asked()
	if len(asked) != 1 || asked[0].Kind != "confirm" || !strings.Contains(asked[0].Title, "d") {
		t.Errorf("asked = %+v", asked)
	}
	if !slices.Contains(f.recorder.Calls(), "sh: undo d") {
		t.Errorf("uninstalling d should run its rollback, calls = %v", f.recorder.Calls())
	}
}

func TestInstall_PromptsForRequirements(t *testing.T) {
	t.Parallel()

	f := newFixture(t, workstation)
	f.prompter.OnMultiSelect(2)

	report, err := f.service("Linux").Install(context.Background(), Request{Source: f.source})
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if !slices.Equal(report.Requested, []string{"c"}) {
		t.Errorf("Requested = %v, want [c]", report.Requested)
	}
	asked := f.prompter.Asked()
	if len(asked) != 1 || len(asked[0].Options) != 4 {
		t.Fatalf("asked = %+v, want one multi-select over the four ubuntu modules", asked)
	}
	if slices.ContainsFunc(asked[0].Options, func(o string) bool { return strings.HasPrefix(o, "brew") }) {
		t.Error("macOS-only module offered on ubuntu")
	}
}

func TestInstall_EmptySelection(t *testing.T) {
	t.Parallel()

	f := newFixture(t, workstation)
	f.prompter.OnMultiSelect()

	_, err := f.service("Linux").Install(context.Background(), Request{Source: f.source})
	if !errors.Is(err, ErrNothingSelected) {
		t.Fatalf("error = %v, want ErrNothingSelected", err)
	}
}

func TestInstall_NonInteractiveNeedsModules(t *testing.T) {
	t.Parallel()

	f := newFixture(t, workstation)
	svc := New(f.cfg,
		WithRunner(f.recorder),
		WithPrompter(prompt.NonInteractive{Yes: true}),
		WithDetector(hostplatform.StaticDetector{System: "Linux"}),
	)
	_, err := svc.Install(context.Background(), Request{Source: f.source})
	if !errors.Is(err, prompt.ErrSelectionRequired) {
		t.Fatalf("error = %v, want ErrSelectionRequired", err)
	}
	if len(f.recorder.Calls()) != 0 {
		t.Errorf("nothing should run, got %v", f.recorder.Calls())
	}
}

func TestInstall_DryRun(t *testing.T) {
	t.Parallel()

	f := newFixture(t, workstation)
	report, err := f.service("Linux").Install(context.Background(), Request{Source: f.source, Modules: []string{"a", "b"}, DryRun: true})
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if want := []string{"c", "a", "d", "b"}; !slices.Equal(report.Plan, want) {
		t.Errorf("Plan = %v, want %v", report.Plan, want)
	}
	if len(f.recorder.Calls()) != 0 {
		t.Errorf("dry run executed %v", f.recorder.Calls())
	}
	if !strings.Contains(report.Summary(), "4 module(s)") {
		t.Errorf("Summary() = %q", report.Summary())
	}
}

func TestInstall_RepeatedModulesRunOnce(t *testing.T) {
	t.Parallel()

	f := newFixture(t, workstation)
	report, err := f.service("Linux").Install(context.Background(), Request{Source: f.source, Modules: []string{"a", "b", "a"}})
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if want := []string{"a", "b"}; !slices.Equal(report.Requested, want) {
		t.Errorf("Requested = %v, want %v", report.Requested, want)
	}
	if want := []string{"sh: install c", "sh: install a", "sh: install d"}; !slices.Equal(f.recorder.Calls(), want) {
		t.Errorf("calls = %v, want %v", f.recorder.Calls(), want)
	}
}

func TestInstall_Errors(t *testing.T) {
	t.Parallel()

	t.Run("unknown module", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, workstation)
		_, err := f.service("Linux").Install(context.Background(), Request{Source: f.source, Modules: []string{"brew"}})
		if !errors.Is(err, graph.ErrModuleNotFound) {
			t.Fatalf("error = %v, want ErrModuleNotFound", err)
		}
	})

	t.Run("unsupported host", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, workstation)
		_, err := f.service("Plan9").Install(context.Background(), Request{Source: f.source, Modules: []string{"a"}})
		if !errors.Is(err, platform.ErrPlatformUnsupported) {
			t.Fatalf("error = %v, want ErrPlatformUnsupported", err)
		}
	})

	t.Run("forced platform", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, workstation)
		f.cfg.Policy.Orphans = config.OrphansKeep
		report, err := f.service("Plan9").Install(context.Background(), Request{Source: f.source, Platform: "macos", Modules: []string{"brew"}})
		if err != nil {
			t.Fatalf("Install() error = %v", err)
		}
		if !slices.Equal(f.recorder.Calls(), []string{"sh: install brew"}) {
			t.Errorf("calls = %v", f.recorder.Calls())
		}
		if report.Failed() {
			t.Error("report should not be failed")
		}
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("clean devfile", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, workstation)
		file, checks, err := f.service("Linux").Validate(context.Background(), f.source)
		if err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if file.Digest == "" {
			t.Error("Digest should be set")
		}
		if len(checks) != 2 {
			t.Fatalf("checks = %+v, want one per platform", checks)
		}
		for _, c := range checks {
			if c.Err != nil {
				t.Errorf("%s: %v", c.Platform, c.Err)
			}
		}
		if checks[0].Modules != 4 || checks[1].Modules != 5 {
			t.Errorf("module counts = %d/%d", checks[0].Modules, checks[1].Modules)
		}
	})

	t.Run("dangling reference", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, `
[[modules]]
name = "a"
requires = ["ghost"]

[[modules]]
name = "b"
optionals = ["a"]
`)
		_, checks, err := f.service("Linux").Validate(context.Background(), f.source)
		if err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if len(checks) != 1 || checks[0].Platform != platform.MockCodename {
			t.Fatalf("checks = %+v, want the mock platform only", checks)
		}
		var dangling *graph.DanglingReferenceError
		if !errors.As(checks[0].Err, &dangling) || dangling.Ref != "ghost" {
			t.Fatalf("Err = %v, want a dangling reference to ghost", checks[0].Err)
		}
	})
}
