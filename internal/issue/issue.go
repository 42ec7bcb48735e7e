// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"errors"
	"io/fs"
	"maps"
	"slices"

	"github.com/charmbracelet/glamour"

	"github.com/devinstaller/devinstaller/internal/graph"
	"github.com/devinstaller/devinstaller/internal/module"
	"github.com/devinstaller/devinstaller/internal/platform"
	"github.com/devinstaller/devinstaller/internal/prompt"
	"github.com/devinstaller/devinstaller/internal/runtime"
	"github.com/devinstaller/devinstaller/pkg/devfile"
)

// Issue identifiers. Zero is reserved for "no guide".
const (
	DevfileNotFoundId Id = iota + 1
	DevfileParseErrorId
	DevfileSchemaInvalidId
	SpecificationErrorId
	PlatformUnsupportedId
	ModuleNotFoundId
	DependencyCycleId
	InstallationFailedId
	RollbackFailedId
	UninstallFailedId
	RuntimeNotAvailableId
	ConfigLoadFailedId
	PermissionDeniedId
	SelectionRequiredId
	CancelledId
)

type (
	// Id identifies an issue in the catalog.
	Id int

	// MarkdownMsg is the guide shown for an issue.
	MarkdownMsg string

	// Issue is one catalog entry.
	Issue struct {
		id    Id
		title string
		mdMsg MarkdownMsg
	}
)

// Id returns the issue identifier.
func (i *Issue) Id() Id { return i.id }

// Title returns a short label for the issue.
func (i *Issue) Title() string { return i.title }

// MarkdownMsg returns the raw guide.
func (i *Issue) MarkdownMsg() MarkdownMsg { return i.mdMsg }

// Render renders the guide with the glamour style at stylePath ("dark",
// "light", "notty", "auto" or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	issues = map[Id]*Issue{
		DevfileNotFoundId: {
			id:    DevfileNotFoundId,
			title: "devfile not found",
			mdMsg: `
# No devfile found!

devinstaller could not read the devfile it was pointed at.

## Things you can try:
- Check the path after ` + "`file: `" + ` and that the file exists
- Point at another devfile:
~~~
$ devinstaller install --spec "file: ~/dotfiles/devfile.toml"
~~~
- Fetch one over HTTP:
~~~
$ devinstaller install --spec "url: https://example.org/devfile.toml"
~~~`,
		},
		DevfileParseErrorId: {
			id:    DevfileParseErrorId,
			title: "devfile could not be parsed",
			mdMsg: `
# The devfile is not well formed!

The file extension decides the format: ` + "`.toml`, `.yaml`/`.yml`, `.json` or `.cue`" + `.

## Things you can try:
- Look at the line and column reported above
- Check that the extension matches the content
- Run the validator for every error at once:
~~~
$ devinstaller validate
~~~`,
		},
		DevfileSchemaInvalidId: {
			id:    DevfileSchemaInvalidId,
			title: "devfile does not match the schema",
			mdMsg: `
# The devfile does not match the schema!

Every offending field is listed above with its path, e.g. ` + "`modules[2].module_type`" + `.

## Common causes:
- A misspelt key (unknown keys are rejected)
- ` + "`module_type`" + ` outside app, file, folder, link, group, phony
- ` + "`platform_info`" + ` missing from a platform entry
- A command without a ` + "`sh: `" + ` or ` + "`py: `" + ` prefix`,
		},
		SpecificationErrorId: {
			id:    SpecificationErrorId,
			title: "devfile is inconsistent",
			mdMsg: `
# The devfile is inconsistent!

It is well formed but refers to something that does not exist.

## Things you can try:
- Make every ` + "`requires`" + ` and ` + "`optionals`" + ` entry name a module codename (the alias, else the name)
- Declare a ` + "`platforms`" + ` block before using ` + "`supported_platforms`" + `
- Prefix every command with ` + "`sh: `" + ` or ` + "`py: `",
		},
		PlatformUnsupportedId: {
			id:    PlatformUnsupportedId,
			title: "platform not supported",
			mdMsg: `
# This machine matches none of the declared platforms!

Platforms are matched on ` + "`platform_info.system`" + ` (case-insensitive) and, when present, ` + "`platform_info.version`" + `.

## Things you can try:
- Force a platform:
~~~
$ devinstaller install --platform linux
~~~
- Add a platform entry for this system to the devfile`,
		},
		ModuleNotFoundId: {
			id:    ModuleNotFoundId,
			title: "module not found",
			mdMsg: `
# Module not found!

The module is not declared, or its ` + "`supported_platforms`" + ` exclude this platform.

## Things you can try:
- List what is available here:
~~~
$ devinstaller show
~~~
- Use the alias when the module declares one`,
		},
		DependencyCycleId: {
			id:    DependencyCycleId,
			title: "dependency cycle",
			mdMsg: `
# Modules require each other in a cycle!

Installation continues past a cycle, but a module may then be installed before what it requires.

## Things you can try:
- Move one edge of the cycle from ` + "`requires`" + ` to ` + "`optionals`" + `
- Split the shared part into its own module`,
		},
		InstallationFailedId: {
			id:    InstallationFailedId,
			title: "installation failed",
			mdMsg: `
# A module failed to install!

Its completed steps were rolled back. Modules that required it were skipped.

## Things you can try:
- Re-run with ` + "`--verbose`" + ` to see every command
- Run the failing command by hand
- Preview the order with ` + "`devinstaller install --dry-run`",
		},
		RollbackFailedId: {
			id:    RollbackFailedId,
			title: "rollback failed",
			mdMsg: `
# A rollback step failed!

devinstaller stopped immediately: the system is in an unknown state.

## Things you can try:
- Inspect what the module's completed steps changed and undo it by hand
- Fix the rollback command in the devfile before installing again`,
		},
		UninstallFailedId: {
			id:    UninstallFailedId,
			title: "uninstall failed",
			mdMsg: `
# An orphaned module could not be uninstalled!

The remaining orphans were left in place.

## Things you can try:
- Check the module's ` + "`uninstall`" + ` commands
- Remove the leftovers by hand`,
		},
		RuntimeNotAvailableId: {
			id:    RuntimeNotAvailableId,
			title: "runtime not available",
			mdMsg: `
# A command runtime is missing!

` + "`sh: `" + ` commands run on the built-in shell or a native shell; ` + "`py: `" + ` commands need a Python interpreter.

## Things you can try:
- Install Python 3 or set ` + "`python.interpreter`" + ` in the config
- Switch shells:
~~~cue
shell: runtime: "virtual"
~~~`,
		},
		ConfigLoadFailedId: {
			id:    ConfigLoadFailedId,
			title: "config could not be loaded",
			mdMsg: `
# The configuration could not be loaded!

## Things you can try:
- Show where it is read from and what is in effect:
~~~
$ devinstaller config show
~~~
- Recreate the defaults:
~~~
$ devinstaller config init --force
~~~`,
		},
		PermissionDeniedId: {
			id:    PermissionDeniedId,
			title: "permission denied",
			mdMsg: `
# Permission denied!

## Things you can try:
- Check ownership of the target directories
- Remove the ` + "`owner`" + ` field from file and folder modules when not running as root`,
		},
		SelectionRequiredId: {
			id:    SelectionRequiredId,
			title: "no modules named",
			mdMsg: `
# Which modules should be installed?

Prompts are disabled (` + "`--yes`" + ` or no terminal), so the modules must be named.

## Things you can try:
- Name them explicitly:
~~~
$ devinstaller install --yes -m git -m neovim
~~~
- List what the devfile offers:
~~~
$ devinstaller show
~~~`,
		},
		CancelledId: {
			id:    CancelledId,
			title: "cancelled",
			mdMsg: `
# Cancelled.

Nothing more was installed. Modules already installed were kept.`,
		},
	}
)

// Get returns the issue for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}

// Values returns every issue ordered by id.
func Values() []*Issue {
	return slices.SortedFunc(maps.Values(issues), func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
}

// Classify picks the guide for err from the errors it wraps. Zero means no
// guide applies.
func Classify(err error) Id {
	var cycle *graph.CycleError
	switch {
	case err == nil:
		return 0
	case errors.Is(err, prompt.ErrCancelled):
		return CancelledId
	case errors.Is(err, prompt.ErrSelectionRequired):
		return SelectionRequiredId
	case errors.Is(err, module.ErrRollbackFailed):
		return RollbackFailedId
	case errors.Is(err, module.ErrUninstallFailed):
		return UninstallFailedId
	case errors.Is(err, module.ErrInstallationFailed), errors.Is(err, graph.ErrDependencyFailed):
		return InstallationFailedId
	case errors.Is(err, runtime.ErrRuntimeUnavailable):
		return RuntimeNotAvailableId
	case errors.Is(err, platform.ErrPlatformUnsupported):
		return PlatformUnsupportedId
	case errors.Is(err, graph.ErrModuleNotFound):
		return ModuleNotFoundId
	case errors.As(err, &cycle):
		return DependencyCycleId
	case errors.Is(err, devfile.ErrParse):
		return DevfileParseErrorId
	case errors.Is(err, devfile.ErrSchema):
		return DevfileSchemaInvalidId
	case errors.Is(err, devfile.ErrSpecification):
		return SpecificationErrorId
	case errors.Is(err, fs.ErrNotExist):
		return DevfileNotFoundId
	case errors.Is(err, fs.ErrPermission):
		return PermissionDeniedId
	default:
		return 0
	}
}
