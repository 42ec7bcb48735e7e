// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// ShellVirtual runs sh: commands in the embedded mvdan/sh interpreter.
	ShellVirtual ShellRuntime = "virtual"
	// ShellNative runs sh: commands through the host shell.
	ShellNative ShellRuntime = "native"

	// ColorSchemeAuto detects the terminal background.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces the dark style.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces the light style.
	ColorSchemeLight ColorScheme = "light"

	// CollisionPrompt asks which declaration to keep when codenames collide.
	CollisionPrompt CollisionPolicy = "prompt"
	// CollisionFirst keeps the first declaration without asking.
	CollisionFirst CollisionPolicy = "first"

	// OrphansPrompt asks before uninstalling orphans.
	OrphansPrompt OrphanPolicy = "prompt"
	// OrphansRemove uninstalls orphans without asking.
	OrphansRemove OrphanPolicy = "remove"
	// OrphansKeep never uninstalls orphans.
	OrphansKeep OrphanPolicy = "keep"
)

var (
	// ErrInvalidShellRuntime is returned when a ShellRuntime value is not recognized.
	ErrInvalidShellRuntime = errors.New("invalid shell runtime")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidCollisionPolicy is returned when a CollisionPolicy value is not recognized.
	ErrInvalidCollisionPolicy = errors.New("invalid collision policy")
	// ErrInvalidOrphanPolicy is returned when an OrphanPolicy value is not recognized.
	ErrInvalidOrphanPolicy = errors.New("invalid orphan policy")
	// ErrInvalidConfig is the sentinel wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ShellRuntime selects how sh: commands run.
	ShellRuntime string

	// ColorScheme selects the glamour style for rendered Markdown.
	ColorScheme string

	// CollisionPolicy decides how duplicate module codenames are resolved.
	CollisionPolicy string

	// OrphanPolicy decides what happens to orphans after an install run.
	OrphanPolicy string

	// InvalidValueError reports an enum field holding an unknown value.
	InvalidValueError struct {
		Field   string
		Value   string
		Allowed []string
		err     error
	}

	// InvalidConfigError collects every field error of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		Shell ShellConfig `json:"shell" mapstructure:"shell"`
		// Python configures py: commands
		Python PythonConfig `json:"python" mapstructure:"python"`
		// CommandTimeout bounds each command; zero disables it
		CommandTimeout time.Duration `json:"command_timeout" mapstructure:"command_timeout"`
		UI             UIConfig      `json:"ui" mapstructure:"ui"`
		Policy         PolicyConfig  `json:"policy" mapstructure:"policy"`
	}

	// ShellConfig configures sh: commands.
	ShellConfig struct {
		Runtime ShellRuntime `json:"runtime" mapstructure:"runtime"`
		// NativeShell is the host shell used by the native runtime
		NativeShell string `json:"native_shell" mapstructure:"native_shell"`
	}

	// PythonConfig configures py: commands.
	PythonConfig struct {
		Interpreter string `json:"interpreter" mapstructure:"interpreter"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// Accessible switches prompts to plain line-based input
		Accessible  bool        `json:"accessible" mapstructure:"accessible"`
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
	}

	// PolicyConfig holds the non-interactive answers to installer questions.
	PolicyConfig struct {
		Collision CollisionPolicy `json:"collision" mapstructure:"collision"`
		Orphans   OrphanPolicy    `json:"orphans" mapstructure:"orphans"`
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Shell:  ShellConfig{Runtime: ShellVirtual, NativeShell: "sh"},
		Python: PythonConfig{Interpreter: "python3"},
		UI:     UIConfig{ColorScheme: ColorSchemeAuto},
		Policy: PolicyConfig{Collision: CollisionPrompt, Orphans: OrphansPrompt},
	}
}

func (r ShellRuntime) String() string { return string(r) }

// IsValid reports whether r is virtual or native.
func (r ShellRuntime) IsValid() (bool, []error) {
	return oneOf("shell.runtime", string(r), ErrInvalidShellRuntime, ShellVirtual, ShellNative)
}

func (cs ColorScheme) String() string { return string(cs) }

// IsValid reports whether cs is auto, dark or light.
func (cs ColorScheme) IsValid() (bool, []error) {
	return oneOf("ui.color_scheme", string(cs), ErrInvalidColorScheme, ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight)
}

// IsValid reports whether p is prompt or first.
func (p CollisionPolicy) IsValid() (bool, []error) {
	return oneOf("policy.collision", string(p), ErrInvalidCollisionPolicy, CollisionPrompt, CollisionFirst)
}

// IsValid reports whether p is prompt, remove or keep.
func (p OrphanPolicy) IsValid() (bool, []error) {
	return oneOf("policy.orphans", string(p), ErrInvalidOrphanPolicy, OrphansPrompt, OrphansRemove, OrphansKeep)
}

func oneOf[T ~string](field, value string, sentinel error, allowed ...T) (bool, []error) {
	names := make([]string, len(allowed))
	for i, a := range allowed {
		if string(a) == value {
			return true, nil
		}
		names[i] = string(a)
	}
	return false, []error{&InvalidValueError{Field: field, Value: value, Allowed: names, err: sentinel}}
}

// IsValid checks every field of the configuration.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	for _, check := range []func() (bool, []error){
		c.Shell.Runtime.IsValid,
		c.UI.ColorScheme.IsValid,
		c.Policy.Collision.IsValid,
		c.Policy.Orphans.IsValid,
	} {
		if ok, fieldErrs := check(); !ok {
			errs = append(errs, fieldErrs...)
		}
	}
	if c.Shell.Runtime == ShellNative && strings.TrimSpace(c.Shell.NativeShell) == "" {
		errs = append(errs, errors.New("shell.native_shell must be set for the native runtime"))
	}
	if strings.TrimSpace(c.Python.Interpreter) == "" {
		errs = append(errs, errors.New("python.interpreter must not be empty"))
	}
	if c.CommandTimeout < 0 {
		errs = append(errs, fmt.Errorf("command_timeout must not be negative, got %s", c.CommandTimeout))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%s: %q is not one of %s", e.Field, e.Value, strings.Join(e.Allowed, ", "))
}

// Unwrap returns the field's sentinel.
func (e *InvalidValueError) Unwrap() error { return e.err }

func (e *InvalidConfigError) Error() string {
	lines := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		lines[i] = err.Error()
	}
	return "invalid config: " + strings.Join(lines, "; ")
}

// Unwrap returns ErrInvalidConfig and every field error.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}
