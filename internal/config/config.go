// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	goruntime "runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/devinstaller/devinstaller/internal/issue"
	"github.com/devinstaller/devinstaller/pkg/cueutil"
	"github.com/devinstaller/devinstaller/pkg/platform"
)

const (
	// AppName is the application name.
	AppName = "devinstaller"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment overrides, e.g. DEVINSTALLER_UI_VERBOSE.
	EnvPrefix = "DEVINSTALLER"
)

//go:embed config_schema.cue
var configSchema []byte

// ConfigDir returns the devinstaller configuration directory using
// platform conventions.
//
//nolint:revive // ConfigDir reads better than Dir at call sites
func ConfigDir() (string, error) {
	var base string

	switch goruntime.GOOS {
	case platform.Windows:
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(home, "Library", "Application Support")
	default:
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			base = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(base, AppName), nil
}

// Load reads the configuration described by opts. It returns the config and
// the file it came from, which is empty when only defaults and environment
// overrides apply.
func Load(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", fmt.Errorf("load config canceled: %w", err)
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := resolvePath(opts)
	if err != nil {
		return nil, "", err
	}
	if path != "" {
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, "", loadError(path, err).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Compare it with 'devinstaller config show'").
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", loadError(path, err).
			WithSuggestion("Check DEVINSTALLER_* environment variables").
			BuildError()
	}
	if ok, errs := cfg.IsValid(); !ok {
		return nil, "", loadError(path, errs[0]).
			WithSuggestion("Run 'devinstaller config init --force' to restore the defaults").
			BuildError()
	}

	return &cfg, path, nil
}

func loadError(path string, err error) *issue.ErrorContext {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithIssue(issue.ConfigLoadFailedId).
		Wrap(err)
}

// resolvePath picks the explicit file, then the config directory, then the
// working directory. A missing explicit file is an error; otherwise no file
// means defaults.
func resolvePath(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", loadError(opts.ConfigFilePath, fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				WithSuggestion("Verify the --config path").
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	dir := opts.ConfigDirPath
	if dir == "" {
		var err error
		if dir, err = ConfigDir(); err != nil {
			return "", err
		}
	}
	for _, candidate := range []string{
		filepath.Join(dir, ConfigFileName+"."+ConfigFileExt),
		ConfigFileName + "." + ConfigFileExt,
	} {
		if fileExists(candidate) {
			return candidate, nil
		}
	}
	return "", nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("shell.runtime", string(d.Shell.Runtime))
	v.SetDefault("shell.native_shell", d.Shell.NativeShell)
	v.SetDefault("python.interpreter", d.Python.Interpreter)
	v.SetDefault("command_timeout", d.CommandTimeout.String())
	v.SetDefault("ui.verbose", d.UI.Verbose)
	v.SetDefault("ui.accessible", d.UI.Accessible)
	v.SetDefault("ui.color_scheme", string(d.UI.ColorScheme))
	v.SetDefault("policy.collision", string(d.Policy.Collision))
	v.SetDefault("policy.orphans", string(d.Policy.Orphans))
}

// loadCUEIntoViper validates a CUE file against #Config and merges it into v.
// Fields are optional, so validation is not concrete.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	unified, err := cueutil.Unify(configSchema, "#Config", cueutil.FromBytes(data),
		cueutil.WithFilename(path), cueutil.WithConcrete(false))
	if err != nil {
		return err
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return cueutil.FormatError(err, path)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default config into dir (ConfigDir when
// empty) and returns its path. An existing file is kept unless force is set.
func CreateDefaultConfig(dir string, force bool) (string, bool, error) {
	if dir == "" {
		var err error
		if dir, err = ConfigDir(); err != nil {
			return "", false, err
		}
	}
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if !force && fileExists(path) {
		return path, false, nil
	}
	if err := Save(DefaultConfig(), path); err != nil {
		return "", false, err
	}
	return path, true, nil
}

// Save writes cfg to path as CUE.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(GenerateCUE(cfg)), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateCUE renders cfg in the config file format.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// devinstaller configuration\n\n")

	sb.WriteString("shell: {\n")
	fmt.Fprintf(&sb, "\truntime:      %q\n", cfg.Shell.Runtime)
	fmt.Fprintf(&sb, "\tnative_shell: %q\n", cfg.Shell.NativeShell)
	sb.WriteString("}\n\n")

	sb.WriteString("python: {\n")
	fmt.Fprintf(&sb, "\tinterpreter: %q\n", cfg.Python.Interpreter)
	sb.WriteString("}\n\n")

	fmt.Fprintf(&sb, "command_timeout: %q\n\n", cfg.CommandTimeout.String())

	sb.WriteString("ui: {\n")
	fmt.Fprintf(&sb, "\tverbose:      %v\n", cfg.UI.Verbose)
	fmt.Fprintf(&sb, "\taccessible:   %v\n", cfg.UI.Accessible)
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	sb.WriteString("}\n\n")

	sb.WriteString("policy: {\n")
	fmt.Fprintf(&sb, "\tcollision: %q\n", cfg.Policy.Collision)
	fmt.Fprintf(&sb, "\torphans:   %q\n", cfg.Policy.Orphans)
	sb.WriteString("}\n")

	return sb.String()
}
