// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/devinstaller/devinstaller/internal/issue"
	"github.com/devinstaller/devinstaller/internal/testutil"
	"github.com/devinstaller/devinstaller/pkg/cueutil"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if ok, errs := cfg.IsValid(); !ok {
		t.Fatalf("default config invalid: %v", errs)
	}
	if cfg.Shell.Runtime != ShellVirtual {
		t.Errorf("Shell.Runtime = %s, want virtual", cfg.Shell.Runtime)
	}
	if cfg.Python.Interpreter != "python3" {
		t.Errorf("Python.Interpreter = %q", cfg.Python.Interpreter)
	}
	if cfg.CommandTimeout != 0 {
		t.Errorf("CommandTimeout = %s, want 0", cfg.CommandTimeout)
	}
	if cfg.Policy.Collision != CollisionPrompt || cfg.Policy.Orphans != OrphansPrompt {
		t.Errorf("Policy = %+v", cfg.Policy)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(testutil.MustChdir(t, dir))

	cfg, path, err := Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty", path)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", *cfg)
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(testutil.MustChdir(t, t.TempDir()))
	testutil.MustWriteFile(t, filepath.Join(dir, "config.cue"), `
shell: runtime: "native"
command_timeout: "1m30s"
ui: accessible: true
policy: orphans: "keep"
`)

	cfg, path, err := Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("path = %q", path)
	}
	if cfg.Shell.Runtime != ShellNative || cfg.Shell.NativeShell != "sh" {
		t.Errorf("Shell = %+v", cfg.Shell)
	}
	if cfg.CommandTimeout != 90*time.Second {
		t.Errorf("CommandTimeout = %s", cfg.CommandTimeout)
	}
	if !cfg.UI.Accessible || cfg.Policy.Orphans != OrphansKeep {
		t.Errorf("UI = %+v, Policy = %+v", cfg.UI, cfg.Policy)
	}
	if cfg.Policy.Collision != CollisionPrompt {
		t.Errorf("unset fields keep defaults, Policy.Collision = %s", cfg.Policy.Collision)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(testutil.MustChdir(t, dir))
	t.Setenv("DEVINSTALLER_UI_VERBOSE", "true")
	t.Setenv("DEVINSTALLER_POLICY_COLLISION", "first")
	t.Setenv("DEVINSTALLER_COMMAND_TIMEOUT", "10s")

	cfg, _, err := Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.UI.Verbose || cfg.Policy.Collision != CollisionFirst || cfg.CommandTimeout != 10*time.Second {
		t.Errorf("env overrides not applied: %+v", *cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	t.Run("explicit file missing", func(t *testing.T) {
		t.Parallel()

		_, _, err := Load(context.Background(), LoadOptions{ConfigFilePath: filepath.Join(t.TempDir(), "nope.cue")})
		var ae *issue.ActionableError
		if !errors.As(err, &ae) || ae.IssueID() != issue.ConfigLoadFailedId {
			t.Fatalf("error = %v, want config-load actionable error", err)
		}
	})

	t.Run("schema violation", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.cue")
		testutil.MustWriteFile(t, path, `shell: runtime: "bash"`)
		_, _, err := Load(context.Background(), LoadOptions{ConfigFilePath: path})
		var verr *cueutil.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("error = %v, want *cueutil.ValidationError in chain", err)
		}
		if !strings.Contains(err.Error(), "shell.runtime") {
			t.Errorf("error should name the field: %v", err)
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.cue")
		testutil.MustWriteFile(t, path, `container_engine: "podman"`)
		if _, _, err := Load(context.Background(), LoadOptions{ConfigFilePath: path}); err == nil {
			t.Fatal("expected error for unknown field")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, _, err := Load(ctx, LoadOptions{}); !errors.Is(err, context.Canceled) {
			t.Fatalf("error = %v, want context.Canceled", err)
		}
	})
}

func TestCreateDefaultConfig(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "devinstaller")
	path, written, err := CreateDefaultConfig(dir, false)
	if err != nil || !written {
		t.Fatalf("CreateDefaultConfig() = %q, %v, %v", path, written, err)
	}

	cfg, loadedFrom, err := Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("generated config does not load: %v\n%s", err, GenerateCUE(DefaultConfig()))
	}
	if loadedFrom != path || *cfg != *DefaultConfig() {
		t.Errorf("loaded %+v from %q", *cfg, loadedFrom)
	}

	if err := os.WriteFile(path, []byte(`ui: verbose: true`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, written, _ := CreateDefaultConfig(dir, false); written {
		t.Error("existing config must not be overwritten without force")
	}
	if _, written, _ := CreateDefaultConfig(dir, true); !written {
		t.Error("force should overwrite")
	}
}

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "bad runtime", mutate: func(c *Config) { c.Shell.Runtime = "zsh" }, wantErr: ErrInvalidShellRuntime},
		{name: "bad color scheme", mutate: func(c *Config) { c.UI.ColorScheme = "neon" }, wantErr: ErrInvalidColorScheme},
		{name: "bad collision policy", mutate: func(c *Config) { c.Policy.Collision = "last" }, wantErr: ErrInvalidCollisionPolicy},
		{name: "bad orphan policy", mutate: func(c *Config) { c.Policy.Orphans = "purge" }, wantErr: ErrInvalidOrphanPolicy},
		{name: "native without shell", mutate: func(c *Config) { c.Shell.Runtime = ShellNative; c.Shell.NativeShell = " " }, wantErr: ErrInvalidConfig},
		{name: "negative timeout", mutate: func(c *Config) { c.CommandTimeout = -time.Second }, wantErr: ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			ok, errs := cfg.IsValid()
			if ok || len(errs) != 1 {
				t.Fatalf("IsValid() = %v, %v", ok, errs)
			}
			if !errors.Is(errs[0], tt.wantErr) || !errors.Is(errs[0], ErrInvalidConfig) {
				t.Errorf("error %v should wrap %v and ErrInvalidConfig", errs[0], tt.wantErr)
			}
		})
	}
}
