// SPDX-License-Identifier: MPL-2.0

package cmd

import "testing"

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2026-03-01T10:00:00Z"

		want := "v1.2.3 (commit: abc1234, built: 2026-03-01T10:00:00Z)"
		if got := getVersionString(); got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("dev build", func(t *testing.T) {
		origVersion := Version
		t.Cleanup(func() { Version = origVersion })

		Version = "dev"
		if got := getVersionString(); got != "dev (built from source)" {
			t.Errorf("getVersionString() = %q", got)
		}
	})
}

func TestNewRootCommand_Tree(t *testing.T) {
	t.Parallel()

	app, err := NewApp(Dependencies{})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	root := NewRootCommand(app)

	for _, path := range [][]string{
		{"install"},
		{"show"},
		{"list"},
		{"validate"},
		{"config", "show"},
		{"config", "init"},
		{"config", "dump"},
	} {
		found, _, err := root.Find(path)
		if err != nil || found == root {
			t.Errorf("command %v not registered (err = %v)", path, err)
		}
	}

	install, _, _ := root.Find([]string{"install"})
	for _, flag := range []string{"platform", "module", "yes", "dry-run"} {
		if install.Flags().Lookup(flag) == nil {
			t.Errorf("install is missing --%s", flag)
		}
	}
	if root.PersistentFlags().ShorthandLookup("v") == nil {
		t.Error("missing -v")
	}
}
