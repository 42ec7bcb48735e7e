// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"
)

func TestSetHomeDir(t *testing.T) {
	key := "HOME"
	if runtime.GOOS == "windows" {
		key = "USERPROFILE"
	}
	original, had := os.LookupEnv(key)

	tmpDir := t.TempDir()
	cleanup := SetHomeDir(t, tmpDir)
	if got := os.Getenv(key); got != tmpDir {
		t.Errorf("%s = %q, want %q", key, got, tmpDir)
	}

	cleanup()
	got, has := os.LookupEnv(key)
	if has != had || got != original {
		t.Errorf("%s not restored: %q (set=%v), want %q (set=%v)", key, got, has, original, had)
	}
}

func TestWriteDevfile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := WriteDevfile(t, dir, "nested/devfile.toml", "version = \"1\"\n")
	if !strings.HasPrefix(src, "file: ") {
		t.Fatalf("source = %q, want file: prefix", src)
	}
	data, err := os.ReadFile(filepath.Join(dir, "nested", "devfile.toml"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "version = \"1\"\n" {
		t.Errorf("content = %q", data)
	}
}

func TestRecorder(t *testing.T) {
	t.Parallel()

	r := NewRecorder("sh: false")
	if err := r.Run(context.Background(), "sh: true"); err != nil {
		t.Errorf("Run(sh: true) error = %v", err)
	}
	if err := r.Run(context.Background(), "sh: false"); err == nil {
		t.Error("Run(sh: false) should fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.Run(ctx, "sh: true"); err == nil {
		t.Error("Run with cancelled context should fail")
	}

	if want := []string{"sh: true", "sh: false", "sh: true"}; !slices.Equal(r.Calls(), want) {
		t.Errorf("Calls() = %v, want %v", r.Calls(), want)
	}
}
