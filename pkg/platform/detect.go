// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// System names reported by HostDetector. They follow the names devfiles use
// in platform_info.system.
const (
	SystemLinux   = "Linux"
	SystemDarwin  = "Darwin"
	SystemWindows = "Windows"
)

// GOOS values the detector and its callers branch on.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

type (
	// Info is the detected system name and version.
	Info struct {
		System  string
		Version string
	}

	// Detector reports the current system.
	Detector interface {
		Detect(ctx context.Context) (Info, error)
	}

	// HostDetector queries the running host.
	HostDetector struct {
		goos     string
		readFile func(string) ([]byte, error)
		output   func(ctx context.Context, name string, args ...string) ([]byte, error)
	}

	// StaticDetector always reports the same Info.
	StaticDetector Info
)

// NewHostDetector creates a detector for the running host.
func NewHostDetector() *HostDetector {
	return &HostDetector{
		goos:     runtime.GOOS,
		readFile: os.ReadFile,
		output: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
	}
}

// Detect returns the system name and a best-effort version. A version that
// cannot be determined is left empty rather than failing detection.
//
// Linux reports VERSION_ID from /etc/os-release. macOS needs sw_vers for the
// product version, since the kernel version is unrelated to it.
func (d *HostDetector) Detect(ctx context.Context) (Info, error) {
	switch d.goos {
	case Linux:
		return Info{System: SystemLinux, Version: d.linuxVersion()}, nil
	case Darwin:
		out, err := d.output(ctx, "sw_vers", "-productVersion")
		if err != nil {
			return Info{System: SystemDarwin}, nil
		}
		return Info{System: SystemDarwin, Version: strings.TrimSpace(string(out))}, nil
	case Windows:
		out, err := d.output(ctx, "cmd", "/c", "ver")
		if err != nil {
			return Info{System: SystemWindows}, nil
		}
		return Info{System: SystemWindows, Version: parseWindowsVer(string(out))}, nil
	case "":
		return Info{}, fmt.Errorf("unknown operating system")
	default:
		return Info{System: strings.ToUpper(d.goos[:1]) + d.goos[1:]}, nil
	}
}

func (d *HostDetector) linuxVersion() string {
	data, err := d.readFile("/etc/os-release")
	if err != nil {
		return ""
	}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), "=")
		if ok && key == "VERSION_ID" {
			return strings.Trim(value, `"'`)
		}
	}
	return ""
}

// parseWindowsVer extracts "10.0.19045" from "Microsoft Windows [Version 10.0.19045.3803]".
func parseWindowsVer(out string) string {
	_, rest, ok := strings.Cut(out, "[Version ")
	if !ok {
		return strings.TrimSpace(out)
	}
	rest, _, _ = strings.Cut(rest, "]")
	parts := strings.Split(strings.TrimSpace(rest), ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return strings.Join(parts, ".")
}

// Detect returns the fixed Info.
func (s StaticDetector) Detect(context.Context) (Info, error) {
	return Info(s), nil
}
