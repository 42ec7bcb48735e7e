// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/devinstaller/devinstaller/pkg/devfile"
	hostplatform "github.com/devinstaller/devinstaller/pkg/platform"
)

// MockCodename is the platform used when a devfile declares no platforms.
// Every module matches it.
const MockCodename = "MOCK"

// ErrPlatformUnsupported is the sentinel wrapped by UnsupportedError.
var ErrPlatformUnsupported = errors.New("platform not supported")

type (
	// Platform is the resolved target of one run.
	Platform struct {
		Codename string
		Info     hostplatform.Info
	}

	// UnsupportedError reports that no declared platform matches the host.
	UnsupportedError struct {
		Detected hostplatform.Info
		Declared []string
	}

	// Selector asks the user to pick one of several options and returns its index.
	Selector interface {
		Select(ctx context.Context, title string, options []string) (int, error)
	}

	// Resolver matches the host against a devfile's platform declarations.
	Resolver struct {
		detector hostplatform.Detector
		selector Selector
		logger   *log.Logger
	}
)

// IsMock reports whether p is the MOCK sentinel.
func (p Platform) IsMock() bool { return p.Codename == MockCodename }

func (e *UnsupportedError) Error() string {
	sys := e.Detected.System
	if e.Detected.Version != "" {
		sys += " " + e.Detected.Version
	}
	return fmt.Sprintf("no declared platform matches %s (declared: %s)", sys, strings.Join(e.Declared, ", "))
}

// Unwrap returns ErrPlatformUnsupported for errors.Is() compatibility.
func (e *UnsupportedError) Unwrap() error { return ErrPlatformUnsupported }

// NewResolver creates a Resolver. A nil logger discards output.
func NewResolver(detector hostplatform.Detector, selector Selector, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Resolver{detector: detector, selector: selector, logger: logger}
}

// Resolve picks the platform for this run.
//
// An explicit codename must name a declared platform. Without one, no
// declarations yield the MOCK platform; otherwise the host is detected and
// matched by system (case-insensitive) and exact version. Several matches
// are disambiguated by the user.
func (r *Resolver) Resolve(ctx context.Context, codename string, decls []devfile.Platform) (Platform, error) {
	if codename != "" {
		for _, d := range decls {
			if d.Name == codename {
				return fromDecl(d), nil
			}
		}
		return Platform{}, devfile.NewSpecificationError(devfile.CodeInvalidSpec, codename,
			"platform is not declared in the devfile")
	}

	if len(decls) == 0 {
		r.logger.Debug("no platforms declared, using mock platform")
		return Platform{Codename: MockCodename}, nil
	}

	info, err := r.detector.Detect(ctx)
	if err != nil {
		return Platform{}, fmt.Errorf("detect platform: %w", err)
	}
	r.logger.Debug("detected platform", "system", info.System, "version", info.Version)

	var matches []devfile.Platform
	for _, d := range decls {
		if EqualFold(d.Info.System, info.System) && VersionMatches(d.Info.Version, info.Version) {
			matches = append(matches, d)
		}
	}

	switch len(matches) {
	case 0:
		names := make([]string, len(decls))
		for i, d := range decls {
			names[i] = d.Name
		}
		return Platform{}, &UnsupportedError{Detected: info, Declared: names}
	case 1:
		return fromDecl(matches[0]), nil
	}

	options := make([]string, len(matches))
	for i, m := range matches {
		options[i] = m.Name
		if m.Description != "" {
			options[i] += " - " + m.Description
		}
	}
	idx, err := r.selector.Select(ctx, "Several platforms match this system. Pick one:", options)
	if err != nil {
		return Platform{}, err
	}
	if idx < 0 || idx >= len(matches) {
		return Platform{}, fmt.Errorf("platform selection %d out of range", idx)
	}
	return r.Resolve(ctx, matches[idx].Name, decls)
}

func fromDecl(d devfile.Platform) Platform {
	return Platform{
		Codename: d.Name,
		Info:     hostplatform.Info{System: d.Info.System, Version: d.Info.Version},
	}
}

// EqualFold reports whether all strings are equal under Unicode case folding.
// With no arguments it returns false: nothing cannot match a platform.
func EqualFold(strs ...string) bool {
	if len(strs) == 0 {
		return false
	}
	for _, s := range strs[1:] {
		if !strings.EqualFold(strs[0], s) {
			return false
		}
	}
	return true
}

// VersionMatches reports whether actual satisfies constraint. An empty
// constraint matches any version; otherwise the match is exact.
// TODO: support semantic version ranges in platform_info.version.
func VersionMatches(constraint, actual string) bool {
	return constraint == "" || constraint == actual
}
