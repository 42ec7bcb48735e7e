// SPDX-License-Identifier: MPL-2.0

package installer

import (
	"context"

	"github.com/devinstaller/devinstaller/internal/platform"
	"github.com/devinstaller/devinstaller/pkg/devfile"
	hostplatform "github.com/devinstaller/devinstaller/pkg/platform"
)

// Check is the validation outcome of a devfile for one platform.
type Check struct {
	Platform string
	Modules  int
	// Err joins every problem found; nil means the devfile is usable there.
	Err error
}

// Validate loads source and, for every declared platform (or the MOCK
// platform when none are declared), builds the module graph and checks it for
// malformed commands, dangling references and cycles. Nothing is executed and
// nothing is asked: duplicate codenames keep their first declaration.
//
// The error is non-nil only when the devfile cannot be loaded.
func (s *Service) Validate(ctx context.Context, source string) (*devfile.File, []Check, error) {
	if source == "" {
		source = DefaultSource
	}
	file, err := devfile.Load(ctx, source, s.loadOpts...)
	if err != nil {
		return nil, nil, err
	}

	var targets []platform.Platform
	for _, d := range file.Document.Platforms {
		targets = append(targets, platform.Platform{
			Codename: d.Name,
			Info:     hostplatform.Info{System: d.Info.System, Version: d.Info.Version},
		})
	}
	if len(targets) == 0 {
		targets = []platform.Platform{{Codename: platform.MockCodename}}
	}

	checks := make([]Check, 0, len(targets))
	for _, plat := range targets {
		check := Check{Platform: plat.Codename}
		g, err := s.build(ctx, file.Document, plat, nil)
		if err != nil {
			check.Err = err
		} else {
			check.Modules = g.Len()
			check.Err = g.Validate()
		}
		checks = append(checks, check)
	}
	return file, checks, nil
}
