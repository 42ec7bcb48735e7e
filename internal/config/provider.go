// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config file when set.
	ConfigFilePath string
	// ConfigDirPath overrides the config directory lookup when set.
	ConfigDirPath string
}

// Provider loads configuration from explicit options.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, string, error)
}

type fileProvider struct{}

// NewProvider creates a provider reading config files and the environment.
func NewProvider() Provider {
	return &fileProvider{}
}

func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	return Load(ctx, opts)
}

// StaticProvider always returns the same configuration.
type StaticProvider struct {
	Config *Config
}

func (p StaticProvider) Load(context.Context, LoadOptions) (*Config, string, error) {
	if p.Config == nil {
		return DefaultConfig(), "", nil
	}
	return p.Config, "", nil
}
