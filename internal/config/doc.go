// SPDX-License-Identifier: MPL-2.0

// Package config handles devinstaller's application configuration using Viper
// with CUE as the file format.
//
// Configuration is read from config.cue in the platform config directory
// ($XDG_CONFIG_HOME/devinstaller on Linux, ~/Library/Application Support/devinstaller
// on macOS, %APPDATA%\devinstaller on Windows), falling back to ./config.cue.
// Values are validated against the embedded config_schema.cue and may be
// overridden through DEVINSTALLER_* environment variables, e.g.
// DEVINSTALLER_SHELL_RUNTIME=native.
package config
