// SPDX-License-Identifier: MPL-2.0

package devfile

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	// KindApp is an application installed through commands.
	KindApp ModuleKind = "app"
	// KindFile is a file created with optional content.
	KindFile ModuleKind = "file"
	// KindFolder is a directory.
	KindFolder ModuleKind = "folder"
	// KindLink is a symbolic or hard link.
	KindLink ModuleKind = "link"
	// KindGroup names a set of requires/optionals and installs nothing itself.
	KindGroup ModuleKind = "group"
	// KindPhony is a named placeholder with no action.
	KindPhony ModuleKind = "phony"
)

type (
	// ModuleKind selects the install behavior of a module.
	ModuleKind string

	// Document is a schema-validated devfile.
	Document struct {
		Version     string     `json:"version,omitempty"`
		Author      string     `json:"author,omitempty"`
		Description string     `json:"description,omitempty"`
		URL         string     `json:"url,omitempty"`
		Constants   []Constant `json:"constants,omitempty"`
		Platforms   []Platform `json:"platforms,omitempty"`
		Modules     []Module   `json:"modules"`
	}

	// Constant is a key/value pair substituted for "{key}" placeholders.
	Constant struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}

	// Platform declares a named target environment.
	Platform struct {
		Name        string       `json:"name"`
		Description string       `json:"description,omitempty"`
		Info        PlatformInfo `json:"platform_info"`
	}

	// PlatformInfo is the system name and optional exact version a platform matches.
	PlatformInfo struct {
		System  string `json:"system"`
		Version string `json:"version,omitempty"`
	}

	// Module is one raw module entry. Kind-specific fields are ignored by kinds
	// that do not use them.
	Module struct {
		Name               string     `json:"name"`
		Alias              string     `json:"alias,omitempty"`
		Display            string     `json:"display,omitempty"`
		Description        string     `json:"description,omitempty"`
		URL                string     `json:"url,omitempty"`
		Kind               ModuleKind `json:"module_type,omitempty"`
		Requires           []string   `json:"requires,omitempty"`
		Optionals          []string   `json:"optionals,omitempty"`
		SupportedPlatforms []string   `json:"supported_platforms,omitempty"`
		Constants          []Constant `json:"constants,omitempty"`

		// app
		Version    string        `json:"version,omitempty"`
		Executable string        `json:"executable,omitempty"`
		Init       []Instruction `json:"init,omitempty"`
		Command    *Instruction  `json:"command,omitempty"`
		Config     []Instruction `json:"config,omitempty"`
		Uninstall  []string      `json:"uninstall,omitempty"`

		// file, folder, link
		Content    string `json:"content,omitempty"`
		Owner      string `json:"owner,omitempty"`
		ParentDir  string `json:"parent_dir,omitempty"`
		Permission string `json:"permission,omitempty"`
		Create     *bool  `json:"create,omitempty"`
		Rollback   *bool  `json:"rollback,omitempty"`
		Source     string `json:"source,omitempty"`
		Target     string `json:"target,omitempty"`
		Symbolic   *bool  `json:"symbolic,omitempty"`
	}

	// Instruction is one install command with an optional compensating rollback
	// command. In a devfile it is either a plain command string or a table with
	// "install" and "rollback" keys.
	Instruction struct {
		Install  string `json:"install"`
		Rollback string `json:"rollback,omitempty"`
	}
)

// Codename returns the key the module is referenced by: its alias, else its name.
func (m *Module) Codename() string {
	if m.Alias != "" {
		return m.Alias
	}
	return m.Name
}

// EffectiveKind returns the declared kind, defaulting to phony.
func (m *Module) EffectiveKind() ModuleKind {
	if m.Kind == "" {
		return KindPhony
	}
	return m.Kind
}

// ConstantMap merges the document-level constants with the module's own;
// module constants win.
func (m *Module) ConstantMap(global map[string]string) map[string]string {
	vars := make(map[string]string, len(global)+len(m.Constants))
	for k, v := range global {
		vars[k] = v
	}
	for _, c := range m.Constants {
		vars[c.Key] = c.Value
	}
	return vars
}

// ConstantMap returns the document-level constants as a map.
func (d *Document) ConstantMap() map[string]string {
	vars := make(map[string]string, len(d.Constants))
	for _, c := range d.Constants {
		vars[c.Key] = c.Value
	}
	return vars
}

// PlatformNames returns the declared platform codenames in declaration order.
func (d *Document) PlatformNames() []string {
	names := make([]string, len(d.Platforms))
	for i, p := range d.Platforms {
		names[i] = p.Name
	}
	return names
}

// BoolOr returns *b, or def when b is nil.
func BoolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// UnmarshalJSON accepts both the string and the table form of an instruction.
func (i *Instruction) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var cmd string
		if err := json.Unmarshal(data, &cmd); err != nil {
			return err
		}
		*i = Instruction{Install: cmd}
		return nil
	}

	type plain Instruction
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("instruction must be a string or a table with install/rollback: %w", err)
	}
	*i = Instruction(p)
	return nil
}
