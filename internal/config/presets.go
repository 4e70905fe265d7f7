// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	_ "embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ConventionalPreset is the name of the built-in conventional-commits preset.
const ConventionalPreset = "@commitlint/config-conventional"

//go:embed presets/conventional.yaml
var conventionalYAML []byte

// Presets maps preset names to their declarations.
type Presets map[string]Declared

// BuiltinPresets returns the presets shipped with the binary. The conventional preset is also
// reachable as "conventional" and "config-conventional".
func BuiltinPresets() Presets {
	conv, err := parse(conventionalYAML, ConventionalPreset)
	if err != nil {
		panic(fmt.Sprintf("built-in preset %s: %v", ConventionalPreset, err))
	}
	return Presets{
		ConventionalPreset:    conv,
		"conventional":        conv,
		"config-conventional": conv,
	}
}

// Merge returns a new set holding p overlaid with other.
func (p Presets) Merge(other Presets) Presets {
	out := make(Presets, len(p)+len(other))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// LoadPresetDir loads every YAML or JSON file under dir as a preset. A preset is named by its
// "name" key, or else by its path relative to dir without the extension.
func LoadPresetDir(dir string) (Presets, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("reading preset directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("reading preset directory: %s is not a directory", dir)
	}
	return LoadPresetFS(os.DirFS(dir), dir)
}

// LoadPresetFS is LoadPresetDir over an fs.FS; label prefixes sources in error messages.
func LoadPresetFS(fsys fs.FS, label string) (Presets, error) {
	matches, err := doublestar.Glob(fsys, "**/*.{yaml,yml,json}")
	if err != nil {
		return nil, fmt.Errorf("scanning presets in %s: %w", label, err)
	}

	out := make(Presets, len(matches))
	origin := make(map[string]string, len(matches))
	for _, match := range matches {
		data, err := fs.ReadFile(fsys, match)
		if err != nil {
			return nil, fmt.Errorf("reading preset %s: %w", match, err)
		}
		source := path.Join(label, match)
		decl, err := parse(data, source)
		if err != nil {
			return nil, err
		}

		name := decl.Name
		if name == "" {
			name = strings.TrimSuffix(match, path.Ext(match))
		}
		if prev, dup := origin[name]; dup {
			return nil, &ValidationError{
				Source:  source,
				Field:   "name",
				Message: fmt.Sprintf("preset %q is already defined in %s", name, prev),
				Wrapped: ErrInvalidConfig,
			}
		}
		origin[name] = source
		out[name] = decl
		slog.Debug("loaded preset", "name", name, "source", source)
	}
	return out, nil
}
