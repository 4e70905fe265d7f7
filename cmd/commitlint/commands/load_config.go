// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"log/slog"
	"os"

	"github.com/bartekus/commitlint/cmd/commitlint/internal/clierr"
	"github.com/bartekus/commitlint/internal/config"
	"github.com/bartekus/commitlint/internal/projectroot"
)

// loadConfig reads the configuration named by --config, or the one discovered between the
// working directory and the enclosing work tree root, and resolves it. Without any
// configuration file the built-in conventional preset is used.
func (o *rootOptions) loadConfig() (*config.Resolved, error) {
	decl, err := o.declared()
	if err != nil {
		return nil, err
	}

	var resolverOpts []config.Option
	if o.presetDir != "" {
		presets, err := config.LoadPresetDir(o.presetDir)
		if err != nil {
			return nil, clierr.Wrap(clierr.ExitConfig, "loading presets", err)
		}
		resolverOpts = append(resolverOpts, config.WithPresets(presets))
	}

	cfg, err := config.NewResolver(resolverOpts...).Resolve(decl)
	if err != nil {
		return nil, clierr.Wrap(clierr.ExitConfig, "invalid configuration", err)
	}
	return cfg, nil
}

func (o *rootOptions) declared() (config.Declared, error) {
	path := o.configPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return config.Declared{}, clierr.Wrap(clierr.ExitConfig, "resolving working directory", err)
		}
		stop, err := projectroot.Find(wd)
		if err != nil && !errors.Is(err, projectroot.ErrNotFound) {
			return config.Declared{}, clierr.Wrap(clierr.ExitConfig, "locating project root", err)
		}

		found, ok, err := config.Discover(wd, stop)
		if err != nil {
			return config.Declared{}, clierr.Wrap(clierr.ExitConfig, "discovering configuration", err)
		}
		if !ok {
			slog.Warn("no configuration file found; using the built-in preset", "preset", config.ConventionalPreset)
			return config.Declared{Extends: []string{config.ConventionalPreset}, Source: "built-in"}, nil
		}
		slog.Debug("discovered configuration", "path", found)
		path = found
	}

	decl, err := config.Load(path)
	if err != nil {
		return config.Declared{}, clierr.Wrap(clierr.ExitConfig, "loading configuration", err)
	}
	return decl, nil
}
