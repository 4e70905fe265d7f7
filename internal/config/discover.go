// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
)

// FileNames lists the configuration file names Discover looks for, in order of preference.
var FileNames = []string{
	".commitlintrc.yaml",
	".commitlintrc.yml",
	".commitlintrc.json",
	"commitlint.config.yaml",
	"commitlint.config.yml",
}

// Discover walks from start up to stop (inclusive) and returns the first configuration file
// found. An empty stop walks to the filesystem root. ok is false when nothing was found.
func Discover(start, stop string) (path string, ok bool, err error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false, err
	}
	if stop != "" {
		if stop, err = filepath.Abs(stop); err != nil {
			return "", false, err
		}
	}

	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true, nil
			}
		}
		if dir == stop {
			return "", false, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}
