// SPDX-License-Identifier: AGPL-3.0-or-later

// Package projectroot locates the git work tree that encloses a directory.
package projectroot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when no enclosing work tree exists.
var ErrNotFound = errors.New("not inside a git work tree")

// Find walks upward from start and returns the first directory that holds a .git entry.
func Find(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Lstat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: %s", ErrNotFound, start)
		}
		dir = parent
	}
}

// GitDir returns the git directory of the work tree at root. Worktrees and submodules use a
// .git file holding "gitdir: <path>".
func GitDir(root string) (string, error) {
	dotGit := filepath.Join(root, ".git")
	info, err := os.Stat(dotGit)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return dotGit, nil
	}

	data, err := os.ReadFile(dotGit) //nolint:gosec // G304: path is derived from the work tree
	if err != nil {
		return "", err
	}
	line := strings.TrimSpace(string(data))
	target, ok := strings.CutPrefix(line, "gitdir:")
	if !ok {
		return "", fmt.Errorf("%s: expected \"gitdir: <path>\"", dotGit)
	}
	target = strings.TrimSpace(target)
	if !filepath.IsAbs(target) {
		target = filepath.Join(root, target)
	}
	return filepath.Clean(target), nil
}

// CommitMessagePath returns the COMMIT_EDITMSG path of the work tree enclosing start.
func CommitMessagePath(start string) (string, error) {
	root, err := Find(start)
	if err != nil {
		return "", err
	}
	gitDir, err := GitDir(root)
	if err != nil {
		return "", err
	}
	return filepath.Join(gitDir, "COMMIT_EDITMSG"), nil
}
