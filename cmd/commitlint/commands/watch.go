// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/bartekus/commitlint/cmd/commitlint/internal/clierr"
	"github.com/bartekus/commitlint/internal/config"
)

const watchDebounce = 100 * time.Millisecond

// watchFile lints in once and again after every change until the command's context ends.
func (o *lintOptions) watchFile(cmd *cobra.Command, cfg *config.Resolved, in input) error {
	o.relint(cmd, cfg, in)
	return watchPath(cmd.Context(), in.source, watchDebounce, func() { o.relint(cmd, cfg, in) })
}

// relint reads and lints in once. Lint failures are already visible in the report, so only
// read and write problems are logged; watching continues either way.
func (o *lintOptions) relint(cmd *cobra.Command, cfg *config.Resolved, in input) {
	raw, err := readInput(nil, in)
	if err != nil {
		slog.Warn("could not read commit message", "path", in.source, "error", err)
		return
	}
	in.raw = raw

	err = o.lint(cmd, cfg, []input{in})
	var exit *clierr.ExitError
	if err == nil || (errors.As(err, &exit) && exit.ExitCode() == clierr.ExitLintFailed) {
		return
	}
	if ctx := cmd.Context(); ctx != nil && ctx.Err() != nil {
		return
	}
	slog.Warn("could not lint commit message", "path", in.source, "error", err)
}

// watchPath calls onChange after path is written or recreated, coalescing events that arrive
// within debounce of each other. It watches the parent directory so editors that replace the
// file by renaming are noticed. It returns nil when ctx is done.
func watchPath(ctx context.Context, path string, debounce time.Duration, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	slog.Debug("watching commit message", "path", abs)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			slog.Debug("commit message changed", "path", abs, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "error", err)

		case <-fire:
			fire = nil
			onChange()
		}
	}
}
