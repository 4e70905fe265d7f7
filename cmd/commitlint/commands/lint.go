// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/bartekus/commitlint/cmd/commitlint/internal/clierr"
	"github.com/bartekus/commitlint/internal/config"
	"github.com/bartekus/commitlint/internal/engine"
	"github.com/bartekus/commitlint/internal/message"
	"github.com/bartekus/commitlint/internal/projectroot"
	"github.com/bartekus/commitlint/internal/report"
	"github.com/bartekus/commitlint/internal/state"
)

// defaultEditPath is the --edit value used when the flag is given without a path. It is
// resolved against the enclosing work tree's git directory.
const defaultEditPath = ".git/COMMIT_EDITMSG"

const (
	formatText = "text"
	formatJSON = "json"
)

type lintOptions struct {
	*rootOptions
	edit          string
	format        string
	failOnWarning bool
	stateDir      string
	watch         bool
}

// input is one message to lint. source is empty for stdin.
type input struct {
	source   string
	raw      string
	comments bool
}

func newLintCmd(root *rootOptions) *cobra.Command {
	o := &lintOptions{rootOptions: root}
	cmd := &cobra.Command{
		Use:   "lint [file...]",
		Short: "Lint commit messages from files, the git edit buffer or stdin",
		Long: `Lint one or more commit messages.

Messages are read from the given files, from the commit message being edited (--edit), or from
stdin when it is piped. The exit code is 0 when every message passes or only warns, 1 when one
fails, 2 when the configuration is invalid and 3 when the input cannot be read.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args)
		},
	}

	cmd.Flags().StringVarP(&o.edit, "edit", "e", "", "lint the commit message being edited (default "+defaultEditPath+")")
	cmd.Flags().Lookup("edit").NoOptDefVal = defaultEditPath
	cmd.Flags().StringVarP(&o.format, "format", "o", formatText, "output format: text or json")
	cmd.Flags().BoolVar(&o.failOnWarning, "fail-on-warning", false, "exit non-zero when only warnings occur")
	cmd.Flags().StringVar(&o.stateDir, "state-dir", "", "store the result in this directory for the last command")
	cmd.Flags().BoolVarP(&o.watch, "watch", "w", false, "re-lint the message file whenever it changes")

	return cmd
}

func (o *lintOptions) run(cmd *cobra.Command, args []string) error {
	if o.format != formatText && o.format != formatJSON {
		return clierr.Newf(clierr.ExitInput, "unknown format %q (want %s or %s)", o.format, formatText, formatJSON)
	}

	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}

	sources, err := o.sources(cmd, args)
	if err != nil {
		return err
	}

	if o.watch {
		if len(sources) != 1 || sources[0].source == "" {
			return clierr.New(clierr.ExitInput, "--watch needs exactly one message file")
		}
		return o.watchFile(cmd, cfg, sources[0])
	}

	inputs, err := readInputs(cmd.InOrStdin(), sources)
	if err != nil {
		return err
	}
	return o.lint(cmd, cfg, inputs)
}

// sources lists the messages to read without reading them. A lone entry with an empty source
// stands for stdin.
func (o *lintOptions) sources(cmd *cobra.Command, args []string) ([]input, error) {
	var out []input
	for _, arg := range args {
		if arg == "-" {
			out = append(out, input{})
			continue
		}
		out = append(out, input{source: arg})
	}

	if cmd.Flags().Changed("edit") {
		path := o.edit
		if path == defaultEditPath {
			wd, err := os.Getwd()
			if err != nil {
				return nil, clierr.Wrap(clierr.ExitInput, "resolving working directory", err)
			}
			if path, err = projectroot.CommitMessagePath(wd); err != nil {
				return nil, clierr.Wrap(clierr.ExitInput, "locating the commit message", err)
			}
		}
		out = append(out, input{source: path, comments: true})
	}

	if len(out) == 0 {
		out = append(out, input{})
	}
	return out, nil
}

func readInputs(stdin io.Reader, sources []input) ([]input, error) {
	out := make([]input, 0, len(sources))
	for _, in := range sources {
		raw, err := readInput(stdin, in)
		if err != nil {
			return nil, err
		}
		in.raw = raw
		out = append(out, in)
	}
	return out, nil
}

func readInput(stdin io.Reader, in input) (string, error) {
	if in.source == "" {
		if f, ok := stdin.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
			return "", clierr.New(clierr.ExitInput, "no commit message: pass a file, use --edit or pipe a message on stdin")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", clierr.Wrap(clierr.ExitInput, "reading stdin", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(in.source) //nolint:gosec // G304: path comes from the user
	if err != nil {
		return "", clierr.Wrap(clierr.ExitInput, "reading commit message", err)
	}
	if in.comments {
		return message.StripComments(string(data), ""), nil
	}
	return string(data), nil
}

func (o *lintOptions) lint(cmd *cobra.Command, cfg *config.Resolved, inputs []input) error {
	raws := make([]string, len(inputs))
	for i, in := range inputs {
		raws[i] = in.raw
	}
	reports, err := engine.LintAll(cmd.Context(), raws, cfg, 0)
	if err != nil {
		return err
	}

	rec := state.Record{HelpURL: cfg.HelpURL(), Entries: make([]state.Entry, len(inputs))}
	for i, in := range inputs {
		rec.Entries[i] = state.Entry{Source: in.source, Input: in.raw, Report: reports[i]}
	}

	if err := o.write(cmd.OutOrStdout(), rec); err != nil {
		return err
	}
	if o.stateDir != "" {
		if err := resolveStore(o.stateDir).WriteLast(rec); err != nil {
			slog.Warn("could not store lint result", "dir", o.stateDir, "error", err)
		}
	}

	failed := 0
	for _, e := range rec.Entries {
		if e.Report.Status == report.StatusFail || (o.failOnWarning && e.Report.Status == report.StatusWarn) {
			failed++
		}
	}
	if failed > 0 {
		if len(rec.Entries) == 1 {
			return clierr.New(clierr.ExitLintFailed, "commit message failed linting")
		}
		return clierr.Newf(clierr.ExitLintFailed, "%d of %d commit messages failed linting", failed, len(rec.Entries))
	}
	return nil
}

func (o *lintOptions) write(w io.Writer, rec state.Record) error {
	for _, e := range rec.Entries {
		var err error
		switch o.format {
		case formatJSON:
			err = report.WriteJSON(w, e.Report)
		default:
			err = report.WriteText(w, e.Report, report.TextOptions{
				Input:   e.Input,
				HelpURL: rec.HelpURL,
				Color:   o.colorEnabled(w),
				Verbose: o.verbose,
			})
		}
		if err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}
	return nil
}

// resolveStore anchors a relative state directory at the enclosing work tree, or at the
// working directory outside of one.
func resolveStore(dir string) *state.Store {
	if !filepath.IsAbs(dir) {
		if wd, err := os.Getwd(); err == nil {
			base := wd
			if root, err := projectroot.Find(wd); err == nil {
				base = root
			}
			dir = filepath.Join(base, dir)
		}
	}
	return state.NewStore(dir)
}
