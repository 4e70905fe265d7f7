// SPDX-License-Identifier: AGPL-3.0-or-later

/*
commitlint - checks commit messages against a configurable set of conventional-commit rules.
It parses each message into its fields, evaluates the configured rules with their severities, and
reports a pass, warn, or fail verdict.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	presetDir  string
	noColor    bool
	verbose    bool
}

// NewRootCmd constructs the commitlint root Cobra command.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("COMMITLINT_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "commitlint",
		Short:         "Lint commit messages against conventional-commit rules",
		Long:          "commitlint parses commit messages and checks them against presets and rules loaded from .commitlintrc files.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "configuration file (default: discovered from the working directory)")
	cmd.PersistentFlags().StringVar(&opts.presetDir, "preset-dir", "", "directory of additional YAML/JSON presets")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of commitlint",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "commitlint version %s\n", version)
		},
	})

	cmd.AddCommand(newLintCmd(opts))
	cmd.AddCommand(newRulesCmd())
	cmd.AddCommand(newPrintConfigCmd(opts))
	cmd.AddCommand(newLastCmd(opts))

	return cmd
}

// colorEnabled reports whether output written to w should be styled.
func (o *rootOptions) colorEnabled(w io.Writer) bool {
	if o.noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
