// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bartekus/commitlint/cmd/commitlint/internal/clierr"
	"github.com/bartekus/commitlint/internal/report"
)

func newLastCmd(root *rootOptions) *cobra.Command {
	var (
		stateDir string
		asJSON   bool
		reset    bool
	)
	cmd := &cobra.Command{
		Use:   "last",
		Short: "Show the result stored by the last `lint --state-dir` run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := resolveStore(stateDir)
			if reset {
				if err := store.Reset(); err != nil {
					return clierr.Wrap(clierr.ExitInput, "resetting last lint result", err)
				}
				return nil
			}

			rec, err := store.ReadLast()
			if err != nil {
				return clierr.Wrap(clierr.ExitInput, "reading last lint result", err)
			}
			if rec == nil {
				return clierr.Newf(clierr.ExitInput, "no lint result stored in %s", stateDir)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rec)
			}
			for _, e := range rec.Entries {
				if e.Source != "" {
					_, _ = fmt.Fprintf(out, "%s:\n", e.Source)
				}
				if err := report.WriteText(out, e.Report, report.TextOptions{
					Input:   e.Input,
					HelpURL: rec.HelpURL,
					Color:   root.colorEnabled(out),
					Verbose: true,
				}); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintf(out, "status: %s\n", rec.Status())
			return err
		},
	}
	cmd.Flags().StringVar(&stateDir, "state-dir", "", "directory the lint command stored its result in")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the stored record as JSON")
	cmd.Flags().BoolVar(&reset, "reset", false, "delete the stored result instead of printing it")
	_ = cmd.MarkFlagRequired("state-dir")
	return cmd
}
