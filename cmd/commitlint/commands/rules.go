// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/bartekus/commitlint/internal/plugins"
	"github.com/bartekus/commitlint/internal/rules"
)

// RuleListItem is one entry of `commitlint rules --json`.
type RuleListItem struct {
	Name        string         `json:"name"`
	Severity    rules.Severity `json:"default_severity"`
	Description string         `json:"description"`
}

func newRulesCmd() *cobra.Command {
	var asJSON, withPlugins bool
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the available rules and their default severities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := rules.Builtin()
			if withPlugins {
				var err error
				if reg, err = reg.With(plugins.FunctionRules{}.Rules(reg)...); err != nil {
					return err
				}
			}

			items := make([]RuleListItem, 0, reg.Len())
			for _, r := range reg.Rules() {
				items = append(items, RuleListItem{Name: r.Name(), Severity: r.DefaultSeverity(), Description: rules.Describe(r)})
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}

			rows := make([][]string, len(items))
			for i, it := range items {
				rows[i] = []string{it.Name, it.Severity.String(), it.Description}
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("RULE", "DEFAULT", "DESCRIPTION").
				Rows(rows...)
			_, err := fmt.Fprintln(out, strings.TrimRight(t.String(), "\n"))
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output the rules as JSON")
	cmd.Flags().BoolVar(&withPlugins, "plugins", false, "include rules contributed by built-in plugins")
	return cmd
}
