// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"reflect"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bartekus/commitlint/internal/config"
)

func newPrintConfigCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "print-config",
		Short: "Print the resolved configuration as YAML",
		Long:  "Print the configuration after presets are merged, in the same rules format configuration files use.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(resolvedNode(cfg)); err != nil {
				return fmt.Errorf("encoding configuration: %w", err)
			}
			return enc.Close()
		},
	}
}

// resolvedNode renders cfg as a mapping node so rule order survives encoding.
func resolvedNode(cfg *config.Resolved) *yaml.Node {
	doc := &yaml.Node{Kind: yaml.MappingNode}

	if names := cfg.Plugins(); len(names) > 0 {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, n := range names {
			seq.Content = append(seq.Content, scalar(n))
		}
		doc.Content = append(doc.Content, scalar("plugins"), seq)
	}
	if url := cfg.HelpURL(); url != "" {
		doc.Content = append(doc.Content, scalar("helpUrl"), scalar(url))
	}
	if patterns := cfg.IgnorePatterns(); len(patterns) > 0 {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, p := range patterns {
			seq.Content = append(seq.Content, scalar(p))
		}
		doc.Content = append(doc.Content, scalar("ignores"), seq)
	}

	ruleMap := &yaml.Node{Kind: yaml.MappingNode}
	for _, spec := range cfg.Rules() {
		decl := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		decl.Content = append(decl.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprint(spec.Severity.Level())},
			scalar(string(spec.When)),
		)
		if spec.Raw != nil {
			decl.Content = append(decl.Content, optionNode(spec.Raw))
		}
		ruleMap.Content = append(ruleMap.Content, scalar(spec.Name), decl)
	}
	doc.Content = append(doc.Content, scalar("rules"), ruleMap)

	return doc
}

// optionNode encodes a rule option. Go predicates have no textual form and print as <function>.
func optionNode(raw any) *yaml.Node {
	if reflect.ValueOf(raw).Kind() == reflect.Func {
		return scalar("<function>")
	}
	var n yaml.Node
	if err := n.Encode(raw); err != nil {
		return scalar(fmt.Sprint(raw))
	}
	return &n
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}
