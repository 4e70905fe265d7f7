// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bartekus/commitlint/internal/rules"
)

// fileConfig mirrors the on-disk layout. JSON files decode through the same YAML decoder.
type fileConfig struct {
	Name           string     `yaml:"name"`
	Extends        stringList `yaml:"extends"`
	Plugins        stringList `yaml:"plugins"`
	HelpURL        string     `yaml:"helpUrl"`
	Ignores        []string   `yaml:"ignores"`
	DefaultIgnores *bool      `yaml:"defaultIgnores"`
	Rules          ruleMap    `yaml:"rules"`
}

// Load reads a YAML or JSON configuration file.
func Load(path string) (Declared, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the user
	if err != nil {
		return Declared{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return parse(data, path)
}

// Parse decodes a YAML or JSON configuration document.
func Parse(data []byte) (Declared, error) {
	return parse(data, "")
}

func parse(data []byte, source string) (Declared, error) {
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		var verrs *ValidationErrors
		if errors.As(err, &verrs) {
			for i := range verrs.Errors {
				verrs.Errors[i].Source = source
			}
			return Declared{}, verrs
		}
		if source != "" {
			return Declared{}, fmt.Errorf("%w: %s: %v", ErrInvalidYAML, source, err)
		}
		return Declared{}, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	decl := Declared{
		Name:           fc.Name,
		Extends:        fc.Extends,
		Plugins:        fc.Plugins,
		Rules:          fc.Rules,
		HelpURL:        fc.HelpURL,
		Ignores:        fc.Ignores,
		DefaultIgnores: fc.DefaultIgnores,
		Source:         source,
	}
	for i := range decl.Rules {
		decl.Rules[i].Source = source
	}
	return decl, nil
}

// stringList accepts either a single string or a sequence of strings.
type stringList []string

func (l *stringList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*l = stringList{node.Value}
		return nil
	}
	var items []string
	if err := node.Decode(&items); err != nil {
		return err
	}
	*l = items
	return nil
}

// ruleMap decodes the rules mapping, keeping declaration order.
type ruleMap []RuleDecl

func (m *ruleMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return &ValidationErrors{Errors: []ValidationError{{
			Line: node.Line, Field: "rules", Message: "must be a mapping of rule names to declarations", Wrapped: ErrMalformedRule,
		}}}
	}

	var out ruleMap
	var errs []ValidationError
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		decl, err := decodeRule(key.Value, val)
		if err != nil {
			errs = append(errs, ValidationError{
				Line: val.Line, Rule: key.Value, Message: err.Error(), Wrapped: ErrMalformedRule,
			})
			continue
		}
		decl.Line = key.Line
		out = append(out, decl)
	}
	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	*m = out
	return nil
}

// decodeRule accepts [level], [level, when], [level, when, options], a bare level, or the
// shorthand "always"/"never" which keeps the rule's default severity.
func decodeRule(name string, node *yaml.Node) (RuleDecl, error) {
	decl := RuleDecl{Name: name}

	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!int" {
			level, err := decodeLevel(node)
			decl.Level = level
			return decl, err
		}
		if node.Tag != "!!str" {
			return decl, fmt.Errorf("expected [level, when, options], got %s", node.Tag)
		}
		decl.Level = LevelDefault
		decl.When = rules.When(node.Value)
		return decl, nil

	case yaml.SequenceNode:
		items := node.Content
		if len(items) == 0 || len(items) > 3 {
			return decl, fmt.Errorf("expected [level, when, options], got %d elements", len(items))
		}
		level, err := decodeLevel(items[0])
		if err != nil {
			return decl, err
		}
		decl.Level = level
		if len(items) > 1 {
			if items[1].Kind != yaml.ScalarNode || items[1].Tag != "!!str" {
				return decl, fmt.Errorf("applicability must be a string")
			}
			decl.When = rules.When(items[1].Value)
		}
		if len(items) > 2 {
			var opts any
			if err := items[2].Decode(&opts); err != nil {
				return decl, fmt.Errorf("decoding options: %w", err)
			}
			decl.Options = opts
		}
		return decl, nil
	}
	return decl, fmt.Errorf("expected [level, when, options]")
}

func decodeLevel(node *yaml.Node) (int, error) {
	if node.Kind != yaml.ScalarNode || node.Tag != "!!int" {
		return 0, fmt.Errorf("severity level must be an integer (0, 1 or 2), got %q", node.Value)
	}
	var level int
	if err := node.Decode(&level); err != nil {
		return 0, err
	}
	return level, nil
}
