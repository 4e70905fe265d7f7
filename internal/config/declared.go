// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads commitlint configuration and resolves it, together with the presets it
// extends and the plugins it enables, into one flat and validated rule set.
package config

import (
	"github.com/bartekus/commitlint/internal/rules"
)

// LevelDefault selects the registry's default severity for a rule.
const LevelDefault = -1

// Declared is a configuration as written, before presets are merged in.
type Declared struct {
	// Name registers the configuration as a preset when it is loaded from a preset directory.
	Name    string
	Extends []string
	Plugins []string
	Rules   []RuleDecl
	HelpURL string
	// Ignores are regular expressions; matching messages are not linted.
	Ignores []string
	// DefaultIgnores toggles the built-in merge/revert/fixup ignores. nil means enabled.
	DefaultIgnores *bool
	// Source names where the configuration came from, for error messages.
	Source string
}

// RuleDecl is one entry of a rules map: [level, when, options].
type RuleDecl struct {
	Name    string
	Level   int
	When    rules.When
	Options any
	// Func replaces the registered implementation with an inline predicate. A rule with a
	// Func does not need to be registered.
	Func rules.CheckFunc

	Source string
	Line   int
}

// Rule is shorthand for a RuleDecl.
func Rule(name string, level int, when rules.When, options any) RuleDecl {
	return RuleDecl{Name: name, Level: level, When: when, Options: options}
}

// Inline declares a custom rule backed by fn.
func Inline(name string, level int, when rules.When, fn rules.CheckFunc) RuleDecl {
	return RuleDecl{Name: name, Level: level, When: when, Func: fn}
}
