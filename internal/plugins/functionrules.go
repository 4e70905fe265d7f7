// SPDX-License-Identifier: AGPL-3.0-or-later

// Package plugins holds the rule plugins that configurations can enable by name.
package plugins

import (
	"fmt"
	"regexp"

	"github.com/bartekus/commitlint/internal/message"
	"github.com/bartekus/commitlint/internal/rules"
)

// FunctionRulesName is the name configurations use to enable FunctionRules.
const FunctionRulesName = "function-rules"

// FunctionRulesPrefix prefixes every rule contributed by FunctionRules.
const FunctionRulesPrefix = FunctionRulesName + "/"

// FunctionRules mirrors every base rule as "function-rules/<name>", replacing the built-in
// check with a caller-supplied predicate passed as the rule's option.
type FunctionRules struct{}

func (FunctionRules) Name() string { return FunctionRulesName }

func (FunctionRules) Rules(base *rules.Registry) []rules.Rule {
	out := make([]rules.Rule, 0, base.Len())
	for _, r := range base.Rules() {
		out = append(out, rules.Define(rules.Definition{
			Name:        FunctionRulesPrefix + r.Name(),
			Description: "custom predicate in place of " + r.Name(),
			Severity:    r.DefaultSeverity(),
			Decode:      decodePredicate,
			Check:       runPredicate,
		}))
	}
	return out
}

// Match is the file-friendly form of a predicate: Field must match Pattern (unanchored).
type Match struct {
	Field      string
	Pattern    *regexp.Regexp
	AllowEmpty bool
	Message    string
}

var matchFields = map[string]func(message.Commit) string{
	"type":    func(c message.Commit) string { return c.Type },
	"scope":   func(c message.Commit) string { return c.Scope },
	"subject": func(c message.Commit) string { return c.Subject },
	"header":  func(c message.Commit) string { return c.Header },
	"body":    func(c message.Commit) string { return c.Body },
	"footer":  func(c message.Commit) string { return c.Footer },
}

// Check evaluates the match against a commit.
func (m Match) Check(c message.Commit, _ any) (rules.Verdict, error) {
	v := matchFields[m.Field](c)
	if v == "" && m.AllowEmpty {
		return rules.Pass(), nil
	}
	msg := m.Message
	if msg == "" {
		msg = fmt.Sprintf("%s must match %s", m.Field, m.Pattern.String())
	}
	return rules.Expect(m.Pattern.MatchString(v), msg, fmt.Sprintf("%s must not match %s", m.Field, m.Pattern.String())), nil
}

func decodePredicate(raw any) (any, error) {
	switch v := raw.(type) {
	case rules.CheckFunc:
		return v, nil
	case func(message.Commit, any) (rules.Verdict, error):
		return rules.CheckFunc(v), nil
	case Match:
		if v.Pattern == nil || matchFields[v.Field] == nil {
			return nil, fmt.Errorf("match needs a known field and a pattern")
		}
		return rules.CheckFunc(v.Check), nil
	case map[string]any:
		m, err := decodeMatch(v)
		if err != nil {
			return nil, err
		}
		return rules.CheckFunc(m.Check), nil
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("expected a predicate function or a {field, pattern} mapping, got %T", raw)
}

func decodeMatch(v map[string]any) (Match, error) {
	var m Match
	for key := range v {
		switch key {
		case "field", "pattern", "allowEmpty", "message":
		default:
			return m, fmt.Errorf("unknown key %q", key)
		}
	}

	f, _ := v["field"].(string)
	if _, ok := matchFields[f]; !ok {
		return m, fmt.Errorf("field must be one of type, scope, subject, header, body, footer; got %q", f)
	}
	pattern, ok := v["pattern"].(string)
	if !ok || pattern == "" {
		return m, fmt.Errorf("pattern is required")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return m, fmt.Errorf("invalid pattern: %w", err)
	}
	m.Field, m.Pattern = f, re

	if raw, ok := v["allowEmpty"]; ok {
		b, isBool := raw.(bool)
		if !isBool {
			return m, fmt.Errorf("allowEmpty must be a boolean")
		}
		m.AllowEmpty = b
	}
	if raw, ok := v["message"]; ok {
		s, isString := raw.(string)
		if !isString {
			return m, fmt.Errorf("message must be a string")
		}
		m.Message = s
	}
	return m, nil
}

func runPredicate(c message.Commit, opts any) (rules.Verdict, error) {
	fn, _ := opts.(rules.CheckFunc)
	if fn == nil {
		return rules.Skip(), nil
	}
	return fn(c, nil)
}

// Builtin returns the plugins known to every resolver, keyed by the names configurations use.
func Builtin() map[string]rules.Plugin {
	fr := FunctionRules{}
	return map[string]rules.Plugin{
		FunctionRulesName:                  fr,
		"commitlint-plugin-function-rules": fr,
	}
}
