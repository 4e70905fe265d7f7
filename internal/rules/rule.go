// SPDX-License-Identifier: AGPL-3.0-or-later

// Package rules defines commit message rules and the registry that names them.
package rules

import (
	"fmt"

	"github.com/bartekus/commitlint/internal/message"
)

// Verdict is the severity-free result of a single rule check.
type Verdict struct {
	// Passed reports whether the "always" form of the rule holds.
	Passed bool
	// Skip marks the rule as not applicable to this message (e.g. the field is empty).
	// A skipped verdict passes for both always and never.
	Skip bool
	// Message describes the "always" expectation; shown when that form fails.
	Message string
	// Negated describes the "never" expectation; shown when that form fails.
	Negated string
}

// Pass is a passing verdict with no message.
func Pass() Verdict { return Verdict{Passed: true} }

// Skip is a verdict for a rule that does not apply.
func Skip() Verdict { return Verdict{Passed: true, Skip: true} }

// Fail is a failing verdict with the given message.
func Fail(format string, args ...any) Verdict {
	return Verdict{Message: fmt.Sprintf(format, args...)}
}

// Expect builds a verdict from a condition and the messages for both forms of the rule.
func Expect(ok bool, always, never string) Verdict {
	return Verdict{Passed: ok, Message: always, Negated: never}
}

// CheckFunc evaluates a commit against decoded options.
type CheckFunc func(msg message.Commit, opts any) (Verdict, error)

// Rule is a named check. Decode validates and converts raw configuration options once, at
// resolve time; Check receives whatever Decode returned.
type Rule interface {
	Name() string
	DefaultSeverity() Severity
	Decode(raw any) (any, error)
	Check(msg message.Commit, opts any) (Verdict, error)
}

// Plugin contributes additional rules to a registry.
type Plugin interface {
	Name() string
	Rules(base *Registry) []Rule
}

// Definition describes a rule built by Define.
type Definition struct {
	Name        string
	Description string
	Severity    Severity
	Decode      func(raw any) (any, error)
	Check       CheckFunc
}

type ruleHandler struct {
	def Definition
}

// Define builds a Rule from a Definition. A nil Decode passes options through unchanged.
func Define(def Definition) Rule {
	return ruleHandler{def: def}
}

func (h ruleHandler) Name() string              { return h.def.Name }
func (h ruleHandler) DefaultSeverity() Severity { return h.def.Severity }
func (h ruleHandler) Description() string       { return h.def.Description }

func (h ruleHandler) Decode(raw any) (any, error) {
	if h.def.Decode == nil {
		return raw, nil
	}
	return h.def.Decode(raw)
}

func (h ruleHandler) Check(msg message.Commit, opts any) (Verdict, error) {
	if h.def.Check == nil {
		return Verdict{}, fmt.Errorf("rule %s has no check", h.def.Name)
	}
	return h.def.Check(msg, opts)
}

// Func wraps an inline predicate as a Rule with error severity by default.
func Func(name string, fn CheckFunc) Rule {
	return Define(Definition{Name: name, Severity: SeverityError, Check: fn, Description: "inline rule"})
}

// Describe returns a rule's description, if it has one.
func Describe(r Rule) string {
	if d, ok := r.(interface{ Description() string }); ok {
		return d.Description()
	}
	return ""
}
