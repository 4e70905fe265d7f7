// SPDX-License-Identifier: AGPL-3.0-or-later

package rules

import (
	"errors"
	"fmt"
)

// ErrDuplicateRule is returned when a name is registered twice.
var ErrDuplicateRule = errors.New("rule already registered")

// Registry maps rule names to implementations, in registration order.
//
// A Registry is not safe for concurrent registration; once populated it is read-only and may
// be shared freely between goroutines.
type Registry struct {
	order []string
	rules map[string]Rule
}

// NewRegistry returns a registry holding the given rules.
func NewRegistry(rules ...Rule) (*Registry, error) {
	r := &Registry{rules: make(map[string]Rule, len(rules))}
	for _, rule := range rules {
		if err := r.Register(rule); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a rule under its name.
func (r *Registry) Register(rule Rule) error {
	name := rule.Name()
	if name == "" {
		return errors.New("rule name must not be empty")
	}
	if _, exists := r.rules[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRule, name)
	}
	if r.rules == nil {
		r.rules = make(map[string]Rule)
	}
	r.order = append(r.order, name)
	r.rules[name] = rule
	return nil
}

// Lookup returns the rule registered under name.
func (r *Registry) Lookup(name string) (Rule, bool) {
	rule, ok := r.rules[name]
	return rule, ok
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Rules returns the registered rules in registration order.
func (r *Registry) Rules() []Rule {
	out := make([]Rule, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.rules[name])
	}
	return out
}

// Len returns the number of registered rules.
func (r *Registry) Len() int { return len(r.order) }

// With returns a copy of r extended with extra rules. r itself is left untouched.
func (r *Registry) With(extra ...Rule) (*Registry, error) {
	return NewRegistry(append(r.Rules(), extra...)...)
}
