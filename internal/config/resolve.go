// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/bartekus/commitlint/internal/plugins"
	"github.com/bartekus/commitlint/internal/rules"
)

// RuleSpec is one fully resolved rule.
type RuleSpec struct {
	Name     string
	Severity rules.Severity
	When     rules.When
	// Options holds what the rule's Decode returned; Raw holds the declared value.
	Options any
	Raw     any
	Rule    rules.Rule
	Inline  bool
	Source  string
}

// Resolved is a flat, validated configuration. It is read-only and safe for concurrent use.
type Resolved struct {
	rules   []RuleSpec
	index   map[string]int
	plugins []string
	helpURL string
	ignores []*regexp.Regexp
}

// Rules returns the resolved rules in declaration order, disabled ones included.
func (r *Resolved) Rules() []RuleSpec {
	return append([]RuleSpec(nil), r.rules...)
}

// Rule returns the resolved rule with the given name.
func (r *Resolved) Rule(name string) (RuleSpec, bool) {
	i, ok := r.index[name]
	if !ok {
		return RuleSpec{}, false
	}
	return r.rules[i], true
}

// Plugins returns the enabled plugin names.
func (r *Resolved) Plugins() []string {
	return append([]string(nil), r.plugins...)
}

// HelpURL returns the link printed under failing reports.
func (r *Resolved) HelpURL() string { return r.helpURL }

// IgnorePatterns returns the source of every ignore pattern, defaults first.
func (r *Resolved) IgnorePatterns() []string {
	out := make([]string, len(r.ignores))
	for i, re := range r.ignores {
		out[i] = re.String()
	}
	return out
}

// Ignored reports whether raw matches one of the ignore patterns.
func (r *Resolved) Ignored(raw string) bool {
	for _, re := range r.ignores {
		if re.MatchString(raw) {
			return true
		}
	}
	return false
}

// Resolver merges declarations with presets and plugins against a rule registry.
type Resolver struct {
	registry *rules.Registry
	presets  Presets
	plugins  map[string]rules.Plugin
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRegistry replaces the built-in rule registry.
func WithRegistry(reg *rules.Registry) Option {
	return func(r *Resolver) { r.registry = reg }
}

// WithPresets adds presets on top of the built-in ones.
func WithPresets(p Presets) Option {
	return func(r *Resolver) { r.presets = r.presets.Merge(p) }
}

// WithPlugins adds plugins on top of the built-in ones.
func WithPlugins(p map[string]rules.Plugin) Option {
	return func(r *Resolver) {
		for name, plugin := range p {
			r.plugins[name] = plugin
		}
	}
}

// NewResolver returns a resolver over the built-in rules, presets and plugins.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		registry: rules.Builtin(),
		presets:  BuiltinPresets(),
		plugins:  plugins.Builtin(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve resolves decl with the built-in rules, presets and plugins.
func Resolve(decl Declared) (*Resolved, error) {
	return NewResolver().Resolve(decl)
}

// layer accumulates merged declarations. A rule keeps the position of its first declaration;
// later declarations replace its value.
type layer struct {
	rules          []RuleDecl
	index          map[string]int
	plugins        []string
	helpURL        string
	ignores        []string
	defaultIgnores *bool
}

func (l *layer) merge(o layer) {
	for _, d := range o.rules {
		l.put(d)
	}
	for _, p := range o.plugins {
		if !slices.Contains(l.plugins, p) {
			l.plugins = append(l.plugins, p)
		}
	}
	if o.helpURL != "" {
		l.helpURL = o.helpURL
	}
	l.ignores = append(l.ignores, o.ignores...)
	if o.defaultIgnores != nil {
		l.defaultIgnores = o.defaultIgnores
	}
}

func (l *layer) put(d RuleDecl) {
	if l.index == nil {
		l.index = make(map[string]int)
	}
	if i, ok := l.index[d.Name]; ok {
		l.rules[i] = d
		return
	}
	l.index[d.Name] = len(l.rules)
	l.rules = append(l.rules, d)
}

func ownLayer(d Declared) layer {
	var l layer
	for _, rd := range d.Rules {
		if rd.Source == "" {
			rd.Source = d.Source
		}
		l.put(rd)
	}
	l.plugins = append(l.plugins, d.Plugins...)
	l.helpURL = d.HelpURL
	l.ignores = d.Ignores
	l.defaultIgnores = d.DefaultIgnores
	return l
}

// flatten merges decl's presets in declaration order and then decl itself.
func (r *Resolver) flatten(d Declared, stack []string, errs *[]ValidationError) layer {
	var out layer
	for _, name := range d.Extends {
		if slices.Contains(stack, name) {
			*errs = append(*errs, ValidationError{
				Source:  d.Source,
				Field:   "extends",
				Message: "cycle " + strings.Join(append(slices.Clone(stack), name), " -> "),
				Wrapped: ErrExtendsCycle,
			})
			continue
		}
		preset, ok := r.presets[name]
		if !ok {
			*errs = append(*errs, ValidationError{
				Source:  d.Source,
				Field:   "extends",
				Message: "unknown preset",
				Value:   name,
				Wrapped: ErrUnknownPreset,
			})
			continue
		}
		if preset.Source == "" {
			preset.Source = name
		}
		out.merge(r.flatten(preset, append(slices.Clone(stack), name), errs))
	}
	out.merge(ownLayer(d))
	return out
}

// Resolve merges decl with the presets it extends, applies its rules as the final overlay and
// validates the result. Disabled rules are validated too. On any problem Resolve returns a
// *ValidationErrors describing all of them and no configuration.
func (r *Resolver) Resolve(decl Declared) (*Resolved, error) {
	var errs []ValidationError

	var stack []string
	if decl.Name != "" {
		stack = []string{decl.Name}
	}
	merged := r.flatten(decl, stack, &errs)

	registry, pluginNames := r.effectiveRegistry(merged.plugins, decl.Source, &errs)

	out := &Resolved{
		index:   make(map[string]int, len(merged.rules)),
		plugins: pluginNames,
		helpURL: merged.helpURL,
	}
	for _, d := range merged.rules {
		spec, ok := resolveRule(registry, d, &errs)
		if !ok {
			continue
		}
		out.index[spec.Name] = len(out.rules)
		out.rules = append(out.rules, spec)
	}

	if merged.defaultIgnores == nil || *merged.defaultIgnores {
		out.ignores = append(out.ignores, defaultIgnores...)
	}
	for _, pattern := range merged.ignores {
		re, err := regexp.Compile(pattern)
		if err != nil {
			errs = append(errs, ValidationError{
				Source: decl.Source, Field: "ignores", Message: err.Error(), Value: pattern, Wrapped: ErrInvalidConfig,
			})
			continue
		}
		out.ignores = append(out.ignores, re)
	}

	if len(errs) > 0 {
		return nil, &ValidationErrors{Errors: errs}
	}
	return out, nil
}

func (r *Resolver) effectiveRegistry(names []string, source string, errs *[]ValidationError) (*rules.Registry, []string) {
	var extra []rules.Rule
	var enabled []string
	seen := map[string]bool{}
	for _, name := range names {
		p, ok := r.plugins[name]
		if !ok {
			*errs = append(*errs, ValidationError{
				Source: source, Field: "plugins", Message: "unknown plugin", Value: name, Wrapped: ErrUnknownPlugin,
			})
			continue
		}
		if seen[p.Name()] {
			continue
		}
		seen[p.Name()] = true
		enabled = append(enabled, p.Name())
		extra = append(extra, p.Rules(r.registry)...)
	}
	if len(extra) == 0 {
		return r.registry, enabled
	}
	reg, err := r.registry.With(extra...)
	if err != nil {
		*errs = append(*errs, ValidationError{
			Source: source, Field: "plugins", Message: err.Error(), Wrapped: ErrInvalidConfig,
		})
		return r.registry, enabled
	}
	return reg, enabled
}

func resolveRule(registry *rules.Registry, d RuleDecl, errs *[]ValidationError) (RuleSpec, bool) {
	fail := func(sentinel error, format string, args ...any) (RuleSpec, bool) {
		*errs = append(*errs, ValidationError{
			Source: d.Source, Line: d.Line, Rule: d.Name, Message: fmt.Sprintf(format, args...), Wrapped: sentinel,
		})
		return RuleSpec{}, false
	}

	var rule rules.Rule
	switch {
	case d.Func != nil:
		rule = rules.Func(d.Name, d.Func)
	default:
		var ok bool
		if rule, ok = registry.Lookup(d.Name); !ok {
			if strings.Contains(d.Name, "/") {
				return fail(ErrUnknownRule, "unknown rule; is the plugin that provides it enabled?")
			}
			return fail(ErrUnknownRule, "unknown rule")
		}
	}

	severity := rule.DefaultSeverity()
	if d.Level != LevelDefault {
		s, err := rules.SeverityFromLevel(d.Level)
		if err != nil {
			return fail(ErrMalformedRule, "%v", err)
		}
		severity = s
	}

	when, err := rules.ParseWhen(string(d.When))
	if err != nil {
		return fail(ErrMalformedRule, "%v", err)
	}

	opts, err := rule.Decode(d.Options)
	if err != nil {
		return fail(ErrInvalidOptions, "%v", err)
	}

	return RuleSpec{
		Name:     d.Name,
		Severity: severity,
		When:     when,
		Options:  opts,
		Raw:      d.Options,
		Rule:     rule,
		Inline:   d.Func != nil,
		Source:   d.Source,
	}, true
}
