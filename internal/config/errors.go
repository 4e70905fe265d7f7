// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for configuration problems. Every one of them also satisfies
// errors.Is(err, ErrInvalidConfig).
var (
	// ErrInvalidConfig is the umbrella for every configuration error.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrUnknownRule indicates a rule name no registry or plugin provides.
	ErrUnknownRule = errors.New("config: unknown rule")

	// ErrUnknownPreset indicates an extends entry that names no known preset.
	ErrUnknownPreset = errors.New("config: unknown preset")

	// ErrUnknownPlugin indicates a plugins entry that names no known plugin.
	ErrUnknownPlugin = errors.New("config: unknown plugin")

	// ErrExtendsCycle indicates a preset that extends itself, directly or transitively.
	ErrExtendsCycle = errors.New("config: extends cycle")

	// ErrMalformedRule indicates a rule declaration with a bad level, applicability or shape.
	ErrMalformedRule = errors.New("config: malformed rule declaration")

	// ErrInvalidOptions indicates options the rule could not decode.
	ErrInvalidOptions = errors.New("config: invalid rule options")

	// ErrInvalidYAML indicates a configuration file that is not valid YAML or JSON.
	ErrInvalidYAML = errors.New("config: invalid YAML syntax")
)

// ValidationError is a single configuration problem.
type ValidationError struct {
	Source  string // file or preset that declared the offending value
	Line    int
	Rule    string
	Field   string
	Message string
	Value   any
	Wrapped error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.Source != "" {
		b.WriteString(e.Source)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
		b.WriteString(": ")
	}
	switch {
	case e.Rule != "":
		fmt.Fprintf(&b, "rule %q: ", e.Rule)
	case e.Field != "":
		fmt.Fprintf(&b, "%s: ", e.Field)
	}
	b.WriteString(e.Message)
	if e.Value != nil {
		fmt.Fprintf(&b, " (got: %v)", e.Value)
	}
	return b.String()
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Wrapped
}

// Is makes every ValidationError match ErrInvalidConfig.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// ValidationErrors collects every problem found while resolving a configuration.
type ValidationErrors struct {
	Errors []ValidationError
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "config: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msgs := make([]string, len(e.Errors))
	for i := range e.Errors {
		msgs[i] = e.Errors[i].Error()
	}
	return fmt.Sprintf("%d configuration errors: %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Is supports errors.Is against ErrInvalidConfig and any contained sentinel.
func (e *ValidationErrors) Is(target error) bool {
	if target == ErrInvalidConfig {
		return true
	}
	for _, ve := range e.Errors {
		if ve.Wrapped != nil && errors.Is(ve.Wrapped, target) {
			return true
		}
	}
	return false
}
