// SPDX-License-Identifier: AGPL-3.0-or-later

package rules

import (
	"fmt"
	"strings"
)

// Severity governs whether a failed rule affects the overall verdict.
type Severity int

const (
	SeverityOff Severity = iota
	SeverityWarning
	SeverityError
)

// SeverityFromLevel maps the integer rank used in configuration (0, 1, 2) to a Severity.
func SeverityFromLevel(level int) (Severity, error) {
	switch level {
	case 0:
		return SeverityOff, nil
	case 1:
		return SeverityWarning, nil
	case 2:
		return SeverityError, nil
	}
	return SeverityOff, fmt.Errorf("severity level must be 0, 1 or 2, got %d", level)
}

func (s Severity) String() string {
	switch s {
	case SeverityOff:
		return "off"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// Level returns the integer rank of s.
func (s Severity) Level() int { return int(s) }

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "off", "0":
		*s = SeverityOff
	case "warning", "warn", "1":
		*s = SeverityWarning
	case "error", "2":
		*s = SeverityError
	default:
		return fmt.Errorf("unknown severity %q", string(b))
	}
	return nil
}

// When selects whether a rule asserts its condition or the opposite.
type When string

const (
	Always When = "always"
	Never  When = "never"
)

// ParseWhen accepts "always", "never" or an empty string (always).
func ParseWhen(s string) (When, error) {
	switch When(s) {
	case "", Always:
		return Always, nil
	case Never:
		return Never, nil
	}
	return "", fmt.Errorf("applicability must be %q or %q, got %q", Always, Never, s)
}
