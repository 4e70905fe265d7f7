// SPDX-License-Identifier: AGPL-3.0-or-later

package rules

import (
	"fmt"
	"math"

	"github.com/bartekus/commitlint/internal/casing"
)

// Options arrive either from Go callers (typed values) or from YAML/JSON files
// (any, []any, map[string]any). The helpers below accept both.

// StringList decodes a list of strings. A single string is treated as a one-element list and
// nil as an empty list.
func StringList(raw any) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []string:
		return append([]string(nil), v...), nil
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("item %d: expected string, got %T", i, item)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected a list of strings, got %T", raw)
}

// Int decodes a non-negative integer, returning def when raw is nil.
func Int(raw any, def int) (int, error) {
	var n int
	switch v := raw.(type) {
	case nil:
		return def, nil
	case int:
		n = v
	case int64:
		n = int(v)
	case uint64:
		n = int(v)
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("expected an integer, got %v", v)
		}
		n = int(v)
	default:
		return 0, fmt.Errorf("expected an integer, got %T", raw)
	}
	if n < 0 {
		return 0, fmt.Errorf("expected a non-negative integer, got %d", n)
	}
	return n, nil
}

// String decodes a string, returning def when raw is nil.
func String(raw any, def string) (string, error) {
	switch v := raw.(type) {
	case nil:
		return def, nil
	case string:
		return v, nil
	}
	return "", fmt.Errorf("expected a string, got %T", raw)
}

// Cases decodes one case name or a list of them. nil yields def.
func Cases(raw any, def ...casing.Case) ([]casing.Case, error) {
	if raw == nil {
		return def, nil
	}
	var names []string
	switch v := raw.(type) {
	case casing.Case:
		names = []string{string(v)}
	case []casing.Case:
		for _, c := range v {
			names = append(names, string(c))
		}
	default:
		var err error
		if names, err = StringList(raw); err != nil {
			return nil, err
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("expected at least one case")
	}
	out := make([]casing.Case, 0, len(names))
	for _, name := range names {
		c, err := casing.Parse(name)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
