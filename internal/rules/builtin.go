// SPDX-License-Identifier: AGPL-3.0-or-later

package rules

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/bartekus/commitlint/internal/casing"
	"github.com/bartekus/commitlint/internal/message"
)

var scopeDelimiters = regexp.MustCompile(`/|\\|, ?`)

// Default limits for length rules declared without options.
const (
	DefaultHeaderMaxLength   = 72
	DefaultMaxLineLength     = 100
	DefaultSignedOffByPrefix = "Signed-off-by:"
)

// Builtin returns a new registry holding every built-in rule in a stable order.
func Builtin() *Registry {
	r, err := NewRegistry(builtinRules()...)
	if err != nil {
		panic(err)
	}
	return r
}

func builtinRules() []Rule {
	typ := field{name: "type", get: func(c message.Commit) string { return c.Type }}
	scope := field{name: "scope", get: func(c message.Commit) string { return c.Scope }, split: splitScopes}
	subject := field{name: "subject", get: func(c message.Commit) string { return c.Subject }}
	header := field{name: "header", get: func(c message.Commit) string { return c.Header }}
	body := field{name: "body", get: func(c message.Commit) string { return c.Body }}
	footer := field{name: "footer", get: func(c message.Commit) string { return c.Footer }}

	return []Rule{
		emptyRule(typ),
		enumRule(typ),
		caseRule(typ),
		maxLengthRule(typ, 0),
		minLengthRule(typ),

		emptyRule(scope),
		enumRule(scope),
		caseRule(scope),
		maxLengthRule(scope, 0),
		minLengthRule(scope),

		emptyRule(subject),
		caseRule(subject),
		fullStopRule(subject),
		maxLengthRule(subject, 0),
		minLengthRule(subject),
		exclamationMarkRule(),

		maxLengthRule(header, DefaultHeaderMaxLength),
		minLengthRule(header),
		fullStopRule(header),
		headerTrimRule(),
		caseRule(header),

		leadingBlankRule(body, bodyStart),
		emptyRule(body),
		maxLengthRule(body, 0),
		minLengthRule(body),
		maxLineLengthRule(body),
		fullStopRule(body),

		leadingBlankRule(footer, footerStart),
		emptyRule(footer),
		maxLengthRule(footer, 0),
		minLengthRule(footer),
		maxLineLengthRule(footer),
		signedOffByRule(),
		trailerExistsRule(),
	}
}

// field is a named accessor over a commit. When split is set the field holds several values
// (comma- or slash-separated scopes) that are checked individually.
type field struct {
	name  string
	get   func(message.Commit) string
	split func(string) []string
}

func (f field) values(c message.Commit) []string {
	v := f.get(c)
	if v == "" {
		return nil
	}
	if f.split == nil {
		return []string{v}
	}
	return f.split(v)
}

func splitScopes(s string) []string {
	return scopeDelimiters.Split(s, -1)
}

func emptyRule(f field) Rule {
	return Define(Definition{
		Name:        f.name + "-empty",
		Description: fmt.Sprintf("%s must be empty", f.name),
		Severity:    SeverityError,
		Check: func(c message.Commit, _ any) (Verdict, error) {
			return Expect(strings.TrimSpace(f.get(c)) == "", f.name+" must be empty", f.name+" may not be empty"), nil
		},
	})
}

func enumRule(f field) Rule {
	return Define(Definition{
		Name:        f.name + "-enum",
		Description: fmt.Sprintf("%s must be one of the configured values", f.name),
		Severity:    SeverityError,
		Decode:      func(raw any) (any, error) { return StringList(raw) },
		Check: func(c message.Commit, opts any) (Verdict, error) {
			allowed, _ := opts.([]string)
			values := f.values(c)
			if len(values) == 0 || len(allowed) == 0 {
				return Skip(), nil
			}
			list := "[" + strings.Join(allowed, ", ") + "]"
			offender := f.get(c)
			ok := true
			for _, v := range values {
				if !slices.Contains(allowed, v) {
					offender, ok = v, false
					break
				}
			}
			return Expect(ok,
				fmt.Sprintf("%s %q must be one of %s", f.name, offender, list),
				fmt.Sprintf("%s %q must not be one of %s", f.name, f.get(c), list),
			), nil
		},
	})
}

func caseRule(f field) Rule {
	return Define(Definition{
		Name:        f.name + "-case",
		Description: fmt.Sprintf("%s must follow one of the configured case conventions", f.name),
		Severity:    SeverityError,
		Decode:      func(raw any) (any, error) { return Cases(raw, casing.Lower) },
		Check: func(c message.Commit, opts any) (Verdict, error) {
			want, _ := opts.([]casing.Case)
			values := f.values(c)
			if len(values) == 0 || len(want) == 0 {
				return Skip(), nil
			}
			offender := f.get(c)
			ok := true
			for _, v := range values {
				if !casing.IsAny(v, want) {
					offender, ok = v, false
					break
				}
			}
			desc := describeCases(want)
			return Expect(ok,
				fmt.Sprintf("%s %q must be %s", f.name, offender, desc),
				fmt.Sprintf("%s %q must not be %s", f.name, f.get(c), desc),
			), nil
		},
	})
}

func describeCases(cs []casing.Case) string {
	if len(cs) == 1 {
		return string(cs[0])
	}
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = string(c)
	}
	return "one of [" + strings.Join(names, ", ") + "]"
}

// maxLengthRule: a limit of 0 (the default when def is 0) disables the check.
func maxLengthRule(f field, def int) Rule {
	return Define(Definition{
		Name:        f.name + "-max-length",
		Description: fmt.Sprintf("%s must not exceed the configured length", f.name),
		Severity:    SeverityError,
		Decode:      func(raw any) (any, error) { return Int(raw, def) },
		Check: func(c message.Commit, opts any) (Verdict, error) {
			limit, _ := opts.(int)
			v := f.get(c)
			if v == "" || limit == 0 {
				return Skip(), nil
			}
			n := utf8.RuneCountInString(v)
			return Expect(n <= limit,
				fmt.Sprintf("%s must not be longer than %d characters, current length is %d", f.name, limit, n),
				fmt.Sprintf("%s must be longer than %d characters, current length is %d", f.name, limit, n),
			), nil
		},
	})
}

func minLengthRule(f field) Rule {
	return Define(Definition{
		Name:        f.name + "-min-length",
		Description: fmt.Sprintf("%s must reach the configured length", f.name),
		Severity:    SeverityError,
		Decode:      func(raw any) (any, error) { return Int(raw, 0) },
		Check: func(c message.Commit, opts any) (Verdict, error) {
			limit, _ := opts.(int)
			v := f.get(c)
			if v == "" {
				return Skip(), nil
			}
			n := utf8.RuneCountInString(v)
			return Expect(n >= limit,
				fmt.Sprintf("%s must not be shorter than %d characters, current length is %d", f.name, limit, n),
				fmt.Sprintf("%s must be shorter than %d characters, current length is %d", f.name, limit, n),
			), nil
		},
	})
}

func fullStopRule(f field) Rule {
	return Define(Definition{
		Name:        f.name + "-full-stop",
		Description: fmt.Sprintf("%s must end with the configured character", f.name),
		Severity:    SeverityError,
		Decode: func(raw any) (any, error) {
			s, err := String(raw, ".")
			if err == nil && s == "" {
				err = fmt.Errorf("full stop must not be empty")
			}
			return s, err
		},
		Check: func(c message.Commit, opts any) (Verdict, error) {
			stop, _ := opts.(string)
			v := strings.TrimRight(f.get(c), " \t")
			if v == "" {
				return Skip(), nil
			}
			return Expect(strings.HasSuffix(v, stop),
				fmt.Sprintf("%s must end with %q", f.name, stop),
				fmt.Sprintf("%s may not end with %q", f.name, stop),
			), nil
		},
	})
}

func exclamationMarkRule() Rule {
	return Define(Definition{
		Name:        "subject-exclamation-mark",
		Description: "header must mark a breaking change with '!' before the colon",
		Severity:    SeverityError,
		Check: func(c message.Commit, _ any) (Verdict, error) {
			if !c.Parsed() {
				return Skip(), nil
			}
			return Expect(c.Breaking,
				"subject must have an exclamation mark in the header to identify a breaking change",
				"subject must not have an exclamation mark in the header",
			), nil
		},
	})
}

func headerTrimRule() Rule {
	return Define(Definition{
		Name:        "header-trim",
		Description: "header must not have leading or trailing whitespace",
		Severity:    SeverityError,
		Check: func(c message.Commit, _ any) (Verdict, error) {
			return Expect(c.Header == strings.TrimSpace(c.Header),
				"header must not be surrounded by whitespace",
				"header must be surrounded by whitespace",
			), nil
		},
	})
}
