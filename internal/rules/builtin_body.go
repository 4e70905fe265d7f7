// SPDX-License-Identifier: AGPL-3.0-or-later

package rules

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bartekus/commitlint/internal/message"
)

// bodyStart returns the line that must be blank before the body, or -1 without a body.
func bodyStart(c message.Commit) int {
	if c.Body == "" {
		return -1
	}
	return 1
}

// footerStart returns the line that must be blank before the footer, or -1 without a footer.
func footerStart(c message.Commit) int {
	at := c.FooterLine()
	if at < 0 {
		return -1
	}
	return at - 1
}

func leadingBlankRule(f field, blankAt func(message.Commit) int) Rule {
	return Define(Definition{
		Name:        f.name + "-leading-blank",
		Description: fmt.Sprintf("%s must be separated from the preceding text by a blank line", f.name),
		Severity:    SeverityWarning,
		Check: func(c message.Commit, _ any) (Verdict, error) {
			at := blankAt(c)
			if at < 0 {
				return Skip(), nil
			}
			lines := c.Lines()
			ok := at >= len(lines) || strings.TrimSpace(lines[at]) == ""
			return Expect(ok,
				f.name+" must have leading blank line",
				f.name+" may not have leading blank line",
			), nil
		},
	})
}

func maxLineLengthRule(f field) Rule {
	return Define(Definition{
		Name:        f.name + "-max-line-length",
		Description: fmt.Sprintf("every %s line must not exceed the configured length", f.name),
		Severity:    SeverityError,
		Decode:      func(raw any) (any, error) { return Int(raw, DefaultMaxLineLength) },
		Check: func(c message.Commit, opts any) (Verdict, error) {
			limit, _ := opts.(int)
			v := f.get(c)
			if v == "" || limit == 0 {
				return Skip(), nil
			}
			for i, line := range strings.Split(v, "\n") {
				if isURLLine(line) {
					continue
				}
				if n := utf8.RuneCountInString(line); n > limit {
					return Expect(false,
						fmt.Sprintf("%s's lines must not be longer than %d characters (line %d has %d)", f.name, limit, i+1, n),
						"",
					), nil
				}
			}
			return Expect(true, "", fmt.Sprintf("%s's lines must be longer than %d characters", f.name, limit)), nil
		},
	})
}

// isURLLine reports whether the line is a bare link, which may exceed line limits.
func isURLLine(line string) bool {
	s := strings.TrimSpace(line)
	return !strings.Contains(s, " ") && strings.Contains(s, "://")
}

func signedOffByRule() Rule {
	return Define(Definition{
		Name:        "signed-off-by",
		Description: "the last line must be a sign-off trailer",
		Severity:    SeverityError,
		Decode: func(raw any) (any, error) {
			s, err := String(raw, DefaultSignedOffByPrefix)
			if err == nil && s == "" {
				err = fmt.Errorf("sign-off prefix must not be empty")
			}
			return s, err
		},
		Check: func(c message.Commit, opts any) (Verdict, error) {
			prefix, _ := opts.(string)
			last := ""
			lines := c.Lines()
			for i := len(lines) - 1; i > 0; i-- {
				l := strings.TrimSpace(lines[i])
				if l == "" || strings.HasPrefix(l, "#") {
					continue
				}
				last = l
				break
			}
			return Expect(strings.HasPrefix(last, prefix),
				fmt.Sprintf("message must be signed off with %q", prefix),
				fmt.Sprintf("message must not be signed off with %q", prefix),
			), nil
		},
	})
}

func trailerExistsRule() Rule {
	return Define(Definition{
		Name:        "trailer-exists",
		Description: "the footer must contain the configured trailer",
		Severity:    SeverityError,
		Decode: func(raw any) (any, error) {
			if raw == nil {
				return "", nil
			}
			s, err := String(raw, "")
			if err != nil {
				return nil, err
			}
			s = strings.TrimSuffix(strings.TrimSpace(s), ":")
			if s == "" {
				return nil, fmt.Errorf("trailer name must not be empty")
			}
			return s, nil
		},
		Check: func(c message.Commit, opts any) (Verdict, error) {
			key, _ := opts.(string)
			if key == "" {
				return Skip(), nil
			}
			_, ok := c.Trailer(key)
			return Expect(ok,
				fmt.Sprintf("message must have %q trailer", key),
				fmt.Sprintf("message must not have %q trailer", key),
			), nil
		},
	})
}
