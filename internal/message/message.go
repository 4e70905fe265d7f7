// SPDX-License-Identifier: AGPL-3.0-or-later

// Package message parses commit messages into conventional-commit fields.
package message

import (
	"regexp"
	"strings"
)

var (
	headerPattern  = regexp.MustCompile(`^(\w*)(\((.*)\))?(!?): (.*)$`)
	trailerPattern = regexp.MustCompile(`^(BREAKING CHANGE|[A-Za-z][A-Za-z0-9-]*)(: | #)(.*)$`)
)

// Trailer is a single "Key: value" (or "Key #value") line from the footer.
type Trailer struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Commit is a parsed commit message. It is a value type; the zero value is an empty message.
type Commit struct {
	Raw      string    `json:"raw"`
	Header   string    `json:"header"`
	Type     string    `json:"type"`
	Scope    string    `json:"scope,omitempty"`
	Subject  string    `json:"subject"`
	Breaking bool      `json:"breaking,omitempty"`
	Body     string    `json:"body,omitempty"`
	Footer   string    `json:"footer,omitempty"`
	Trailers []Trailer `json:"trailers,omitempty"`

	lines    []string
	footerAt int
	parens   bool // header carried "()" even if the scope is empty
}

// Parse splits raw into header fields, body and footer. It never fails: a header that does not
// follow "type(scope): subject" leaves Type, Scope and Subject empty and puts the whole raw
// message into Body.
func Parse(raw string) Commit {
	c := Commit{Raw: raw, footerAt: -1}

	text := strings.TrimRight(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	c.lines = strings.Split(text, "\n")
	c.Header = c.lines[0]

	m := headerPattern.FindStringSubmatch(c.Header)
	if m == nil {
		c.Body = raw
		return c
	}
	c.Type, c.Scope, c.Breaking, c.Subject = m[1], m[3], m[4] == "!", m[5]
	c.parens = m[2] != ""

	end := len(c.lines)
	for i := 1; i < len(c.lines); i++ {
		if isFooter(c.lines[i:]) {
			c.footerAt = i
			end = i
			break
		}
	}

	c.Body = joinTrimmed(c.lines[1:end])
	if c.footerAt > 0 {
		c.Footer = joinTrimmed(c.lines[c.footerAt:])
		c.Trailers = parseTrailers(c.lines[c.footerAt:])
	}
	return c
}

// HeaderString re-serializes the parsed header fields. Empty parentheses are kept when the
// parsed header had them.
func (c Commit) HeaderString() string {
	var b strings.Builder
	b.WriteString(c.Type)
	if c.Scope != "" || c.parens {
		b.WriteString("(" + c.Scope + ")")
	}
	if c.Breaking {
		b.WriteString("!")
	}
	b.WriteString(": ")
	b.WriteString(c.Subject)
	return b.String()
}

// Lines returns the normalized message lines, header first.
func (c Commit) Lines() []string {
	return append([]string(nil), c.lines...)
}

// FooterLine returns the index into Lines of the first footer line, or -1 when there is no footer.
func (c Commit) FooterLine() int {
	if c.footerAt <= 0 {
		return -1
	}
	return c.footerAt
}

// Parsed reports whether the header matched the conventional pattern.
func (c Commit) Parsed() bool {
	return headerPattern.MatchString(c.Header)
}

// Trailer returns the value of the first trailer with the given key (case-insensitive).
func (c Commit) Trailer(key string) (string, bool) {
	for _, t := range c.Trailers {
		if strings.EqualFold(t.Key, key) {
			return t.Value, true
		}
	}
	return "", false
}

// isFooter reports whether lines, starting with a trailer, form a trailing footer block.
func isFooter(lines []string) bool {
	if !trailerPattern.MatchString(lines[0]) {
		return false
	}
	inNote := isBreaking(lines[0])
	for _, line := range lines[1:] {
		switch {
		case trailerPattern.MatchString(line):
			inNote = isBreaking(line)
		case inNote:
		case line != "" && (line[0] == ' ' || line[0] == '\t'):
		default:
			return false
		}
	}
	return true
}

func isBreaking(line string) bool {
	return strings.HasPrefix(line, "BREAKING CHANGE") || strings.HasPrefix(line, "BREAKING-CHANGE")
}

func parseTrailers(lines []string) []Trailer {
	var out []Trailer
	for _, line := range lines {
		m := trailerPattern.FindStringSubmatch(line)
		if m == nil {
			if n := len(out); n > 0 && strings.TrimSpace(line) != "" {
				out[n-1].Value += "\n" + strings.TrimSpace(line)
			}
			continue
		}
		key := m[1]
		if m[2] == " #" {
			m[3] = "#" + m[3]
		}
		out = append(out, Trailer{Key: key, Value: m[3]})
	}
	return out
}

func joinTrimmed(lines []string) string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
