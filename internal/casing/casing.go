// SPDX-License-Identifier: AGPL-3.0-or-later

// Package casing classifies strings by case convention.
package casing

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Case names a case convention.
type Case string

const (
	Lower    Case = "lower-case"
	Upper    Case = "upper-case"
	Camel    Case = "camel-case"
	Kebab    Case = "kebab-case"
	Pascal   Case = "pascal-case"
	Sentence Case = "sentence-case"
	Snake    Case = "snake-case"
	Start    Case = "start-case"
)

// All lists every supported case in a stable order.
var All = []Case{Lower, Upper, Camel, Kebab, Pascal, Sentence, Snake, Start}

var (
	quoted = regexp.MustCompile("`[^`]*`|\"[^\"]*\"|'[^']*'")

	camelPattern  = regexp.MustCompile(`^\p{Ll}[\p{Ll}\p{Nd}]*(\p{Lu}[\p{Ll}\p{Nd}]*)*$`)
	pascalPattern = regexp.MustCompile(`^(\p{Lu}[\p{Ll}\p{Nd}]*)+$`)
	kebabPattern  = regexp.MustCompile(`^[\p{Ll}\p{Nd}]+(-[\p{Ll}\p{Nd}]+)*$`)
	snakePattern  = regexp.MustCompile(`^[\p{Ll}\p{Nd}]+(_[\p{Ll}\p{Nd}]+)*$`)
	startPattern  = regexp.MustCompile(`^(\p{Lu}[\p{Ll}\p{Nd}]*|[\p{Lu}\p{Nd}]+)( (\p{Lu}[\p{Ll}\p{Nd}]*|[\p{Lu}\p{Nd}]+))*$`)

	lowerCaser = cases.Lower(language.Und)
	upperCaser = cases.Upper(language.Und)
)

// Parse maps a case name to a Case. Names are matched case-insensitively and the legacy
// spellings without a hyphen ("lowercase", "camelcase") are accepted.
func Parse(name string) (Case, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, c := range All {
		if n == string(c) || n == strings.ReplaceAll(string(c), "-", "") {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown case %q", name)
}

// Is reports whether s follows the case convention c.
//
// Quoted and back-ticked segments are ignored. An empty remainder, or one starting with a
// digit, satisfies every convention.
func Is(s string, c Case) bool {
	s = strings.TrimSpace(quoted.ReplaceAllString(s, ""))
	if s == "" {
		return true
	}
	if r, _ := utf8.DecodeRuneInString(s); unicode.IsDigit(r) {
		return true
	}

	switch c {
	case Lower:
		return lowerCaser.String(s) == s
	case Upper:
		return upperCaser.String(s) == s
	case Camel:
		return camelPattern.MatchString(s) && !hasUpperRun(s)
	case Pascal:
		return pascalPattern.MatchString(s) && !hasUpperRun(s)
	case Kebab:
		return kebabPattern.MatchString(s)
	case Snake:
		return snakePattern.MatchString(s)
	case Start:
		return startPattern.MatchString(s)
	case Sentence:
		return isSentence(s)
	}
	return false
}

// IsAny reports whether s follows at least one of the given conventions.
func IsAny(s string, cs []Case) bool {
	for _, c := range cs {
		if Is(s, c) {
			return true
		}
	}
	return false
}

// Classify returns every convention s satisfies, in the order of All.
func Classify(s string) []Case {
	var out []Case
	for _, c := range All {
		if Is(s, c) {
			out = append(out, c)
		}
	}
	return out
}

// isSentence: the first rune is an uppercase letter and the rest of the first word has no
// uppercase letters. Later words are unconstrained.
func isSentence(s string) bool {
	first, size := utf8.DecodeRuneInString(s)
	if !unicode.IsUpper(first) {
		return false
	}
	word, _, _ := strings.Cut(s[size:], " ")
	return lowerCaser.String(word) == word
}

// hasUpperRun reports whether s contains two adjacent uppercase letters, which camel and pascal
// case never produce ("HTTPServer" is written "HttpServer").
func hasUpperRun(s string) bool {
	prev := false
	for _, r := range s {
		upper := unicode.IsUpper(r)
		if upper && prev {
			return true
		}
		prev = upper
	}
	return false
}
