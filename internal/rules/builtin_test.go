package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/commitlint/internal/casing"
	"github.com/bartekus/commitlint/internal/message"
)

// check runs a built-in rule in its "always" form.
func check(t *testing.T, name, raw string, opts any) Verdict {
	t.Helper()
	rule, ok := Builtin().Lookup(name)
	require.True(t, ok, "unknown rule %s", name)
	decoded, err := rule.Decode(opts)
	require.NoError(t, err)
	v, err := rule.Check(message.Parse(raw), decoded)
	require.NoError(t, err)
	return v
}

var conventionalTypes = []any{"build", "chore", "ci", "docs", "feat", "fix", "perf", "refactor", "revert", "style", "test"}

func TestTypeEnum(t *testing.T) {
	assert.True(t, check(t, "type-enum", "feat: add thing", conventionalTypes).Passed)

	v := check(t, "type-enum", "wip: halfway there", conventionalTypes)
	assert.False(t, v.Passed)
	assert.Contains(t, v.Message, `"wip"`)

	assert.True(t, check(t, "type-enum", "no header here", conventionalTypes).Skip)
	assert.True(t, check(t, "type-enum", "wip: x", nil).Skip)
}

func TestTypeEmpty(t *testing.T) {
	v := check(t, "type-empty", "not conventional", nil)
	assert.True(t, v.Passed)
	assert.Equal(t, "type may not be empty", v.Negated)

	assert.False(t, check(t, "type-empty", "fix: x", nil).Passed)
}

func TestTypeCase(t *testing.T) {
	assert.True(t, check(t, "type-case", "fix: x", "lower-case").Passed)

	v := check(t, "type-case", "Fix: x", "lower-case")
	assert.False(t, v.Passed)
	assert.Equal(t, `type "Fix" must be lower-case`, v.Message)
}

func TestScopeCase_MultipleScopes(t *testing.T) {
	opts := []any{"upper-case", "lower-case"}
	assert.True(t, check(t, "scope-case", "fix(API, web): x", opts).Passed)

	v := check(t, "scope-case", "fix(api/Web): x", opts)
	assert.False(t, v.Passed)
	assert.Contains(t, v.Message, `"Web"`)
	assert.Contains(t, v.Message, "one of [upper-case, lower-case]")

	assert.True(t, check(t, "scope-case", "fix: no scope", opts).Skip)
}

func TestScopeEnum(t *testing.T) {
	opts := []string{"api", "web"}
	assert.True(t, check(t, "scope-enum", "fix(api,web): x", opts).Passed)
	assert.False(t, check(t, "scope-enum", "fix(api,db): x", opts).Passed)
	assert.True(t, check(t, "scope-enum", "fix: x", opts).Skip)
	assert.True(t, check(t, "scope-enum", "fix(db): x", nil).Skip)
}

func TestSubjectFullStop(t *testing.T) {
	v := check(t, "subject-full-stop", "fix: fix bug.", ".")
	assert.True(t, v.Passed)
	assert.Equal(t, `subject may not end with "."`, v.Negated)

	assert.False(t, check(t, "subject-full-stop", "fix: fix bug", ".").Passed)
	assert.True(t, check(t, "subject-full-stop", "fix: ", nil).Skip)
}

func TestSubjectCase(t *testing.T) {
	opts := []any{"sentence-case", "start-case", "pascal-case", "upper-case"}
	assert.True(t, check(t, "subject-case", "fix: Fix the bug", opts).Passed)
	assert.False(t, check(t, "subject-case", "fix: fix the bug", opts).Passed)
}

func TestHeaderMaxLength(t *testing.T) {
	long := "feat: " + strings.Repeat("x", 84)
	v := check(t, "header-max-length", long, 80)
	assert.False(t, v.Passed)
	assert.Contains(t, v.Message, "current length is 90")

	assert.True(t, check(t, "header-max-length", "feat: short", 80).Passed)

	// Without options the default limit applies.
	v = check(t, "header-max-length", long, nil)
	assert.False(t, v.Skip)
	assert.False(t, v.Passed)
}

func TestHeaderTrim(t *testing.T) {
	assert.True(t, check(t, "header-trim", "fix: x", nil).Passed)
	assert.False(t, check(t, "header-trim", " fix: x", nil).Passed)
}

func TestSubjectExclamationMark(t *testing.T) {
	assert.True(t, check(t, "subject-exclamation-mark", "feat!: drop v1", nil).Passed)
	assert.False(t, check(t, "subject-exclamation-mark", "feat: drop v1", nil).Passed)
	assert.True(t, check(t, "subject-exclamation-mark", "random text", nil).Skip)
}

func TestBodyLeadingBlank(t *testing.T) {
	assert.True(t, check(t, "body-leading-blank", "fix: x\n\nbody", nil).Passed)
	assert.False(t, check(t, "body-leading-blank", "fix: x\nbody", nil).Passed)
	assert.True(t, check(t, "body-leading-blank", "fix: x", nil).Skip)
}

func TestFooterLeadingBlank(t *testing.T) {
	assert.True(t, check(t, "footer-leading-blank", "fix: x\n\nbody\n\nRefs: #1", nil).Passed)
	assert.False(t, check(t, "footer-leading-blank", "fix: x\n\nbody\nRefs: #1", nil).Passed)
	assert.True(t, check(t, "footer-leading-blank", "fix: x\n\nbody", nil).Skip)
}

func TestBodyMaxLineLength(t *testing.T) {
	line := strings.Repeat("word ", 6)
	v := check(t, "body-max-line-length", "fix: x\n\nshort\n"+line, 20)
	assert.False(t, v.Passed)
	assert.Contains(t, v.Message, "line 2")

	assert.True(t, check(t, "body-max-line-length", "fix: x\n\nhttps://example.com/a/very/long/link/that/goes/on", 20).Passed)
}

func TestSignedOffBy(t *testing.T) {
	assert.True(t, check(t, "signed-off-by", "fix: x\n\nSigned-off-by: Dev <d@example.com>\n# comment", nil).Passed)
	assert.False(t, check(t, "signed-off-by", "fix: x\n\nbody", nil).Passed)
}

func TestTrailerExists(t *testing.T) {
	assert.True(t, check(t, "trailer-exists", "fix: x\n\nReviewed-by: Ops", "Reviewed-by:").Passed)
	assert.False(t, check(t, "trailer-exists", "fix: x\n\nbody", "Reviewed-by").Passed)
	assert.True(t, check(t, "trailer-exists", "fix: x", nil).Skip)
}

func TestDecode_RejectsMalformedOptions(t *testing.T) {
	r := Builtin()
	cases := map[string]any{
		"type-enum":         42,
		"type-case":         "shouting-case",
		"header-max-length": "eighty",
		"subject-full-stop": []any{"."},
		"body-max-length":   -1,
		"trailer-exists":    "",
	}
	for name, opts := range cases {
		rule, ok := r.Lookup(name)
		require.True(t, ok, name)
		_, err := rule.Decode(opts)
		assert.Error(t, err, name)
	}
}

func TestCases_TypedValues(t *testing.T) {
	got, err := Cases(casing.Kebab)
	require.NoError(t, err)
	assert.Equal(t, []casing.Case{casing.Kebab}, got)

	got, err = Cases([]casing.Case{casing.Lower, casing.Case("UPPER-CASE")})
	require.NoError(t, err)
	assert.Equal(t, []casing.Case{casing.Lower, casing.Upper}, got)

	_, err = Cases(casing.Case("bogus"))
	assert.Error(t, err)
	_, err = Cases([]casing.Case{casing.Lower, "bogus"})
	assert.Error(t, err)
	_, err = Cases([]casing.Case{})
	assert.Error(t, err)

	rule, ok := Builtin().Lookup("subject-case")
	require.True(t, ok)
	_, err = rule.Decode(casing.Case("bogus"))
	assert.Error(t, err)
}

func TestEmpty_WhitespaceOnly(t *testing.T) {
	assert.True(t, check(t, "subject-empty", "feat: \t", nil).Passed)
	assert.True(t, check(t, "scope-empty", "feat( ): x", nil).Passed)
	assert.False(t, check(t, "subject-empty", "feat: x", nil).Passed)
}
