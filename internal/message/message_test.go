package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Header(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		typ      string
		scope    string
		subject  string
		breaking bool
	}{
		{name: "type only", raw: "fix: handle nil config", typ: "fix", subject: "handle nil config"},
		{name: "with scope", raw: "feat(api): add endpoint", typ: "feat", scope: "api", subject: "add endpoint"},
		{name: "ticket scope", raw: "chore(JIRA-123): bump deps", typ: "chore", scope: "JIRA-123", subject: "bump deps"},
		{name: "breaking", raw: "refactor(core)!: drop v1", typ: "refactor", scope: "core", subject: "drop v1", breaking: true},
		{name: "empty type", raw: "(ui): tweak", typ: "", scope: "ui", subject: "tweak"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Parse(tt.raw)
			assert.True(t, c.Parsed())
			assert.Equal(t, tt.typ, c.Type)
			assert.Equal(t, tt.scope, c.Scope)
			assert.Equal(t, tt.subject, c.Subject)
			assert.Equal(t, tt.breaking, c.Breaking)
			assert.Empty(t, c.Body)
			assert.Empty(t, c.Footer)
		})
	}
}

func TestParse_HeaderRoundTrip(t *testing.T) {
	headers := []string{
		"feat(parser): support trailers",
		"fix: off by one",
		"docs(readme)!: rewrite install section",
		"test(JIRA-42): cover the empty case",
		"feat(): empty scope",
		"chore()!: drop node 16",
	}
	for _, h := range headers {
		assert.Equal(t, h, Parse(h+"\n\nbody text").HeaderString(), h)
	}
}

func TestParse_EmptyScopeParens(t *testing.T) {
	c := Parse("feat(): x")
	assert.Equal(t, "feat", c.Type)
	assert.Empty(t, c.Scope)
	assert.Equal(t, "x", c.Subject)

	assert.Equal(t, "feat: x", Commit{Type: "feat", Subject: "x"}.HeaderString())
}

func TestParse_Degraded(t *testing.T) {
	raw := "Update stuff\n\nsome details"
	c := Parse(raw)

	assert.False(t, c.Parsed())
	assert.Equal(t, "Update stuff", c.Header)
	assert.Empty(t, c.Type)
	assert.Empty(t, c.Scope)
	assert.Empty(t, c.Subject)
	assert.Equal(t, raw, c.Body)
	assert.Empty(t, c.Footer)
	assert.Equal(t, -1, c.FooterLine())
}

func TestParse_EmptyMessage(t *testing.T) {
	c := Parse("")
	assert.Empty(t, c.Header)
	assert.Empty(t, c.Type)
	assert.Empty(t, c.Body)
}

func TestParse_BodyAndFooter(t *testing.T) {
	raw := "feat(cli): add --watch\r\n\r\nRe-lint the message file whenever it changes.\r\nUseful in editors.\r\n\r\nRefs #12\r\nSigned-off-by: Dev <dev@example.com>\r\n"
	c := Parse(raw)

	assert.Equal(t, "Re-lint the message file whenever it changes.\nUseful in editors.", c.Body)
	assert.Equal(t, "Refs #12\nSigned-off-by: Dev <dev@example.com>", c.Footer)
	assert.Equal(t, 5, c.FooterLine())
	require.Len(t, c.Trailers, 2)
	assert.Equal(t, Trailer{Key: "Refs", Value: "#12"}, c.Trailers[0])

	v, ok := c.Trailer("signed-off-by")
	require.True(t, ok)
	assert.Equal(t, "Dev <dev@example.com>", v)
}

func TestParse_BreakingChangeNote(t *testing.T) {
	raw := "feat!: new config format\n\nBREAKING CHANGE: the old format is gone.\n\nMigrate with the convert command.\nReviewed-by: Ops"
	c := Parse(raw)

	assert.Empty(t, c.Body)
	assert.Equal(t, 2, c.FooterLine())
	require.Len(t, c.Trailers, 2)
	assert.Equal(t, "BREAKING CHANGE", c.Trailers[0].Key)
	assert.Equal(t, "the old format is gone.\nMigrate with the convert command.", c.Trailers[0].Value)
	assert.Equal(t, "Reviewed-by", c.Trailers[1].Key)
}

func TestParse_BodyWithoutBlankLine(t *testing.T) {
	c := Parse("fix: thing\nbody right away")
	assert.Equal(t, "body right away", c.Body)
	assert.Equal(t, []string{"fix: thing", "body right away"}, c.Lines())
}

func TestParse_TrailerLikeBodyLine(t *testing.T) {
	c := Parse("fix: thing\n\nNote: this is prose\nthat continues here")
	assert.Equal(t, "Note: this is prose\nthat continues here", c.Body)
	assert.Empty(t, c.Footer)
}

func TestParse_FooterWithoutBlankLine(t *testing.T) {
	c := Parse("fix: thing\n\nbody\nCloses: #9")
	assert.Equal(t, "body", c.Body)
	assert.Equal(t, "Closes: #9", c.Footer)
	assert.Equal(t, 3, c.FooterLine())
}
