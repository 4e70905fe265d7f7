package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/commitlint/internal/config"
	"github.com/bartekus/commitlint/internal/message"
	"github.com/bartekus/commitlint/internal/report"
	"github.com/bartekus/commitlint/internal/rules"
)

func resolve(t *testing.T, decl config.Declared) *config.Resolved {
	t.Helper()
	cfg, err := config.Resolve(decl)
	require.NoError(t, err)
	return cfg
}

func reference(t *testing.T) *config.Resolved {
	t.Helper()
	decl, err := config.Load(filepath.Join("..", "config", "testdata", "commitlintrc.yaml"))
	require.NoError(t, err)
	return resolve(t, decl)
}

func outcome(t *testing.T, rep report.Report, rule string) report.Outcome {
	t.Helper()
	for _, o := range rep.Outcomes {
		if o.Rule == rule {
			return o
		}
	}
	t.Fatalf("no outcome for %s in %+v", rule, rep.Outcomes)
	return report.Outcome{}
}

func TestLint_TicketScope(t *testing.T) {
	cfg := reference(t)

	rep := Lint("fix(JIRA-123): handle nulls", cfg)
	assert.Equal(t, report.StatusPass, rep.Status, "%v", rep.Summary())
	assert.True(t, outcome(t, rep, "function-rules/scope-enum").Passed)

	rep = Lint("fix(frontend): handle nulls", cfg)
	assert.Equal(t, report.StatusFail, rep.Status)
	ticket := outcome(t, rep, "function-rules/scope-enum")
	assert.False(t, ticket.Passed)
	assert.Contains(t, ticket.Message, "jira ticket")

	rep = Lint("fix: handle nulls", cfg)
	assert.Equal(t, report.StatusFail, rep.Status)
	assert.False(t, outcome(t, rep, "scope-empty").Passed)
	assert.True(t, outcome(t, rep, "function-rules/scope-enum").Passed)
}

func TestLint_ReferenceConfigSkipsDisabledRules(t *testing.T) {
	rep := Lint("fix(JIRA-1): "+string(bytes.Repeat([]byte("a"), 120)), reference(t))
	for _, o := range rep.Outcomes {
		assert.NotEqual(t, "header-max-length", o.Rule)
		assert.NotEqual(t, "scope-enum", o.Rule)
	}
}

func TestLint_SubjectFullStopNever(t *testing.T) {
	cfg := resolve(t, config.Declared{Rules: []config.RuleDecl{
		config.Rule("subject-full-stop", 2, rules.Never, "."),
	}})

	rep := Lint("fix: fix bug.", cfg)
	assert.Equal(t, report.StatusFail, rep.Status)
	assert.Equal(t, `subject may not end with "."`, rep.Outcomes[0].Message)

	assert.Equal(t, report.StatusPass, Lint("fix: fix bug", cfg).Status)
}

func TestLint_TypeEnum(t *testing.T) {
	cfg := resolve(t, config.Declared{Rules: []config.RuleDecl{
		config.Rule("type-enum", 2, rules.Always, []any{"feat", "fix"}),
	}})

	assert.Equal(t, report.StatusPass, Lint("feat: x", cfg).Status)

	rep := Lint("wip: x", cfg)
	assert.Equal(t, report.StatusFail, rep.Status)
	assert.Contains(t, rep.Outcomes[0].Message, `"wip"`)
}

func elevenRules() config.Declared {
	return config.Declared{Rules: []config.RuleDecl{
		config.Rule("body-leading-blank", 1, rules.Always, nil),
		config.Rule("footer-leading-blank", 1, rules.Always, nil),
		config.Rule("type-empty", 2, rules.Never, nil),
		config.Rule("type-enum", 2, rules.Always, []any{"feat", "fix"}),
		config.Rule("type-case", 2, rules.Always, "lower-case"),
		config.Rule("scope-case", 2, rules.Always, "lower-case"),
		config.Rule("scope-enum", 2, rules.Always, []any{"api", "ui"}),
		config.Rule("subject-empty", 2, rules.Never, nil),
		config.Rule("subject-case", 2, rules.Always, "lower-case"),
		config.Rule("subject-full-stop", 2, rules.Never, "."),
		config.Rule("header-max-length", 2, rules.Always, 72),
	}}
}

func TestLint_WarningOnlyFailureWarns(t *testing.T) {
	cfg := resolve(t, elevenRules())
	require.Len(t, cfg.Rules(), 11)

	rep := Lint("feat(api): add endpoint\nexplains the endpoint", cfg)
	assert.Equal(t, report.StatusWarn, rep.Status)
	require.Len(t, rep.Warnings(), 1)
	assert.Equal(t, "body-leading-blank", rep.Warnings()[0].Rule)
	assert.Empty(t, rep.Errors())

	rep = Lint("feat(web): add endpoint\nexplains the endpoint", cfg)
	assert.Equal(t, report.StatusFail, rep.Status)
	assert.Len(t, rep.Warnings(), 1)
	assert.Len(t, rep.Errors(), 1)

	assert.Equal(t, report.StatusPass, Lint("feat(api): add endpoint\n\nexplains the endpoint", cfg).Status)
}

func TestLint_Idempotent(t *testing.T) {
	cfg := reference(t)
	raw := "Feat(frontend): Add thing.\nno blank line\nRefs: #12"

	var first, second bytes.Buffer
	require.NoError(t, report.WriteJSON(&first, Lint(raw, cfg)))
	require.NoError(t, report.WriteJSON(&second, Lint(raw, cfg)))
	assert.Equal(t, first.String(), second.String())
}

func TestEvaluate_OffRulesNeverRun(t *testing.T) {
	var calls atomic.Int32
	cfg := resolve(t, config.Declared{Rules: []config.RuleDecl{
		config.Inline("counting", 0, rules.Always, func(message.Commit, any) (rules.Verdict, error) {
			calls.Add(1)
			return rules.Pass(), nil
		}),
	}})

	rep := Lint("feat: x", cfg)
	assert.Empty(t, rep.Outcomes)
	assert.Zero(t, calls.Load())
}

func TestEvaluate_NeverKeepsSkips(t *testing.T) {
	cfg := resolve(t, config.Declared{Rules: []config.RuleDecl{
		config.Rule("type-enum", 2, rules.Never, []any{"feat"}),
	}})

	assert.Equal(t, report.StatusPass, Lint("not conventional at all", cfg).Status)
	assert.Equal(t, report.StatusFail, Lint("feat: x", cfg).Status)
	assert.Equal(t, report.StatusPass, Lint("fix: x", cfg).Status)
}

func TestEvaluate_RecoversRuleFailures(t *testing.T) {
	cfg := resolve(t, config.Declared{Rules: []config.RuleDecl{
		config.Inline("panics", 1, rules.Always, func(message.Commit, any) (rules.Verdict, error) {
			panic("boom")
		}),
		config.Inline("errors", 1, rules.Always, func(message.Commit, any) (rules.Verdict, error) {
			return rules.Verdict{}, errors.New("lookup failed")
		}),
		config.Rule("type-empty", 2, rules.Never, nil),
	}})

	rep := Lint("feat: x", cfg)
	require.Len(t, rep.Outcomes, 3)
	assert.Equal(t, report.StatusFail, rep.Status)

	panicked := rep.Outcomes[0]
	assert.False(t, panicked.Passed)
	assert.Equal(t, rules.SeverityError, panicked.Severity)
	assert.Contains(t, panicked.Message, "boom")

	errored := rep.Outcomes[1]
	assert.False(t, errored.Passed)
	assert.Equal(t, rules.SeverityError, errored.Severity)
	assert.Contains(t, errored.Message, "lookup failed")

	assert.True(t, rep.Outcomes[2].Passed)
}

func TestEvaluate_DefaultMessage(t *testing.T) {
	cfg := resolve(t, config.Declared{Rules: []config.RuleDecl{
		config.Inline("silent", 2, rules.Never, func(message.Commit, any) (rules.Verdict, error) {
			return rules.Pass(), nil
		}),
	}})

	rep := Lint("feat: x", cfg)
	require.Len(t, rep.Outcomes, 1)
	assert.Equal(t, "silent (never) failed", rep.Outcomes[0].Message)
}

func TestEvaluate_Ignored(t *testing.T) {
	cfg := reference(t)
	rep := Lint("Merge branch 'main' into feature", cfg)
	assert.True(t, rep.Ignored)
	assert.Equal(t, report.StatusPass, rep.Status)
	assert.Empty(t, rep.Outcomes)
}

func TestRuleError(t *testing.T) {
	inner := errors.New("inner")
	err := &RuleError{Rule: "x", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "rule x failed to run: inner", err.Error())
}

func TestLintAll_Concurrent(t *testing.T) {
	cfg := reference(t)

	inputs := make([]string, 64)
	for i := range inputs {
		switch i % 3 {
		case 0:
			inputs[i] = fmt.Sprintf("fix(JIRA-%d): handle nulls", i)
		case 1:
			inputs[i] = fmt.Sprintf("fix(frontend): step %d", i)
		default:
			inputs[i] = fmt.Sprintf("wip: %d", i)
		}
	}

	got, err := LintAll(context.Background(), inputs, cfg, 8)
	require.NoError(t, err)
	require.Len(t, got, len(inputs))
	for i, raw := range inputs {
		assert.Equal(t, Lint(raw, cfg), got[i], raw)
	}
}

func TestLintAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LintAll(ctx, []string{"feat: x"}, reference(t), 0)
	assert.ErrorIs(t, err, context.Canceled)
}
