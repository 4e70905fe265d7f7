// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine evaluates a resolved configuration against commit messages.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/bartekus/commitlint/internal/config"
	"github.com/bartekus/commitlint/internal/message"
	"github.com/bartekus/commitlint/internal/report"
	"github.com/bartekus/commitlint/internal/rules"
)

// RuleError records a rule that returned an error or panicked.
type RuleError struct {
	Rule string
	Err  error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %s failed to run: %v", e.Rule, e.Err)
}

func (e *RuleError) Unwrap() error { return e.Err }

// Evaluate runs every enabled rule of cfg against msg, in configuration order. A rule that
// errors or panics yields a failed error-severity outcome and evaluation continues.
func Evaluate(msg message.Commit, cfg *config.Resolved) report.Report {
	if cfg.Ignored(msg.Raw) {
		return report.Ignored()
	}

	specs := cfg.Rules()
	outcomes := make([]report.Outcome, 0, len(specs))
	for _, spec := range specs {
		if spec.Severity == rules.SeverityOff {
			continue
		}
		outcomes = append(outcomes, evaluate(msg, spec))
	}
	return report.Aggregate(outcomes)
}

// Lint parses raw and evaluates it.
func Lint(raw string, cfg *config.Resolved) report.Report {
	return Evaluate(message.Parse(raw), cfg)
}

// LintAll lints every input concurrently and returns the reports in input order. At most limit
// messages are evaluated at once; limit <= 0 means no limit.
func LintAll(ctx context.Context, inputs []string, cfg *config.Resolved, limit int) ([]report.Report, error) {
	out := make([]report.Report, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, raw := range inputs {
		i, raw := i, raw
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = Lint(raw, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func evaluate(msg message.Commit, spec config.RuleSpec) report.Outcome {
	out := report.Outcome{Rule: spec.Name, Severity: spec.Severity}

	v, err := check(msg, spec)
	if err != nil {
		out.Severity = rules.SeverityError
		out.Message = err.Error()
		return out
	}

	passed, text := v.Passed, v.Message
	if spec.When == rules.Never && !v.Skip {
		passed, text = !v.Passed, v.Negated
	}
	out.Passed = passed
	if !passed {
		if text == "" {
			text = fmt.Sprintf("%s (%s) failed", spec.Name, spec.When)
		}
		out.Message = text
	}
	return out
}

func check(msg message.Commit, spec config.RuleSpec) (v rules.Verdict, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("rule panicked", "rule", spec.Name, "panic", r)
			err = &RuleError{Rule: spec.Name, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	v, err = spec.Rule.Check(msg, spec.Options)
	if err != nil {
		return v, &RuleError{Rule: spec.Name, Err: err}
	}
	return v, nil
}
