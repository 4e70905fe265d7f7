// SPDX-License-Identifier: AGPL-3.0-or-later

// Package report aggregates rule outcomes into a verdict and renders it.
package report

import (
	"fmt"

	"github.com/bartekus/commitlint/internal/rules"
)

// Status is the overall verdict for one message.
type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// Outcome is the result of one rule with its configured severity applied.
type Outcome struct {
	Rule     string         `json:"rule"`
	Severity rules.Severity `json:"severity"`
	Passed   bool           `json:"passed"`
	Message  string         `json:"message,omitempty"`
}

// Report is the aggregated result for one message. Outcomes are in evaluation order.
type Report struct {
	Status   Status    `json:"status"`
	Ignored  bool      `json:"ignored,omitempty"`
	Outcomes []Outcome `json:"outcomes"`
}

// Aggregate derives the status of a set of outcomes: fail if any error failed, warn if any
// warning failed, pass otherwise.
func Aggregate(outcomes []Outcome) Report {
	rep := Report{Status: StatusPass, Outcomes: append([]Outcome{}, outcomes...)}
	for _, o := range outcomes {
		if o.Passed {
			continue
		}
		switch o.Severity {
		case rules.SeverityError:
			rep.Status = StatusFail
		case rules.SeverityWarning:
			if rep.Status == StatusPass {
				rep.Status = StatusWarn
			}
		}
	}
	return rep
}

// Ignored is the report for a message matched by an ignore pattern.
func Ignored() Report {
	return Report{Status: StatusPass, Ignored: true, Outcomes: []Outcome{}}
}

// Errors returns the failed error-severity outcomes.
func (r Report) Errors() []Outcome { return r.failed(rules.SeverityError) }

// Warnings returns the failed warning-severity outcomes.
func (r Report) Warnings() []Outcome { return r.failed(rules.SeverityWarning) }

func (r Report) failed(s rules.Severity) []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if !o.Passed && o.Severity == s {
			out = append(out, o)
		}
	}
	return out
}

// Summary returns one line per failed outcome, errors before warnings.
func (r Report) Summary() []string {
	var lines []string
	for _, o := range append(r.Errors(), r.Warnings()...) {
		lines = append(lines, fmt.Sprintf("%s: %s [%s]", o.Severity, o.Message, o.Rule))
	}
	return lines
}
