// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TextOptions controls WriteText.
type TextOptions struct {
	// Input is the linted message; its first line is echoed in the report.
	Input   string
	HelpURL string
	Color   bool
	// Verbose also prints reports that have no problems.
	Verbose bool
}

const (
	glyphInput = "⧗"
	glyphError = "✖"
	glyphWarn  = "⚠"
	glyphOK    = "✔"
	glyphHelp  = "ⓘ"
)

type palette struct {
	noColor bool
	muted   lipgloss.Style
	err     lipgloss.Style
	warn    lipgloss.Style
	ok      lipgloss.Style
	rule    lipgloss.Style
}

func newPalette(color bool) palette {
	if !color {
		return palette{noColor: true}
	}
	return palette{
		muted: lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		err:   lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
		warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
		ok:    lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")),
		rule:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
	}
}

func (p palette) paint(s lipgloss.Style, text string) string {
	if p.noColor {
		return text
	}
	return s.Render(text)
}

// WriteText renders rep the way commitlint prints it on a terminal. A passing report prints
// nothing unless opts.Verbose is set.
func WriteText(w io.Writer, rep Report, opts TextOptions) error {
	errs, warns := rep.Errors(), rep.Warnings()
	if len(errs) == 0 && len(warns) == 0 && !opts.Verbose {
		return nil
	}
	p := newPalette(opts.Color)

	var b strings.Builder
	input, _, _ := strings.Cut(opts.Input, "\n")
	fmt.Fprintf(&b, "%s   input: %s\n", p.paint(p.muted, glyphInput), input)

	if rep.Ignored {
		fmt.Fprintf(&b, "%s   ignored\n\n", p.paint(p.ok, glyphOK))
		_, err := io.WriteString(w, b.String())
		return err
	}

	for _, o := range errs {
		fmt.Fprintf(&b, "%s   %s %s\n", p.paint(p.err, glyphError), o.Message, p.paint(p.rule, "["+o.Rule+"]"))
	}
	for _, o := range warns {
		fmt.Fprintf(&b, "%s   %s %s\n", p.paint(p.warn, glyphWarn), o.Message, p.paint(p.rule, "["+o.Rule+"]"))
	}
	b.WriteString("\n")

	totals := fmt.Sprintf("found %d problems, %d warnings", len(errs), len(warns))
	switch rep.Status {
	case StatusFail:
		fmt.Fprintf(&b, "%s   %s\n", p.paint(p.err, glyphError), totals)
	case StatusWarn:
		fmt.Fprintf(&b, "%s   %s\n", p.paint(p.warn, glyphWarn), totals)
	default:
		fmt.Fprintf(&b, "%s   %s\n", p.paint(p.ok, glyphOK), totals)
	}
	if opts.HelpURL != "" && (len(errs) > 0 || len(warns) > 0) {
		fmt.Fprintf(&b, "%s   Get help: %s\n", p.paint(p.muted, glyphHelp), opts.HelpURL)
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON renders rep as indented JSON followed by a newline.
func WriteJSON(w io.Writer, rep Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
