package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/chatprobe/backend/internal/domain/testcase"
	"github.com/chatprobe/backend/internal/report"
	"github.com/chatprobe/backend/internal/runner"
	"github.com/chatprobe/backend/internal/scoring"
)

const (
	questionWidth = 36
	responseWidth = 44
)

// Formatter prints run results.
type Formatter struct {
	out io.Writer
}

func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{out: out}
}

// PrintResults prints one row per outcome, coloured by band.
func (f *Formatter) PrintResults(outcomes []testcase.Outcome) {
	if len(outcomes) == 0 {
		color.New(color.FgYellow).Fprintln(f.out, "No results")
		return
	}

	rule := func(l, m, r string) {
		fmt.Fprintf(f.out, "%s%s%s%s%s%s%s%s%s\n",
			l, strings.Repeat("─", 5), m,
			strings.Repeat("─", questionWidth+2), m,
			strings.Repeat("─", responseWidth+2), m,
			strings.Repeat("─", 22), r)
	}

	rule("┌", "┬", "┐")
	fmt.Fprintf(f.out, "│ %-3s │ %-*s │ %-*s │ %-9s %-10s │\n",
		"#", questionWidth, "Question", responseWidth, "Response", "Similar.", "Keywords")
	rule("├", "┼", "┤")

	for i, o := range outcomes {
		fmt.Fprintf(f.out, "│ %-3d │ %-*s │ %-*s │ ",
			i+1,
			questionWidth, excerpt(o.Question, questionWidth),
			responseWidth, excerpt(o.AIResponse, responseWidth))

		if o.Error {
			color.New(color.FgMagenta).Fprintf(f.out, "%-20s", "error")
		} else {
			bandColor(scoring.Grade(o.TextSimilarity)).Fprintf(f.out, "%-9s", fmt.Sprintf("%d%%", o.TextSimilarity))
			fmt.Fprint(f.out, " ")
			bandColor(scoring.Grade(o.KeywordCoverage)).Fprintf(f.out, "%-10s", fmt.Sprintf("%d%%", o.KeywordCoverage))
		}
		fmt.Fprintln(f.out, " │")
	}
	rule("└", "┴", "┘")
}

// PrintSummary prints the run statistics table.
func (f *Formatter) PrintSummary(r report.Report) {
	cyan := color.New(color.FgCyan)
	white := color.New(color.FgWhite)
	s := r.Summary

	fmt.Fprintln(f.out)
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                      Test Run Statistics                      ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")

	sep := "├─────────────────────────────────┼─────────────────────────────┤"
	row := func(label string, c *color.Color, value any) {
		fmt.Fprintf(f.out, "│ %-31s │ ", label)
		c.Fprintf(f.out, "%-27v", value)
		fmt.Fprintln(f.out, " │")
	}

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	row("Suite", white, r.Meta.Suite)
	fmt.Fprintln(f.out, sep)
	row("Provider / Model", white, r.Meta.Provider+" / "+r.Meta.Model)
	fmt.Fprintln(f.out, sep)
	row("Cases", white, s.Cases)
	fmt.Fprintln(f.out, sep)
	row("Good", color.New(color.FgGreen), s.Good)
	fmt.Fprintln(f.out, sep)
	row("Fair", color.New(color.FgYellow), s.Fair)
	fmt.Fprintln(f.out, sep)
	row("Poor", color.New(color.FgRed), s.Poor)
	fmt.Fprintln(f.out, sep)
	row("Errors", color.New(color.FgMagenta), s.Errors)
	fmt.Fprintln(f.out, sep)
	row("Avg Text Similarity", white, fmt.Sprintf("%.1f%%", s.AvgTextSimilarity))
	fmt.Fprintln(f.out, sep)
	row("Avg Keyword Coverage", white, fmt.Sprintf("%.1f%%", s.AvgKeywordCoverage))
	fmt.Fprintln(f.out, sep)
	row("Duration", white, fmt.Sprintf("%.2fs", r.Meta.DurationSeconds))
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(f.out)
	switch {
	case r.Meta.State == runner.Cancelled.String():
		color.New(color.FgYellow).Fprintf(f.out, "Run cancelled after %d case(s)\n", s.Cases)
	case s.Errors > 0:
		color.New(color.FgRed).Fprintf(f.out, "✗ %d case(s) could not be asked\n", s.Errors)
	default:
		color.New(color.FgGreen).Fprintln(f.out, "✓ All cases answered")
	}
}

func bandColor(b scoring.Band) *color.Color {
	switch b {
	case scoring.BandGood:
		return color.New(color.FgGreen)
	case scoring.BandFair:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

// excerpt flattens s to one line and cuts it to width runes.
func excerpt(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-1]) + "…"
}
