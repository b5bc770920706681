package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/chatprobe/backend/internal/report"
	"github.com/chatprobe/backend/internal/runner"
)

// ProgressBar shows how far a run is, with running band counts.
type ProgressBar struct {
	bar *progressbar.ProgressBar
}

// NewProgressBar creates a bar for count cases writing to w.
func NewProgressBar(count int, w io.Writer) *ProgressBar {
	bar := progressbar.NewOptions(count,
		progressbar.OptionSetDescription(describe(report.Summary{})),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWriter(w),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &ProgressBar{bar: bar}
}

// Observe is a runner.ProgressFunc.
func (p *ProgressBar) Observe(progress runner.Progress) {
	p.bar.Describe(describe(report.Summarize(progress.Outcomes)))
	p.bar.Set(progress.Completed)
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	p.bar.Finish()
}

func describe(s report.Summary) string {
	return color.CyanString("Asking: ") +
		color.GreenString("[good: %d", s.Good) +
		" | " +
		color.YellowString("fair: %d", s.Fair) +
		" | " +
		color.RedString("poor: %d", s.Poor) +
		" | " +
		color.MagentaString("error: %d]", s.Errors)
}
