package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/chatprobe/backend/internal/domain/testcase"
	"github.com/chatprobe/backend/internal/report"
	"github.com/chatprobe/backend/internal/runner"
)

func init() {
	color.NoColor = true
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"cut", "hello world", 6, "hello…"},
		{"newlines flattened", "a\n\nb   c", 10, "a b c"},
		{"runes", "héllo wörld", 4, "hél…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, excerpt(tt.in, tt.width))
		})
	}
}

func TestPrintResults(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	f.PrintResults([]testcase.Outcome{
		testcase.NewOutcome(testcase.TestCase{Question: "What colour is the sky?"}, "The sky is blue", 75, 100),
		testcase.FailedOutcome(testcase.TestCase{Question: "Broken question"}),
	})

	out := buf.String()
	assert.Contains(t, out, "What colour is the sky?")
	assert.Contains(t, out, "75%")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "error")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	// Top rule, header, separator, two rows, bottom rule.
	assert.Len(t, lines, 6)
}

func TestPrintResults_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewFormatter(&buf).PrintResults(nil)
	assert.Contains(t, buf.String(), "No results")
}

func TestPrintSummary(t *testing.T) {
	outcomes := []testcase.Outcome{
		testcase.NewOutcome(testcase.TestCase{Question: "q1"}, "a1", 80, 100),
		testcase.NewOutcome(testcase.TestCase{Question: "q2"}, "a2", 50, 50),
		testcase.FailedOutcome(testcase.TestCase{Question: "q3"}),
	}
	r := report.New(report.Meta{Suite: "smoke", Provider: "openai", Model: "gpt-4.1", State: "completed"},
		time.Now(), 1500*time.Millisecond, outcomes)

	var buf bytes.Buffer
	NewFormatter(&buf).PrintSummary(r)

	out := buf.String()
	assert.Contains(t, out, "smoke")
	assert.Contains(t, out, "openai / gpt-4.1")
	assert.Contains(t, out, "65.0%")
	assert.Contains(t, out, "1.50s")
	assert.Contains(t, out, "1 case(s) could not be asked")
}

func TestPrintSummary_Cancelled(t *testing.T) {
	r := report.New(report.Meta{State: runner.Cancelled.String()}, time.Now(), time.Second, nil)

	var buf bytes.Buffer
	NewFormatter(&buf).PrintSummary(r)
	assert.Contains(t, buf.String(), "Run cancelled")
}

func TestProgressBar_Observe(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(2, &buf)

	scored := testcase.NewOutcome(testcase.TestCase{Question: "q"}, "a", 90, 100)
	bar.Observe(runner.Progress{State: runner.Running, Completed: 1, Total: 2, Outcomes: []testcase.Outcome{scored}})
	assert.EqualValues(t, 1, bar.bar.State().CurrentNum)

	bar.Observe(runner.Progress{State: runner.Completed, Completed: 2, Total: 2, Outcomes: []testcase.Outcome{
		scored,
		testcase.FailedOutcome(testcase.TestCase{Question: "q2"}),
	}})
	assert.EqualValues(t, 2, bar.bar.State().CurrentNum)
	bar.Finish()
}

func TestDescribe(t *testing.T) {
	got := describe(report.Summary{Good: 3, Fair: 2, Poor: 1, Errors: 4})
	assert.Equal(t, "Asking: [good: 3 | fair: 2 | poor: 1 | error: 4]", got)
}
