// Package report aggregates run outcomes and writes them out.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chatprobe/backend/internal/domain/testcase"
	"github.com/chatprobe/backend/internal/scoring"
)

// Summary aggregates outcomes. Averages exclude errored cases and bands
// are assigned by text similarity.
type Summary struct {
	Cases              int     `json:"cases"`
	Errors             int     `json:"errors"`
	AvgTextSimilarity  float64 `json:"avg_text_similarity"`
	AvgKeywordCoverage float64 `json:"avg_keyword_coverage"`
	Good               int     `json:"good"`
	Fair               int     `json:"fair"`
	Poor               int     `json:"poor"`
}

func Summarize(outcomes []testcase.Outcome) Summary {
	s := Summary{Cases: len(outcomes)}
	scored := 0
	for _, o := range outcomes {
		if o.Error {
			s.Errors++
			continue
		}
		scored++
		s.AvgTextSimilarity += float64(o.TextSimilarity)
		s.AvgKeywordCoverage += float64(o.KeywordCoverage)

		switch scoring.Grade(o.TextSimilarity) {
		case scoring.BandGood:
			s.Good++
		case scoring.BandFair:
			s.Fair++
		default:
			s.Poor++
		}
	}
	if scored > 0 {
		s.AvgTextSimilarity /= float64(scored)
		s.AvgKeywordCoverage /= float64(scored)
	}
	return s
}

// Meta describes the run a report was produced from.
type Meta struct {
	Suite           string  `json:"suite"`
	Provider        string  `json:"provider"`
	Model           string  `json:"model"`
	State           string  `json:"state"`
	Started         string  `json:"started"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
}

type Report struct {
	Meta     Meta               `json:"meta"`
	Summary  Summary            `json:"summary"`
	Outcomes []testcase.Outcome `json:"outcomes"`
}

// New builds a report for outcomes of a run that began at started.
func New(meta Meta, started time.Time, duration time.Duration, outcomes []testcase.Outcome) Report {
	meta.Started = started.Format(time.RFC3339)
	meta.Duration = duration.String()
	meta.DurationSeconds = duration.Seconds()
	if outcomes == nil {
		outcomes = []testcase.Outcome{}
	}
	return Report{
		Meta:     meta,
		Summary:  Summarize(outcomes),
		Outcomes: outcomes,
	}
}

// WriteJSON writes r to path, creating parent directories.
func WriteJSON(path string, r Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
