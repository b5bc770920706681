package testcase_test

import (
	"testing"

	"github.com/chatprobe/backend/internal/domain/testcase"
)

func TestNewOutcome(t *testing.T) {
	tc := testcase.TestCase{Question: "Q1", CorrectAnswer: "A", Keywords: []string{"a"}}

	out := testcase.NewOutcome(tc, "the answer", 75, 100)

	if out.Question != "Q1" {
		t.Errorf("expected question %q, got %q", "Q1", out.Question)
	}
	if out.AIResponse != "the answer" {
		t.Errorf("expected response %q, got %q", "the answer", out.AIResponse)
	}
	if out.TextSimilarity != 75 || out.KeywordCoverage != 100 {
		t.Errorf("unexpected scores %d/%d", out.TextSimilarity, out.KeywordCoverage)
	}
	if out.Error {
		t.Error("expected Error to be false")
	}
}

func TestNewOutcome_ClampsScores(t *testing.T) {
	tc := testcase.TestCase{Question: "Q"}

	out := testcase.NewOutcome(tc, "r", 140, -5)

	if out.TextSimilarity != 100 {
		t.Errorf("expected similarity clamped to 100, got %d", out.TextSimilarity)
	}
	if out.KeywordCoverage != 0 {
		t.Errorf("expected coverage clamped to 0, got %d", out.KeywordCoverage)
	}
}

func TestFailedOutcome(t *testing.T) {
	tc := testcase.TestCase{Question: "Q2", CorrectAnswer: "A", Keywords: []string{"a"}}

	out := testcase.FailedOutcome(tc)

	if !out.Error {
		t.Fatal("expected Error to be true")
	}
	if out.Question != "Q2" {
		t.Errorf("expected question %q, got %q", "Q2", out.Question)
	}
	if out.AIResponse != testcase.FailedResponse {
		t.Errorf("expected sentinel response, got %q", out.AIResponse)
	}
	if out.TextSimilarity != 0 || out.KeywordCoverage != 0 {
		t.Errorf("expected zero scores, got %d/%d", out.TextSimilarity, out.KeywordCoverage)
	}
}
