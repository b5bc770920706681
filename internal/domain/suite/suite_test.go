package suite_test

import (
	"testing"

	"github.com/chatprobe/backend/internal/domain/suite"
	"github.com/chatprobe/backend/internal/domain/testcase"
)

func TestNewSuite(t *testing.T) {
	s := suite.New("Smoke")

	if s.Name != "Smoke" {
		t.Errorf("expected name %q, got %q", "Smoke", s.Name)
	}
	if s.ID == "" {
		t.Error("expected non-empty ID")
	}
	if len(s.Cases) != 0 {
		t.Errorf("expected empty suite, got %d cases", len(s.Cases))
	}
}

func TestAddCase(t *testing.T) {
	s := suite.New("Smoke")

	err := s.AddCase(testcase.TestCase{
		Question:      "What colour is the sky?",
		CorrectAnswer: "the sky is blue",
		Keywords:      []string{"sky", "blue"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(s.Cases) != 1 {
		t.Fatalf("expected 1 case, got %d", len(s.Cases))
	}
	if s.Cases[0].ID == "" {
		t.Error("expected case ID to be set")
	}
	if s.Cases[0].Question != "What colour is the sky?" {
		t.Errorf("unexpected question %q", s.Cases[0].Question)
	}
}

func TestAddCase_EmptyQuestion(t *testing.T) {
	s := suite.New("Smoke")

	if err := s.AddCase(testcase.TestCase{Question: "  "}); err == nil {
		t.Error("expected error for empty question, got nil")
	}

	if len(s.Cases) != 0 {
		t.Error("expected no cases after failed add")
	}
}

func TestAddCase_NilKeywordsBecomeEmpty(t *testing.T) {
	s := suite.New("Smoke")

	if err := s.AddCase(testcase.TestCase{Question: "Q"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Cases[0].Keywords == nil {
		t.Error("expected keywords to be an empty slice")
	}
}

func TestFromTestCases_PreservesOrder(t *testing.T) {
	cases := []testcase.TestCase{
		{Question: "Q1"},
		{Question: "Q2"},
		{Question: "Q3"},
	}

	s, err := suite.FromTestCases("ordered", cases)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := s.TestCases()
	if len(got) != 3 {
		t.Fatalf("expected 3 cases, got %d", len(got))
	}
	for i := range cases {
		if got[i].Question != cases[i].Question {
			t.Errorf("case %d: expected %q, got %q", i, cases[i].Question, got[i].Question)
		}
	}
}

func TestFromTestCases_RejectsInvalidCase(t *testing.T) {
	_, err := suite.FromTestCases("bad", []testcase.TestCase{{Question: "ok"}, {Question: ""}})
	if err == nil {
		t.Error("expected error for empty question")
	}
}
