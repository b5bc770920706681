package store_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/chatprobe/backend/internal/domain/suite"
	"github.com/chatprobe/backend/internal/domain/testcase"
	"github.com/chatprobe/backend/internal/store"
)

func newTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func smokeSuite(t *testing.T) *suite.Suite {
	t.Helper()
	s, err := suite.FromTestCases("smoke", []testcase.TestCase{
		{Question: "What is the capital of France?", CorrectAnswer: "Paris", Keywords: []string{"Paris"}},
		{Question: "What colour is the sky?", CorrectAnswer: "The sky is blue"},
	})
	if err != nil {
		t.Fatalf("build suite: %v", err)
	}
	return s
}

func TestSaveAndGetSuite(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	want := smokeSuite(t)

	if err := s.SaveSuite(ctx, want); err != nil {
		t.Fatalf("SaveSuite: %v", err)
	}

	got, err := s.GetSuite(ctx, want.ID)
	if err != nil {
		t.Fatalf("GetSuite: %v", err)
	}
	if got.Name != "smoke" {
		t.Errorf("expected name smoke, got %q", got.Name)
	}
	if len(got.Cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(got.Cases))
	}
	for i := range want.Cases {
		if got.Cases[i].ID != want.Cases[i].ID || got.Cases[i].Question != want.Cases[i].Question {
			t.Errorf("case %d: expected %+v, got %+v", i, want.Cases[i], got.Cases[i])
		}
	}
	if len(got.Cases[0].Keywords) != 1 || got.Cases[0].Keywords[0] != "Paris" {
		t.Errorf("unexpected keywords %v", got.Cases[0].Keywords)
	}
	if got.Cases[1].Keywords == nil {
		t.Error("expected empty keywords slice, got nil")
	}
}

func TestGetSuite_NotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetSuite(context.Background(), "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListAndCountSuites(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	list, err := s.ListSuites(ctx)
	if err != nil {
		t.Fatalf("ListSuites: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected no suites, got %d", len(list))
	}

	first := smokeSuite(t)
	second := suite.New("empty")
	for _, st := range []*suite.Suite{first, second} {
		if err := s.SaveSuite(ctx, st); err != nil {
			t.Fatalf("SaveSuite: %v", err)
		}
	}

	list, err = s.ListSuites(ctx)
	if err != nil {
		t.Fatalf("ListSuites: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 suites, got %d", len(list))
	}
	if list[0].ID != first.ID || list[0].CaseCount != 2 {
		t.Errorf("unexpected first summary %+v", list[0])
	}
	if list[1].CaseCount != 0 {
		t.Errorf("expected empty suite, got %+v", list[1])
	}

	n, err := s.CountSuites(ctx)
	if err != nil {
		t.Fatalf("CountSuites: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 suites, got %d", n)
	}
}

func TestFindSuiteByName(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	st := smokeSuite(t)
	if err := s.SaveSuite(ctx, st); err != nil {
		t.Fatalf("SaveSuite: %v", err)
	}

	got, err := s.FindSuiteByName(ctx, "smoke")
	if err != nil {
		t.Fatalf("FindSuiteByName: %v", err)
	}
	if got.ID != st.ID || len(got.Cases) != 2 {
		t.Errorf("unexpected suite %+v", got)
	}

	if _, err := s.FindSuiteByName(ctx, "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAddAndDeleteCase(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	st := smokeSuite(t)
	if err := s.SaveSuite(ctx, st); err != nil {
		t.Fatalf("SaveSuite: %v", err)
	}

	extra := suite.Case{ID: "case-3", TestCase: testcase.TestCase{Question: "Third?", CorrectAnswer: "yes"}}
	if err := s.AddCase(ctx, st.ID, extra); err != nil {
		t.Fatalf("AddCase: %v", err)
	}

	got, _ := s.GetSuite(ctx, st.ID)
	if len(got.Cases) != 3 || got.Cases[2].ID != "case-3" {
		t.Fatalf("expected new case appended last, got %+v", got.Cases)
	}

	if err := s.DeleteCase(ctx, st.ID, st.Cases[0].ID); err != nil {
		t.Fatalf("DeleteCase: %v", err)
	}
	got, _ = s.GetSuite(ctx, st.ID)
	if len(got.Cases) != 2 || got.Cases[0].ID != st.Cases[1].ID {
		t.Errorf("unexpected cases after delete %+v", got.Cases)
	}

	if err := s.DeleteCase(ctx, st.ID, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := s.AddCase(ctx, "missing", extra); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown suite, got %v", err)
	}
}

func TestDeleteSuite(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	st := smokeSuite(t)
	if err := s.SaveSuite(ctx, st); err != nil {
		t.Fatalf("SaveSuite: %v", err)
	}

	if err := s.DeleteSuite(ctx, st.ID); err != nil {
		t.Fatalf("DeleteSuite: %v", err)
	}
	if _, err := s.GetSuite(ctx, st.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.DeleteSuite(ctx, st.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestNewSQLite_MigratesOldSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`CREATE TABLE suites (id TEXT PRIMARY KEY, name TEXT NOT NULL)`); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`INSERT INTO suites (id, name) VALUES ('old', 'legacy')`); err != nil {
		t.Fatal(err)
	}
	db.Close()

	s, err := store.NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite on old schema: %v", err)
	}
	defer s.Close()

	list, err := s.ListSuites(context.Background())
	if err != nil {
		t.Fatalf("ListSuites: %v", err)
	}
	if len(list) != 1 || list[0].Name != "legacy" {
		t.Errorf("unexpected suites %+v", list)
	}
}
