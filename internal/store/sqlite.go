// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/chatprobe/backend/internal/domain/suite"
)

const schema = `
CREATE TABLE IF NOT EXISTS suites (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS cases (
    id TEXT PRIMARY KEY,
    suite_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    question TEXT NOT NULL,
    correct_answer TEXT NOT NULL,
    keywords TEXT NOT NULL,
    FOREIGN KEY (suite_id) REFERENCES suites(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_cases_suite ON cases(suite_id, position);
`

type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// SQLite serialises writers; one connection also keeps :memory: databases shared.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// NewWithDB wraps an already prepared database.
func NewWithDB(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Suites
// ============================================================================

func (s *SQLiteStore) SaveSuite(ctx context.Context, st *suite.Suite) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "INSERT INTO suites (id, name, created_at) VALUES (?, ?, ?)",
		st.ID, st.Name, time.Now().UnixNano(),
	); err != nil {
		return fmt.Errorf("insert suite: %w", err)
	}

	for i, c := range st.Cases {
		if err := insertCase(ctx, tx, st.ID, i, c); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetSuite(ctx context.Context, id string) (*suite.Suite, error) {
	var st suite.Suite
	err := s.db.QueryRowContext(ctx, "SELECT id, name FROM suites WHERE id = ?", id).Scan(&st.ID, &st.Name)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	cases, err := s.listCases(ctx, st.ID)
	if err != nil {
		return nil, err
	}
	st.Cases = cases
	return &st, nil
}

// FindSuiteByName returns the oldest suite called name.
func (s *SQLiteStore) FindSuiteByName(ctx context.Context, name string) (*suite.Suite, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM suites WHERE name = ? ORDER BY created_at, rowid LIMIT 1", name,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.GetSuite(ctx, id)
}

func (s *SQLiteStore) ListSuites(ctx context.Context) ([]SuiteSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.name, COUNT(c.id)
		FROM suites s
		LEFT JOIN cases c ON c.suite_id = s.id
		GROUP BY s.id, s.name
		ORDER BY s.created_at, s.rowid
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	suites := []SuiteSummary{}
	for rows.Next() {
		var sum SuiteSummary
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.CaseCount); err != nil {
			return nil, err
		}
		suites = append(suites, sum)
	}
	return suites, rows.Err()
}

func (s *SQLiteStore) DeleteSuite(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM cases WHERE suite_id = ?", id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM suites WHERE id = ?", id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

func (s *SQLiteStore) CountSuites(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM suites").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// ============================================================================
// Cases
// ============================================================================

// AddCase appends c at the end of the suite.
func (s *SQLiteStore) AddCase(ctx context.Context, suiteID string, c suite.Case) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM suites WHERE id = ?", suiteID).Scan(&exists)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	var next int
	if err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position) + 1, 0) FROM cases WHERE suite_id = ?", suiteID,
	).Scan(&next); err != nil {
		return err
	}

	if err := insertCase(ctx, tx, suiteID, next, c); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) DeleteCase(ctx context.Context, suiteID, caseID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM cases WHERE id = ? AND suite_id = ?", caseID, suiteID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) listCases(ctx context.Context, suiteID string) ([]suite.Case, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, question, correct_answer, keywords FROM cases WHERE suite_id = ? ORDER BY position",
		suiteID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cases := []suite.Case{}
	for rows.Next() {
		var (
			c        suite.Case
			keywords string
		)
		if err := rows.Scan(&c.ID, &c.Question, &c.CorrectAnswer, &keywords); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(keywords), &c.Keywords); err != nil {
			return nil, fmt.Errorf("decode keywords for case %s: %w", c.ID, err)
		}
		if c.Keywords == nil {
			c.Keywords = []string{}
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

func insertCase(ctx context.Context, tx *sql.Tx, suiteID string, position int, c suite.Case) error {
	keywords := c.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	keywordsJSON, err := json.Marshal(keywords)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO cases (id, suite_id, position, question, correct_answer, keywords) VALUES (?, ?, ?, ?, ?, ?)",
		c.ID, suiteID, position, c.Question, c.CorrectAnswer, string(keywordsJSON),
	)
	if err != nil {
		return fmt.Errorf("insert case: %w", err)
	}
	return nil
}
