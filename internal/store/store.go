package store

import (
	"context"
	"errors"

	"github.com/chatprobe/backend/internal/domain/suite"
)

var (
	ErrNotFound = errors.New("not found")
)

// SuiteSummary is a suite without its cases.
type SuiteSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CaseCount int    `json:"case_count"`
}

// Store persists suite definitions. Run outcomes are never stored.
type Store interface {
	SaveSuite(ctx context.Context, s *suite.Suite) error
	GetSuite(ctx context.Context, id string) (*suite.Suite, error)
	FindSuiteByName(ctx context.Context, name string) (*suite.Suite, error)
	ListSuites(ctx context.Context) ([]SuiteSummary, error)
	DeleteSuite(ctx context.Context, id string) error
	CountSuites(ctx context.Context) (int, error)

	AddCase(ctx context.Context, suiteID string, c suite.Case) error
	DeleteCase(ctx context.Context, suiteID, caseID string) error
}
