package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/chatprobe/backend/internal/dataset"
	"github.com/chatprobe/backend/internal/domain/suite"
	"github.com/chatprobe/backend/internal/store"
)

// SeedDefaultSuite stores the dataset at path as the default suite when the
// store is still empty. A missing file is not an error.
func SeedDefaultSuite(ctx context.Context, s store.Store, path string, logger *slog.Logger) (bool, error) {
	count, err := s.CountSuites(ctx)
	if err != nil {
		return false, fmt.Errorf("count suites: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		logger.Info("no test data to seed", "path", path)
		return false, nil
	}

	set, err := dataset.LoadFile(path)
	if err != nil {
		return false, err
	}

	st, err := suite.FromTestCases(suite.DefaultName, set.Cases)
	if err != nil {
		return false, err
	}
	if err := s.SaveSuite(ctx, st); err != nil {
		return false, fmt.Errorf("save default suite: %w", err)
	}

	logger.Info("seeded default suite", "path", path, "suite_id", st.ID, "cases", len(st.Cases))
	return true, nil
}
