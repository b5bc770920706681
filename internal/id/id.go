package id

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateID creates a unique 16-character alphanumeric ID.
func GenerateID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

// RunID returns a full UUID for a test run.
func RunID() string {
	return uuid.NewString()
}
