package suite

import (
	"errors"
	"strings"

	"github.com/chatprobe/backend/internal/domain/testcase"
	"github.com/chatprobe/backend/internal/id"
)

// DefaultName is the suite seeded from the test data file at startup.
const DefaultName = "default"

var ErrEmptyQuestion = errors.New("case question cannot be empty")

type Suite struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Cases []Case `json:"cases"`
}

// Case is a stored TestCase.
type Case struct {
	ID string `json:"id"`
	testcase.TestCase
}

func New(name string) *Suite {
	return &Suite{
		ID:    id.GenerateID(),
		Name:  name,
		Cases: []Case{},
	}
}

// FromTestCases builds a suite holding the given cases in order.
func FromTestCases(name string, cases []testcase.TestCase) (*Suite, error) {
	s := New(name)
	for _, tc := range cases {
		if err := s.AddCase(tc); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Suite) AddCase(tc testcase.TestCase) error {
	if strings.TrimSpace(tc.Question) == "" {
		return ErrEmptyQuestion
	}
	if tc.Keywords == nil {
		tc.Keywords = []string{}
	}

	s.Cases = append(s.Cases, Case{
		ID:       id.GenerateID(),
		TestCase: tc,
	})
	return nil
}

// TestCases returns the suite's cases in run order.
func (s *Suite) TestCases() []testcase.TestCase {
	out := make([]testcase.TestCase, len(s.Cases))
	for i, c := range s.Cases {
		out[i] = c.TestCase
	}
	return out
}
