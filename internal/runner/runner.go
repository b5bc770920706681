// Package runner asks every test case of a suite, one after another, and
// scores each reply against its reference answer.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/chatprobe/backend/internal/chat"
	"github.com/chatprobe/backend/internal/domain/testcase"
	"github.com/chatprobe/backend/internal/scoring"
)

// Asker is the part of a chat proxy the runner needs.
type Asker interface {
	Ask(ctx context.Context, history []chat.Message) (string, error)
}

type State int

const (
	Idle State = iota
	Running
	Completed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// MarshalText lets State appear as its name in JSON.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for _, st := range []State{Idle, Running, Completed, Cancelled} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown run state %q", text)
}

// Progress is a point-in-time view of a run.
// Index is the case currently being asked, -1 when none is.
type Progress struct {
	State     State              `json:"state"`
	Index     int                `json:"index"`
	Completed int                `json:"completed"`
	Total     int                `json:"total"`
	Outcomes  []testcase.Outcome `json:"outcomes"`
}

// ProgressFunc receives every publication. It runs on the run's goroutine
// and must not block for long.
type ProgressFunc func(Progress)

// Runner executes one run at a time. Snapshot may be called from any
// goroutine while Run is in progress.
type Runner struct {
	asker  Asker
	logger *slog.Logger

	mu       sync.RWMutex
	state    State
	index    int
	total    int
	outcomes []testcase.Outcome
}

func New(asker Asker, logger *slog.Logger) *Runner {
	return &Runner{
		asker:  asker,
		logger: logger,
		index:  -1,
	}
}

// Begin resets the runner to Running with total cases and no outcomes.
// Run calls it too; callers that hand Run to another goroutine call it first
// so the reset is visible before the first case is asked.
func (r *Runner) Begin(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = Running
	r.index = -1
	r.total = total
	r.outcomes = make([]testcase.Outcome, 0, total)
}

// Run asks each case in order and returns one outcome per case asked.
// A failed call yields a failed outcome and the run moves on. If ctx is
// done before a case starts, the run stops there in the Cancelled state.
func (r *Runner) Run(ctx context.Context, cases []testcase.TestCase, onProgress ProgressFunc) []testcase.Outcome {
	start := time.Now()
	r.Begin(len(cases))

	outcomes := make([]testcase.Outcome, 0, len(cases))
	final := Completed

	for i, tc := range cases {
		if ctx.Err() != nil {
			final = Cancelled
			break
		}

		r.mu.Lock()
		r.index = i
		r.mu.Unlock()
		r.publish(onProgress)

		outcome := r.ask(ctx, i, tc)
		outcomes = append(outcomes, outcome)

		r.mu.Lock()
		r.outcomes = append(r.outcomes, outcome)
		r.mu.Unlock()
		r.publish(onProgress)
	}

	r.mu.Lock()
	r.state = final
	r.index = -1
	r.mu.Unlock()
	r.publish(onProgress)

	r.logger.Info("test run finished",
		"state", final.String(),
		"cases", len(cases),
		"asked", len(outcomes),
		"failed", countFailed(outcomes),
		"duration", time.Since(start),
	)
	return outcomes
}

func (r *Runner) ask(ctx context.Context, i int, tc testcase.TestCase) testcase.Outcome {
	reply, err := r.asker.Ask(ctx, []chat.Message{chat.UserMessage(tc.Question)})
	if err != nil {
		r.logger.Warn("test case failed",
			"index", i,
			"question", tc.Question,
			"error", err,
		)
		return testcase.FailedOutcome(tc)
	}

	similarity, coverage := scoring.Score(reply, tc)
	r.logger.Debug("test case scored",
		"index", i,
		"text_similarity", similarity,
		"keyword_coverage", coverage,
	)
	return testcase.NewOutcome(tc, reply, similarity, coverage)
}

// Snapshot returns the current progress. The outcome slice is a copy.
func (r *Runner) Snapshot() Progress {
	r.mu.RLock()
	defer r.mu.RUnlock()

	outcomes := make([]testcase.Outcome, len(r.outcomes))
	copy(outcomes, r.outcomes)
	return Progress{
		State:     r.state,
		Index:     r.index,
		Completed: len(r.outcomes),
		Total:     r.total,
		Outcomes:  outcomes,
	}
}

func (r *Runner) publish(onProgress ProgressFunc) {
	if onProgress == nil {
		return
	}
	onProgress(r.Snapshot())
}

func countFailed(outcomes []testcase.Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Error {
			n++
		}
	}
	return n
}
