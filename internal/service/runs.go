// internal/service/runs.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/chatprobe/backend/internal/domain/suite"
	"github.com/chatprobe/backend/internal/id"
	"github.com/chatprobe/backend/internal/report"
	"github.com/chatprobe/backend/internal/runner"
	"github.com/chatprobe/backend/internal/store"
)

var (
	ErrRunInProgress = errors.New("a test run is already in progress")
	ErrNoActiveRun   = errors.New("no test run in progress")
	ErrEmptySuite    = errors.New("suite has no cases")
)

// RunRecorder receives metrics for finished cases and runs.
type RunRecorder interface {
	RecordTestCase(failed bool)
	RecordRun(state string, avgSimilarity, avgCoverage float64)
}

// RunStatus is what pollers and stream subscribers see.
type RunStatus struct {
	RunID     string          `json:"run_id,omitempty"`
	SuiteID   string          `json:"suite_id,omitempty"`
	SuiteName string          `json:"suite_name,omitempty"`
	StartedAt *time.Time      `json:"started_at,omitempty"`
	Progress  runner.Progress `json:"progress"`
	Summary   report.Summary  `json:"summary"`
}

// Done reports whether the run has reached a terminal state.
func (s RunStatus) Done() bool {
	return s.Progress.State == runner.Completed || s.Progress.State == runner.Cancelled
}

// RunService starts suite runs in the background, one at a time, and fans
// progress out to subscribers.
type RunService struct {
	store    store.Store
	runner   *runner.Runner
	recorder RunRecorder
	logger   *slog.Logger

	mu      sync.Mutex
	active  bool
	runID   string
	suite   *suite.Suite
	started time.Time
	cancel  context.CancelFunc
	done    chan struct{}

	subsMu  sync.Mutex
	subs    map[int]chan RunStatus
	nextSub int
}

// NewRunService creates a RunService. recorder may be nil.
func NewRunService(s store.Store, asker runner.Asker, recorder RunRecorder, logger *slog.Logger) *RunService {
	done := make(chan struct{})
	close(done)
	return &RunService{
		store:    s,
		runner:   runner.New(asker, logger),
		recorder: recorder,
		logger:   logger,
		done:     done,
		subs:     make(map[int]chan RunStatus),
	}
}

// Start loads the suite and runs it on a background goroutine.
func (rs *RunService) Start(ctx context.Context, suiteID string) (RunStatus, error) {
	st, err := rs.store.GetSuite(ctx, suiteID)
	if err != nil {
		return RunStatus{}, err
	}
	return rs.start(st)
}

// StartByName runs the oldest suite called name.
func (rs *RunService) StartByName(ctx context.Context, name string) (RunStatus, error) {
	st, err := rs.store.FindSuiteByName(ctx, name)
	if err != nil {
		return RunStatus{}, fmt.Errorf("find suite %q: %w", name, err)
	}
	return rs.start(st)
}

func (rs *RunService) start(st *suite.Suite) (RunStatus, error) {
	if len(st.Cases) == 0 {
		return RunStatus{}, ErrEmptySuite
	}

	rs.mu.Lock()
	if rs.active {
		rs.mu.Unlock()
		return RunStatus{}, ErrRunInProgress
	}
	// The run outlives the request that started it.
	runCtx, cancel := context.WithCancel(context.Background())
	rs.active = true
	rs.runID = id.RunID()
	rs.suite = st
	rs.started = time.Now()
	rs.cancel = cancel
	rs.done = make(chan struct{})
	runID, done := rs.runID, rs.done
	rs.mu.Unlock()

	cases := st.TestCases()
	rs.runner.Begin(len(cases))

	rs.logger.Info("test run started", "run_id", runID, "suite_id", st.ID, "cases", len(st.Cases))

	go func() {
		defer close(done)
		defer cancel()

		outcomes := rs.runner.Run(runCtx, cases, rs.broadcast)
		final := rs.runner.Snapshot()

		if rs.recorder != nil {
			for _, o := range outcomes {
				rs.recorder.RecordTestCase(o.Error)
			}
			summary := report.Summarize(outcomes)
			rs.recorder.RecordRun(final.State.String(), summary.AvgTextSimilarity, summary.AvgKeywordCoverage)
		}
		rs.closeSubscribers()

		rs.mu.Lock()
		rs.active = false
		rs.mu.Unlock()
	}()

	return rs.Snapshot(), nil
}

// Snapshot returns the current or most recent run.
func (rs *RunService) Snapshot() RunStatus {
	return rs.status(rs.runner.Snapshot())
}

func (rs *RunService) status(p runner.Progress) RunStatus {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	status := RunStatus{
		RunID:    rs.runID,
		Progress: p,
		Summary:  report.Summarize(p.Outcomes),
	}
	if rs.suite != nil {
		status.SuiteID = rs.suite.ID
		status.SuiteName = rs.suite.Name
		started := rs.started
		status.StartedAt = &started
	}
	return status
}

// Cancel stops the active run before its next case.
func (rs *RunService) Cancel() error {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if !rs.active {
		return ErrNoActiveRun
	}
	rs.cancel()
	rs.logger.Info("test run cancel requested", "run_id", rs.runID)
	return nil
}

// Wait blocks until the active run, if any, has finished or ctx is done.
func (rs *RunService) Wait(ctx context.Context) error {
	rs.mu.Lock()
	done := rs.done
	rs.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe returns a channel receiving every progress publication of the
// next or current run. The channel is closed when that run ends or when
// unsubscribe is called.
func (rs *RunService) Subscribe() (<-chan RunStatus, func()) {
	rs.subsMu.Lock()
	defer rs.subsMu.Unlock()

	ch := make(chan RunStatus, 32)
	subID := rs.nextSub
	rs.nextSub++
	rs.subs[subID] = ch

	return ch, func() {
		rs.subsMu.Lock()
		defer rs.subsMu.Unlock()
		if c, ok := rs.subs[subID]; ok {
			delete(rs.subs, subID)
			close(c)
		}
	}
}

func (rs *RunService) broadcast(p runner.Progress) {
	status := rs.status(p)

	rs.subsMu.Lock()
	defer rs.subsMu.Unlock()
	for subID, ch := range rs.subs {
		if status.Done() {
			// The final frame is the one a subscriber must not miss.
			select {
			case ch <- status:
			case <-time.After(time.Second):
				rs.logger.Warn("dropped final progress frame", "subscriber", subID)
			}
			continue
		}
		select {
		case ch <- status:
		default:
			rs.logger.Warn("subscriber too slow, dropping progress frame", "subscriber", subID)
		}
	}
}

func (rs *RunService) closeSubscribers() {
	rs.subsMu.Lock()
	defer rs.subsMu.Unlock()
	for subID, ch := range rs.subs {
		delete(rs.subs, subID)
		close(ch)
	}
}
