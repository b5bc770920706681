// Package schedule starts regression runs on a cron schedule.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/chatprobe/backend/internal/service"
)

var cronParser = cron.NewParser(
	cron.SecondOptional |
		cron.Minute |
		cron.Hour |
		cron.Dom |
		cron.Month |
		cron.Dow |
		cron.Descriptor,
)

// Starter begins a run of the named suite.
type Starter interface {
	StartByName(ctx context.Context, name string) (service.RunStatus, error)
}

// Scheduler triggers a run of one suite on every tick.
type Scheduler struct {
	cron      *cron.Cron
	schedule  cron.Schedule
	starter   Starter
	suiteName string
	logger    *slog.Logger
}

// Validate reports whether expr is a schedule New would accept.
func Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return fmt.Errorf("schedule is required")
	}
	if _, err := cronParser.Parse(strings.TrimSpace(expr)); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	return nil
}

func New(expr string, starter Starter, suiteName string, logger *slog.Logger) (*Scheduler, error) {
	if err := Validate(expr); err != nil {
		return nil, err
	}
	expr = strings.TrimSpace(expr)
	sched, _ := cronParser.Parse(expr)

	s := &Scheduler{
		cron:      cron.New(cron.WithParser(cronParser)),
		schedule:  sched,
		starter:   starter,
		suiteName: suiteName,
		logger:    logger,
	}
	if _, err := s.cron.AddFunc(expr, s.Tick); err != nil {
		return nil, fmt.Errorf("register schedule: %w", err)
	}
	return s, nil
}

// Next returns the first tick after t.
func (s *Scheduler) Next(t time.Time) time.Time {
	return s.schedule.Next(t)
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduled runs enabled", "suite", s.suiteName, "next", s.Next(time.Now()))
}

// Stop prevents further ticks. The returned context is done once a tick
// already in progress has returned.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// Tick starts one run. A run already in progress makes the tick a no-op.
func (s *Scheduler) Tick() {
	status, err := s.starter.StartByName(context.Background(), s.suiteName)
	switch {
	case errors.Is(err, service.ErrRunInProgress):
		s.logger.Info("scheduled run skipped, a run is already in progress", "suite", s.suiteName)
	case err != nil:
		s.logger.Error("scheduled run failed to start", "suite", s.suiteName, "error", err)
	default:
		s.logger.Info("scheduled run started", "suite", s.suiteName, "run_id", status.RunID)
	}
}
