package chat

import (
	"context"
	"log/slog"
	"time"
)

// Recorder receives one observation per proxy call.
type Recorder interface {
	RecordLLMRequest(provider, status string, durationSeconds float64)
}

// Instrumented wraps a Proxy with metrics and failure logging.
type Instrumented struct {
	next     Proxy
	recorder Recorder
	logger   *slog.Logger
}

var _ Proxy = (*Instrumented)(nil)

func NewInstrumented(next Proxy, recorder Recorder, logger *slog.Logger) *Instrumented {
	return &Instrumented{next: next, recorder: recorder, logger: logger}
}

func (i *Instrumented) Name() string { return i.next.Name() }

func (i *Instrumented) Ask(ctx context.Context, history []Message) (string, error) {
	start := time.Now()
	reply, err := i.next.Ask(ctx, history)
	elapsed := time.Since(start)

	status := "success"
	if err != nil {
		status = "error"
		i.logger.Warn("chat proxy call failed",
			"provider", i.next.Name(),
			"turns", len(history),
			"duration", elapsed,
			"error", err,
		)
	}
	if i.recorder != nil {
		i.recorder.RecordLLMRequest(i.next.Name(), status, elapsed.Seconds())
	}
	return reply, err
}
