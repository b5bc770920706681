// Package assistant runs a message through a hosted OpenAI assistant and
// waits for its reply.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultMessage  = "run the test"
	FallbackReply   = "could not generate a test result"
	defaultInterval = time.Second
)

// Client is the subset of the Assistants API the probe drives.
// *openai.Client satisfies it.
type Client interface {
	CreateThread(ctx context.Context, request openai.ThreadRequest) (openai.Thread, error)
	CreateMessage(ctx context.Context, threadID string, request openai.MessageRequest) (openai.Message, error)
	CreateRun(ctx context.Context, threadID string, request openai.RunRequest) (openai.Run, error)
	RetrieveRun(ctx context.Context, threadID string, runID string) (openai.Run, error)
	ListMessage(ctx context.Context, threadID string, limit *int, order *string, after *string, before *string, runID *string) (openai.MessagesList, error)
}

// StatusError is returned when a run stops in any state but completed.
type StatusError struct {
	Status openai.RunStatus
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("assistant run ended with status %s", e.Status)
}

type Probe struct {
	client      Client
	assistantID string
	interval    time.Duration
	logger      *slog.Logger
}

func NewProbe(client Client, assistantID string, logger *slog.Logger) *Probe {
	return &Probe{
		client:      client,
		assistantID: assistantID,
		interval:    defaultInterval,
		logger:      logger,
	}
}

// NewOpenAIProbe builds a probe backed by the OpenAI API.
func NewOpenAIProbe(apiKey, baseURL, assistantID string, logger *slog.Logger) *Probe {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return NewProbe(openai.NewClientWithConfig(cfg), assistantID, logger)
}

// WithInterval sets how often the run status is polled.
func (p *Probe) WithInterval(d time.Duration) *Probe {
	if d > 0 {
		p.interval = d
	}
	return p
}

// Run posts message on a fresh thread, starts the assistant and polls until
// the run reaches a terminal status or ctx is done.
func (p *Probe) Run(ctx context.Context, message string) (string, error) {
	if p.assistantID == "" {
		return "", fmt.Errorf("assistant id is not configured")
	}
	if message == "" {
		message = DefaultMessage
	}

	thread, err := p.client.CreateThread(ctx, openai.ThreadRequest{})
	if err != nil {
		return "", fmt.Errorf("create thread: %w", err)
	}

	if _, err := p.client.CreateMessage(ctx, thread.ID, openai.MessageRequest{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	}); err != nil {
		return "", fmt.Errorf("add message: %w", err)
	}

	run, err := p.client.CreateRun(ctx, thread.ID, openai.RunRequest{AssistantID: p.assistantID})
	if err != nil {
		return "", fmt.Errorf("create run: %w", err)
	}

	run, err = p.wait(ctx, thread.ID, run)
	if err != nil {
		return "", err
	}
	if run.Status != openai.RunStatusCompleted {
		return "", &StatusError{Status: run.Status}
	}

	return p.latestReply(ctx, thread.ID)
}

func (p *Probe) wait(ctx context.Context, threadID string, run openai.Run) (openai.Run, error) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for !terminal(run.Status) {
		select {
		case <-ctx.Done():
			return run, ctx.Err()
		case <-ticker.C:
		}

		next, err := p.client.RetrieveRun(ctx, threadID, run.ID)
		if err != nil {
			return run, fmt.Errorf("retrieve run: %w", err)
		}
		run = next
		p.logger.Debug("assistant run polled", "run_id", run.ID, "status", run.Status)
	}
	return run, nil
}

func (p *Probe) latestReply(ctx context.Context, threadID string) (string, error) {
	limit := 20
	order := "desc"
	list, err := p.client.ListMessage(ctx, threadID, &limit, &order, nil, nil, nil)
	if err != nil {
		return "", fmt.Errorf("list messages: %w", err)
	}

	for _, msg := range list.Messages {
		if msg.Role != openai.ChatMessageRoleAssistant {
			continue
		}
		for _, content := range msg.Content {
			if content.Type == "text" && content.Text != nil && content.Text.Value != "" {
				return content.Text.Value, nil
			}
		}
	}
	return FallbackReply, nil
}

func terminal(status openai.RunStatus) bool {
	switch status {
	case openai.RunStatusQueued, openai.RunStatusInProgress, openai.RunStatusCancelling:
		return false
	default:
		return true
	}
}
