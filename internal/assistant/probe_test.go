package assistant_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatprobe/backend/internal/assistant"
)

type fakeClient struct {
	statuses []openai.RunStatus
	messages []openai.Message
	listErr  error

	sentContent string
	retrieved   int
}

func (f *fakeClient) CreateThread(context.Context, openai.ThreadRequest) (openai.Thread, error) {
	return openai.Thread{ID: "thread_1"}, nil
}

func (f *fakeClient) CreateMessage(_ context.Context, threadID string, req openai.MessageRequest) (openai.Message, error) {
	f.sentContent = req.Content
	return openai.Message{ID: "msg_user", ThreadID: threadID}, nil
}

func (f *fakeClient) CreateRun(_ context.Context, threadID string, req openai.RunRequest) (openai.Run, error) {
	return openai.Run{ID: "run_1", ThreadID: threadID, AssistantID: req.AssistantID, Status: openai.RunStatusQueued}, nil
}

func (f *fakeClient) RetrieveRun(_ context.Context, threadID, runID string) (openai.Run, error) {
	status := f.statuses[len(f.statuses)-1]
	if f.retrieved < len(f.statuses) {
		status = f.statuses[f.retrieved]
	}
	f.retrieved++
	return openai.Run{ID: runID, ThreadID: threadID, Status: status}, nil
}

func (f *fakeClient) ListMessage(context.Context, string, *int, *string, *string, *string, *string) (openai.MessagesList, error) {
	return openai.MessagesList{Messages: f.messages}, f.listErr
}

func textMessage(role, text string) openai.Message {
	return openai.Message{
		Role:    role,
		Content: []openai.MessageContent{{Type: "text", Text: &openai.MessageText{Value: text}}},
	}
}

func newProbe(c assistant.Client) *assistant.Probe {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return assistant.NewProbe(c, "asst_1", logger).WithInterval(time.Millisecond)
}

func TestProbe_Completed(t *testing.T) {
	client := &fakeClient{
		statuses: []openai.RunStatus{openai.RunStatusInProgress, openai.RunStatusCompleted},
		messages: []openai.Message{
			textMessage("assistant", "All checks passed."),
			textMessage("user", "run the test"),
		},
	}

	reply, err := newProbe(client).Run(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "All checks passed.", reply)
	assert.Equal(t, assistant.DefaultMessage, client.sentContent)
	assert.Equal(t, 2, client.retrieved)
}

func TestProbe_NoAssistantReply(t *testing.T) {
	client := &fakeClient{
		statuses: []openai.RunStatus{openai.RunStatusCompleted},
		messages: []openai.Message{textMessage("user", "hello")},
	}

	reply, err := newProbe(client).Run(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, assistant.FallbackReply, reply)
}

func TestProbe_FailedRun(t *testing.T) {
	client := &fakeClient{statuses: []openai.RunStatus{openai.RunStatusFailed}}

	_, err := newProbe(client).Run(context.Background(), "hello")

	var statusErr *assistant.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, openai.RunStatusFailed, statusErr.Status)
}

func TestProbe_ContextCancelled(t *testing.T) {
	client := &fakeClient{statuses: []openai.RunStatus{openai.RunStatusInProgress}}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := newProbe(client).Run(ctx, "hello")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestProbe_MissingAssistantID(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := assistant.NewProbe(&fakeClient{}, "", logger).Run(context.Background(), "hi")
	assert.Error(t, err)
}
