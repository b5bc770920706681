// Package chat forwards a conversation to a hosted language model and
// returns a single reply.
package chat

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a conversation.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// UserMessage builds a single user turn.
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Text: text}
}

// FromSender maps the browser's sender field ("user" or "bot") to a role.
func FromSender(sender string) Role {
	if sender == string(RoleUser) {
		return RoleUser
	}
	return RoleAssistant
}

// Proxy sends the full history to a provider and returns one reply.
// Implementations inject their own system prompt.
type Proxy interface {
	Ask(ctx context.Context, history []Message) (string, error)
	Name() string
}

// Options are shared by every provider.
type Options struct {
	Model        string
	SystemPrompt string
	Temperature  float32
	MaxTokens    int
	Timeout      time.Duration
}

// DefaultSystemPrompt is used when SYSTEM_PROMPT is not set.
const DefaultSystemPrompt = "You are a kind and helpful AI assistant. Give concise and accurate answers."

var ErrMissingAPIKey = errors.New("api key is not configured")

// ProxyError is returned when a provider call does not yield a reply, so the
// caller can tell an unreachable provider from a bad request it built itself.
type ProxyError struct {
	Provider string
	Reason   string
	Wrapped  error
}

func (e *ProxyError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Reason)
}

func (e *ProxyError) Unwrap() error {
	return e.Wrapped
}

func emptyReply(provider string) error {
	return &ProxyError{Provider: provider, Reason: "empty reply"}
}
