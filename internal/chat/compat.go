package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// CompatProxy talks to any OpenAI-compatible chat endpoint
// (Ollama, LM Studio, vLLM, etc.) over plain HTTP.
type CompatProxy struct {
	url    string // e.g. "http://localhost:1234"
	apiKey string // optional bearer token
	opts   Options
	client *http.Client // reused across calls
}

// Compile-time check: *CompatProxy satisfies the Proxy interface.
var _ Proxy = (*CompatProxy)(nil)

// NewCompatProxy creates a proxy for the endpoint at url.
func NewCompatProxy(url, apiKey string, opts Options) *CompatProxy {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &CompatProxy{
		url:    strings.TrimRight(url, "/"),
		apiKey: apiKey,
		opts:   opts,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (p *CompatProxy) Name() string { return "compat" }

type compatRequest struct {
	Model       string          `json:"model"`
	Messages    []compatMessage `json:"messages"`
	Temperature float32         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
}

type compatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type compatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Ask sends the history with the system prompt in front and returns the
// first choice's content.
func (p *CompatProxy) Ask(ctx context.Context, history []Message) (string, error) {
	messages := make([]compatMessage, 0, len(history)+1)
	if p.opts.SystemPrompt != "" {
		messages = append(messages, compatMessage{Role: "system", Content: p.opts.SystemPrompt})
	}
	for _, m := range history {
		messages = append(messages, compatMessage{Role: string(m.Role), Content: m.Text})
	}

	jsonData, err := json.Marshal(compatRequest{
		Model:       p.opts.Model,
		Messages:    messages,
		Temperature: p.opts.Temperature,
		MaxTokens:   p.opts.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url+"/v1/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", &ProxyError{Provider: p.Name(), Reason: "request failed", Wrapped: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &ProxyError{Provider: p.Name(), Reason: fmt.Sprintf("status %d", resp.StatusCode)}
	}

	var body compatResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", &ProxyError{Provider: p.Name(), Reason: "invalid response body", Wrapped: err}
	}

	if len(body.Choices) == 0 {
		return "", &ProxyError{Provider: p.Name(), Reason: "no choices"}
	}

	content := body.Choices[0].Message.Content
	if content == "" {
		return "", emptyReply(p.Name())
	}

	return content, nil
}
