package chat

import (
	"context"
	"math"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProxy calls the Chat Completions API.
type OpenAIProxy struct {
	client *openai.Client
	opts   Options
}

var _ Proxy = (*OpenAIProxy)(nil)

// NewOpenAIProxy builds a client for apiKey. A non-empty baseURL points it at
// an OpenAI-compatible gateway instead of api.openai.com.
func NewOpenAIProxy(apiKey, baseURL string, opts Options) (*OpenAIProxy, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if opts.Timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	return &OpenAIProxy{
		client: openai.NewClientWithConfig(cfg),
		opts:   opts,
	}, nil
}

func (p *OpenAIProxy) Name() string { return "openai" }

func (p *OpenAIProxy) Ask(ctx context.Context, history []Message) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.opts.Model,
		Messages:    toOpenAIMessages(history, p.opts.SystemPrompt),
		Temperature: openAITemperature(p.opts.Temperature),
		MaxTokens:   p.opts.MaxTokens,
	})
	if err != nil {
		return "", &ProxyError{Provider: p.Name(), Reason: "chat completion failed", Wrapped: err}
	}
	if len(resp.Choices) == 0 {
		return "", &ProxyError{Provider: p.Name(), Reason: "no choices"}
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", emptyReply(p.Name())
	}
	return content, nil
}

func toOpenAIMessages(history []Message, system string) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	if system != "" {
		out = append(out, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	for _, m := range history {
		role := openai.ChatMessageRoleAssistant
		if m.Role == RoleUser {
			role = openai.ChatMessageRoleUser
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: m.Text})
	}
	return out
}

// The temperature field is omitempty, so an explicit 0 would fall back to the
// API default of 1.
func openAITemperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}
