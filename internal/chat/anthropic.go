package chat

import (
	"context"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicProxy calls the Messages API.
type AnthropicProxy struct {
	client anthropic.Client
	opts   Options
}

var _ Proxy = (*AnthropicProxy)(nil)

func NewAnthropicProxy(apiKey, baseURL string, opts Options) (*AnthropicProxy, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	if opts.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithHTTPClient(&http.Client{Timeout: opts.Timeout}))
	}
	return &AnthropicProxy{
		client: anthropic.NewClient(reqOpts...),
		opts:   opts,
	}, nil
}

func (p *AnthropicProxy) Name() string { return "anthropic" }

func (p *AnthropicProxy) Ask(ctx context.Context, history []Message) (string, error) {
	maxTokens := p.opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(p.opts.Model),
		Messages:    toAnthropicMessages(history),
		MaxTokens:   int64(maxTokens),
		Temperature: anthropic.Float(float64(p.opts.Temperature)),
	}
	if p.opts.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{
				Type: "text",
				Text: p.opts.SystemPrompt,
			},
		}
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", &ProxyError{Provider: p.Name(), Reason: "message request failed", Wrapped: err}
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", emptyReply(p.Name())
	}
	return sb.String(), nil
}

func toAnthropicMessages(history []Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(history))
	for _, m := range history {
		block := anthropic.NewTextBlock(m.Text)
		if m.Role == RoleUser {
			out = append(out, anthropic.NewUserMessage(block))
		} else {
			out = append(out, anthropic.NewAssistantMessage(block))
		}
	}
	return out
}
