package chat

import (
	"context"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// GeminiProxy calls the Gemini API through the genai SDK.
type GeminiProxy struct {
	client *genai.Client
	opts   Options
}

var _ Proxy = (*GeminiProxy)(nil)

func NewGeminiProxy(ctx context.Context, apiKey, baseURL string, opts Options) (*GeminiProxy, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	if opts.Timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, &ProxyError{Provider: "gemini", Reason: "client setup failed", Wrapped: err}
	}
	return &GeminiProxy{client: client, opts: opts}, nil
}

func (p *GeminiProxy) Name() string { return "gemini" }

func (p *GeminiProxy) Ask(ctx context.Context, history []Message) (string, error) {
	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		content := &genai.Content{
			Parts: []*genai.Part{{Text: m.Text}},
		}
		if m.Role == RoleUser {
			content.Role = genai.RoleUser
		} else {
			content.Role = genai.RoleModel
		}
		contents = append(contents, content)
	}

	temperature := p.opts.Temperature
	config := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}
	if p.opts.MaxTokens > 0 {
		config.MaxOutputTokens = int32(p.opts.MaxTokens)
	}
	if p.opts.SystemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: p.opts.SystemPrompt}},
		}
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.opts.Model, contents, config)
	if err != nil {
		return "", &ProxyError{Provider: p.Name(), Reason: "generate content failed", Wrapped: err}
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &ProxyError{Provider: p.Name(), Reason: "no candidates"}
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	if sb.Len() == 0 {
		return "", emptyReply(p.Name())
	}
	return sb.String(), nil
}
