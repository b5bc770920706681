package chat

import (
	"context"
	"fmt"
)

const (
	ProviderOpenAI    = "openai"
	ProviderCompat    = "compat"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Config selects and configures one provider.
type Config struct {
	Provider string
	APIKey   string
	BaseURL  string
	Options  Options
}

// New builds the configured provider.
func New(ctx context.Context, cfg Config) (Proxy, error) {
	if cfg.Options.SystemPrompt == "" {
		cfg.Options.SystemPrompt = DefaultSystemPrompt
	}

	switch cfg.Provider {
	case ProviderOpenAI, "":
		return NewOpenAIProxy(cfg.APIKey, cfg.BaseURL, cfg.Options)
	case ProviderCompat:
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("compat provider requires a base url")
		}
		return NewCompatProxy(cfg.BaseURL, cfg.APIKey, cfg.Options), nil
	case ProviderAnthropic:
		return NewAnthropicProxy(cfg.APIKey, cfg.BaseURL, cfg.Options)
	case ProviderGemini:
		return NewGeminiProxy(ctx, cfg.APIKey, cfg.BaseURL, cfg.Options)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
