package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chatprobe/backend/internal/infrastructure/config"
)

func TestFlags_Apply(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
		want  config.Config
	}{
		{
			name:  "no flags keep config",
			flags: Flags{},
			want:  config.Config{LLMProvider: "openai", LLMModel: "gpt-4.1", LogLevel: "warn"},
		},
		{
			name:  "provider and model override",
			flags: Flags{Provider: "anthropic", Model: "claude-sonnet-4-5"},
			want:  config.Config{LLMProvider: "anthropic", LLMModel: "claude-sonnet-4-5", LogLevel: "warn"},
		},
		{
			name:  "verbose enables debug logs",
			flags: Flags{Verbose: true},
			want:  config.Config{LLMProvider: "openai", LLMModel: "gpt-4.1", LogLevel: "debug"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Config{LLMProvider: "openai", LLMModel: "gpt-4.1", LogLevel: "warn"}
			tt.flags.Apply(&cfg)
			assert.Equal(t, tt.want, cfg)
		})
	}
}
