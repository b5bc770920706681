package chat_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatprobe/backend/internal/chat"
)

func TestOpenAIProxy_Ask(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "gpt-4.1",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "The sky is blue."}, "finish_reason": "stop"}]
		}`))
	}))
	defer srv.Close()

	p, err := chat.NewOpenAIProxy("sk-test", srv.URL+"/v1", chat.Options{
		Model:        "gpt-4.1",
		SystemPrompt: "be kind",
		MaxTokens:    200,
	})
	require.NoError(t, err)

	reply, err := p.Ask(context.Background(), []chat.Message{chat.UserMessage("what colour is the sky?")})
	require.NoError(t, err)
	assert.Equal(t, "The sky is blue.", reply)

	assert.Equal(t, "gpt-4.1", got["model"])
	assert.EqualValues(t, 200, got["max_tokens"])
	messages, ok := got["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	first := messages[0].(map[string]any)
	assert.Equal(t, "system", first["role"])
	assert.Equal(t, "be kind", first["content"])
}

func TestOpenAIProxy_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	p, err := chat.NewOpenAIProxy("sk-test", srv.URL+"/v1", chat.Options{Model: "gpt-4.1"})
	require.NoError(t, err)

	_, err = p.Ask(context.Background(), []chat.Message{chat.UserMessage("hi")})
	var pe *chat.ProxyError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "openai", pe.Provider)
}

func TestAnthropicProxy_Ask(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "ant-test", r.Header.Get("X-Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-test",
			"content": [{"type": "text", "text": "Hello "}, {"type": "text", "text": "there"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 3, "output_tokens": 2}
		}`))
	}))
	defer srv.Close()

	p, err := chat.NewAnthropicProxy("ant-test", srv.URL, chat.Options{Model: "claude-test", SystemPrompt: "be kind"})
	require.NoError(t, err)

	reply, err := p.Ask(context.Background(), []chat.Message{
		chat.UserMessage("hi"),
		{Role: chat.RoleAssistant, Text: "hello"},
		chat.UserMessage("greet me"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello there", reply)

	assert.Equal(t, "claude-test", got["model"])
	messages := got["messages"].([]any)
	require.Len(t, messages, 3)
	assert.Equal(t, "assistant", messages[1].(map[string]any)["role"])
	assert.NotNil(t, got["system"])
}

func TestGeminiProxy_Ask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-test:generateContent"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "Blue"}, {"text": " sky"}]}}]
		}`))
	}))
	defer srv.Close()

	p, err := chat.NewGeminiProxy(context.Background(), "gem-test", srv.URL, chat.Options{Model: "gemini-test"})
	require.NoError(t, err)

	reply, err := p.Ask(context.Background(), []chat.Message{chat.UserMessage("sky colour?")})
	require.NoError(t, err)
	assert.Equal(t, "Blue sky", reply)
}
