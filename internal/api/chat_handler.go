package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/chatprobe/backend/internal/assistant"
	"github.com/chatprobe/backend/internal/chat"
)

// ── Request / Response types ────────────────────────────────────────────────

type ChatRequest struct {
	Messages json.RawMessage `json:"messages"`
}

// Validate only checks the shape; the browser client sends its whole
// message list with ids we ignore.
func (r *ChatRequest) Validate() error {
	trimmed := bytes.TrimSpace(r.Messages)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return errors.New("Messages are required and must be an array")
	}
	return nil
}

type ChatMessage struct {
	ID     any    `json:"id,omitempty"`
	Text   string `json:"text"`
	Sender string `json:"sender" example:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
	Error   bool   `json:"error,omitempty"`
}

type AssistantTestRequest struct {
	Message string `json:"message" example:"run the test"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// chat forwards the conversation to the chat proxy.
// @Summary      Send a conversation
// @Description  Forwards the full history to the configured provider and returns one reply.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        body  body      ChatRequest  true  "Conversation"
// @Success      200   {object}  MessageResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/chat [post]
func (h *Handler) chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Messages are required and must be an array")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var incoming []ChatMessage
	if err := json.Unmarshal(req.Messages, &incoming); err != nil {
		respondError(w, http.StatusBadRequest, "Messages are required and must be an array")
		return
	}

	history := make([]chat.Message, len(incoming))
	for i, m := range incoming {
		history[i] = chat.Message{Role: chat.FromSender(m.Sender), Text: m.Text}
	}

	reply, err := h.proxy.Ask(r.Context(), history)
	if err != nil {
		h.logger.Error("chat request failed", "provider", h.proxy.Name(), "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, MessageResponse{Message: reply})
}

// assistantTest runs a message through the hosted assistant.
// @Summary      Run the assistant probe
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        body  body      AssistantTestRequest  false  "Message"
// @Success      200   {object}  MessageResponse
// @Failure      500   {object}  MessageResponse
// @Router       /api/test [post]
func (h *Handler) assistantTest(w http.ResponseWriter, r *http.Request) {
	if h.probe == nil {
		respondJSON(w, http.StatusInternalServerError, MessageResponse{
			Message: "Assistant is not configured. Set OPENAI_API_KEY and ASSISTANT_ID.",
			Error:   true,
		})
		return
	}

	var req AssistantTestRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		respondJSON(w, http.StatusBadRequest, MessageResponse{Message: err.Error(), Error: true})
		return
	}

	reply, err := h.probe.Run(r.Context(), req.Message)
	if err != nil {
		h.logger.Error("assistant probe failed", "error", err)
		var statusErr *assistant.StatusError
		msg := "Assistant API error: " + err.Error()
		if errors.As(err, &statusErr) {
			msg = "Test run status: " + string(statusErr.Status)
		}
		respondJSON(w, http.StatusInternalServerError, MessageResponse{Message: msg, Error: true})
		return
	}

	respondJSON(w, http.StatusOK, MessageResponse{Message: reply})
}

// envStatus reports which provider keys are set without revealing them.
// @Summary      Environment status
// @Tags         System
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/env-debug [get]
func (h *Handler) envStatus(w http.ResponseWriter, r *http.Request) {
	keys := map[string]bool{}
	for _, k := range []string{"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY"} {
		keys[k] = h.envLookup(k) != ""
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Environment variable status (values not shown for security)",
		"env":     keys,
	})
}

// envEcho echoes any JSON body back.
// @Summary      Echo test
// @Tags         System
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      500  {object}  map[string]any
// @Router       /api/env-debug [post]
func (h *Handler) envEcho(w http.ResponseWriter, r *http.Request) {
	var body any
	if err := decodeJSON(w, r, &body); err != nil {
		h.logger.Warn("echo endpoint received invalid body", "error", err)
		respondJSON(w, http.StatusInternalServerError, map[string]any{
			"error":     "Error processing request",
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":      "Test endpoint works! Received data.",
		"receivedData": body,
		"timestamp":    time.Now().UTC().Format(time.RFC3339Nano),
	})
}

