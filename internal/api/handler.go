// internal/api/handler.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/chatprobe/backend/internal/auth"
	"github.com/chatprobe/backend/internal/chat"
	"github.com/chatprobe/backend/internal/service"
	"github.com/chatprobe/backend/internal/store"
)

const maxBodyBytes = 1 << 20

var errEmptyBody = errors.New("request body is empty")

// Prober runs a message through the hosted assistant.
type Prober interface {
	Run(ctx context.Context, message string) (string, error)
}

// Deps are the collaborators the HTTP layer needs. Probe may be nil when no
// assistant is configured.
type Deps struct {
	Store     store.Store
	Runs      *service.RunService
	Proxy     chat.Proxy
	Probe     Prober
	Auth      *auth.Service
	EnvLookup func(string) string
	Logger    *slog.Logger
}

// Handler holds all dependencies needed by HTTP handlers.
type Handler struct {
	store     store.Store
	runs      *service.RunService
	proxy     chat.Proxy
	probe     Prober
	auth      *auth.Service
	envLookup func(string) string
	logger    *slog.Logger
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		store:     d.Store,
		runs:      d.Runs,
		proxy:     d.Proxy,
		probe:     d.Probe,
		auth:      d.Auth,
		envLookup: d.EnvLookup,
		logger:    d.Logger,
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// validator is implemented by request bodies that check themselves.
type validator interface {
	Validate() error
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

// decodeAndValidate decodes the body into req and runs its Validate method.
// It writes a 400 and returns false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req validator) bool {
	if err := decodeJSON(w, r, req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// handleStoreError checks for common store errors and writes the appropriate
// HTTP response. Returns true if an error was handled (caller should return).
func (h *Handler) handleStoreError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, entity+" not found")
		return true
	}
	h.logger.Error("store error", "error", err, "entity", entity)
	respondError(w, http.StatusInternalServerError, "internal error")
	return true
}
