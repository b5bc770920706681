// internal/api/routes.go
package api

import (
	"net/http"
	"strings"
)

func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /health", h.health)

	// Login
	mux.HandleFunc("POST /api/login", h.login)

	// Chat
	mux.HandleFunc("POST /api/chat", h.chat)
	mux.HandleFunc("POST /api/test", h.assistantTest)
	mux.HandleFunc("GET /api/env-debug", h.envStatus)
	mux.HandleFunc("POST /api/env-debug", h.envEcho)

	// Suites
	mux.HandleFunc("POST /api/suites", h.createSuite)
	mux.HandleFunc("GET /api/suites", h.listSuites)
	mux.HandleFunc("POST /api/suites/import", h.importSuite)
	mux.HandleFunc("GET /api/suites/{suiteID}", h.getSuite)
	mux.HandleFunc("GET /api/suites/{suiteID}/export", h.exportSuite)
	mux.HandleFunc("DELETE /api/suites/{suiteID}", h.deleteSuite)
	mux.HandleFunc("POST /api/suites/{suiteID}/cases", h.addCase)
	mux.HandleFunc("DELETE /api/suites/{suiteID}/cases/{caseID}", h.deleteCase)

	// Runs
	mux.HandleFunc("POST /api/runs", h.startRun)
	mux.HandleFunc("GET /api/runs/current", h.currentRun)
	mux.HandleFunc("DELETE /api/runs/current", h.cancelRun)
	mux.HandleFunc("GET /api/runs/stream", h.streamRun)
}

// Public reports whether a request may skip authentication.
func Public(r *http.Request) bool {
	switch r.URL.Path {
	case "/health", "/metrics", "/api/login", "/api/env-debug":
		return true
	}
	return strings.HasPrefix(r.URL.Path, "/swagger/")
}

// health reports liveness.
// @Summary      Health check
// @Tags         System
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
