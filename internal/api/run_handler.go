package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/chatprobe/backend/internal/service"
	"github.com/chatprobe/backend/internal/store"
)

const wsWriteWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(*http.Request) bool {
		return true
	},
}

// ── Request / Response types ────────────────────────────────────────────────

type StartRunRequest struct {
	SuiteID string `json:"suite_id" example:"a1b2c3d4e5f6g7h8"`
}

func (r *StartRunRequest) Validate() error {
	if r.SuiteID == "" {
		return errors.New("suite_id is required")
	}
	return nil
}

// ── Handlers ────────────────────────────────────────────────────────────────

// startRun runs a stored suite in the background.
// @Summary      Start a run
// @Tags         Runs
// @Accept       json
// @Produce      json
// @Param        body  body      StartRunRequest  true  "Suite to run"
// @Success      202   {object}  service.RunStatus
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string  "a run is already in progress"
// @Router       /api/runs [post]
func (h *Handler) startRun(w http.ResponseWriter, r *http.Request) {
	var req StartRunRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	status, err := h.runs.Start(r.Context(), req.SuiteID)
	switch {
	case err == nil:
		respondJSON(w, http.StatusAccepted, status)
	case errors.Is(err, service.ErrRunInProgress):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrEmptySuite):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "suite not found")
	default:
		h.logger.Error("failed to start run", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to start run")
	}
}

// currentRun returns the progress of the current or last run.
// @Summary      Current run
// @Tags         Runs
// @Produce      json
// @Success      200  {object}  service.RunStatus
// @Router       /api/runs/current [get]
func (h *Handler) currentRun(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.runs.Snapshot())
}

// cancelRun stops the active run before its next case.
// @Summary      Cancel the run
// @Tags         Runs
// @Produce      json
// @Success      202  {object}  service.RunStatus
// @Failure      409  {object}  map[string]string
// @Router       /api/runs/current [delete]
func (h *Handler) cancelRun(w http.ResponseWriter, r *http.Request) {
	if err := h.runs.Cancel(); err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	respondJSON(w, http.StatusAccepted, h.runs.Snapshot())
}

// streamRun pushes every progress frame of the current or next run over a
// WebSocket and closes after the final one.
// @Summary      Stream run progress
// @Tags         Runs
// @Param        token  query  string  false  "Session token for browsers that cannot set headers"
// @Success      101
// @Router       /api/runs/stream [get]
func (h *Handler) streamRun(w http.ResponseWriter, r *http.Request) {
	frames, unsubscribe := h.runs.Subscribe()
	defer unsubscribe()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	// Reads only serve to notice the client going away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	write := func(v any) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		return conn.WriteJSON(v) == nil
	}

	if !write(h.runs.Snapshot()) {
		return
	}

	for {
		select {
		case <-gone:
			return
		case <-r.Context().Done():
			return
		case frame, ok := <-frames:
			if !ok {
				_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "run finished"))
				return
			}
			if !write(frame) {
				return
			}
		}
	}
}
