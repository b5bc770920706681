package api

import (
	"errors"
	"net/http"

	"github.com/chatprobe/backend/internal/auth"
)

// ── Request / Response types ────────────────────────────────────────────────

type LoginRequest struct {
	Email    string `json:"email" example:"admin@example.com"`
	Password string `json:"password" example:"test123"`
}

func (r *LoginRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return errors.New("email and password are required")
	}
	return nil
}

type LoginResponse struct {
	Token string `json:"token"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// login exchanges admin credentials for a session token.
// @Summary      Log in
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Credentials"
// @Success      200   {object}  LoginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/login [post]
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	token, err := h.auth.Login(req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials.")
		return
	}
	if err != nil {
		h.logger.Error("login failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Something went wrong.")
		return
	}

	respondJSON(w, http.StatusOK, LoginResponse{Token: token})
}
