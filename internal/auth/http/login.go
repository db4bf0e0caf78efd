package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dev-gonzo/system-rpg-backend-sub000/internal/auth/service"
	"github.com/dev-gonzo/system-rpg-backend-sub000/pkg/httpx"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginHandler serves POST /api/v1/auth/login. It exchanges a username and
// password for a token pair. Both unknown users and wrong passwords come
// back as the same 401 so the endpoint leaks nothing about which accounts
// exist.
type LoginHandler struct {
	Auth *service.AuthService
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "request body must be valid JSON")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "username and password are required")
		return
	}

	result, err := h.Auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusUnauthorized,
				"invalid_credentials", "invalid username or password")
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError,
			"server_error", "login failed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, result)
}
