package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dev-gonzo/system-rpg-backend-sub000/internal/auth/service"
	"github.com/dev-gonzo/system-rpg-backend-sub000/pkg/httpx"
)

// LogoutHandler serves POST /api/v1/auth/logout. The access token from the
// Authorization header is blacklisted until its natural expiry. A token
// that no longer verifies, expired included, answers 401.
type LogoutHandler struct {
	Auth *service.AuthService
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "Authorization header with a bearer token is required")
		return
	}

	if err := h.Auth.Logout(r.Context(), token); err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			httpx.WriteError(w, http.StatusUnauthorized,
				"invalid_token", "access token is invalid")
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError,
			"server_error", "logout failed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	token := strings.TrimPrefix(auth, "Bearer ")
	if token == auth {
		return ""
	}
	return strings.TrimSpace(token)
}
