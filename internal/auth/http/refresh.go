package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dev-gonzo/system-rpg-backend-sub000/internal/auth/service"
	"github.com/dev-gonzo/system-rpg-backend-sub000/pkg/httpx"
)

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
	// AccessToken is the pair's old access token, sent so it can be
	// blacklisted alongside the rotation. Optional.
	AccessToken string `json:"accessToken,omitempty"`
}

// RefreshHandler serves POST /api/v1/auth/refresh. Each refresh token is
// single-use: redeeming one blacklists it and hands back a fresh pair.
type RefreshHandler struct {
	Auth *service.AuthService
}

func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "request body must be valid JSON")
		return
	}

	if req.RefreshToken == "" {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "refreshToken is required")
		return
	}

	result, err := h.Auth.Refresh(r.Context(), req.RefreshToken, req.AccessToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			httpx.WriteError(w, http.StatusUnauthorized,
				"invalid_token", "refresh token is invalid, expired, or revoked")
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError,
			"server_error", "token refresh failed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, result)
}
