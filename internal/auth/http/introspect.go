package http

import (
	"encoding/json"
	"net/http"

	"github.com/dev-gonzo/system-rpg-backend-sub000/internal/auth/service"
	"github.com/dev-gonzo/system-rpg-backend-sub000/pkg/httpx"
)

type introspectRequest struct {
	Token string `json:"token"`
}

// IntrospectHandler serves POST /api/v1/auth/introspect. It always answers
// 200 with an active flag; an active token comes back with its claims, a
// token that fails any check comes back inactive with a diagnostic rather
// than as an error status. The token may be
// sent in the JSON body or as a bearer Authorization header, with or
// without the "Bearer " prefix.
type IntrospectHandler struct {
	Auth *service.AuthService
}

func (h *IntrospectHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req introspectRequest
	if r.Body != nil {
		// Malformed bodies fall through to an empty token, which
		// introspects as inactive. This endpoint never fails.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	token := req.Token
	if token == "" {
		token = r.Header.Get("Authorization")
	}

	httpx.WriteJSON(w, http.StatusOK, h.Auth.Introspect(r.Context(), token))
}
