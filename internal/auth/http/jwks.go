package http

import (
	"net/http"

	"github.com/dev-gonzo/system-rpg-backend-sub000/internal/auth/service"
	"github.com/dev-gonzo/system-rpg-backend-sub000/pkg/httpx"
)

// JWKSHandler exposes the JSON Web Key Set for public key discovery. An
// HS256 deployment serves an empty set.
func JWKSHandler(jwks *service.JWKSService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, jwks.KeySet())
	}
}
