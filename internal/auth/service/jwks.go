package service

import (
	"log/slog"

	"github.com/dev-gonzo/system-rpg-backend-sub000/pkg/jwtx"
)

// JWKSService publishes the verification keys for the active signing
// strategy. HMAC has no public half, so an HS256 deployment publishes an
// empty set rather than failing discovery.
type JWKSService struct {
	Signer *jwtx.RS256Signer // nil when signing with HS256
	Logger *slog.Logger
}

func (s *JWKSService) KeySet() jwtx.JWKS {
	if s.Signer == nil {
		if s.Logger != nil {
			s.Logger.Warn("JWKS requested while signing with HS256, publishing empty key set")
		}
		return jwtx.EmptyJWKS()
	}
	return jwtx.JWKS{Keys: []jwtx.JWK{s.Signer.PublicJWK()}}
}
