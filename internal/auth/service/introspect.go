package service

import (
	"context"
	"errors"
	"strings"

	"github.com/dev-gonzo/system-rpg-backend-sub000/internal/auth/domain"
	"github.com/dev-gonzo/system-rpg-backend-sub000/pkg/cryptox"
	"github.com/dev-gonzo/system-rpg-backend-sub000/pkg/jwtx"
	"github.com/dev-gonzo/system-rpg-backend-sub000/pkg/slogx"
)

// Introspect reports whether a presented token is currently good. It never
// returns an error: any failure, including a store outage, collapses to an
// inactive result with a reason. A "Bearer " prefix is tolerated so callers
// can forward an Authorization header value verbatim.
func (s *AuthService) Introspect(ctx context.Context, token string) (out domain.Introspection) {
	defer func() {
		// A panic below the decode boundary must not escape introspection.
		if r := recover(); r != nil {
			slogx.FromContext(ctx).Error("introspection panicked", "panic", r)
			out = domain.Introspection{Active: false, Error: "internal error"}
		}
	}()

	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return domain.Introspection{Active: false, Error: "empty token"}
	}

	claims, err := s.Codec.Decode(token)
	if err != nil {
		if errors.Is(err, jwtx.ErrExpired) {
			return domain.Introspection{Active: false, Error: "token is expired"}
		}
		return domain.Introspection{Active: false, Error: "token signature is invalid"}
	}

	revoked, err := s.Revoked.IsRevoked(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		slogx.FromContext(ctx).Error("introspection blacklist lookup failed", "error", err)
		return domain.Introspection{Active: false, Error: "internal error"}
	}
	if revoked {
		return domain.Introspection{Active: false, Error: "token is blacklisted"}
	}

	return domain.Introspection{Active: true, Claims: claimsMap(claims)}
}

// claimsMap flattens verified claims into the introspection payload. Times
// are reported as Unix seconds and empty custom claims are omitted.
func claimsMap(claims *jwtx.Claims) map[string]any {
	m := map[string]any{
		"sub":       claims.Subject,
		"tokenType": string(claims.Kind),
	}
	if exp, err := claims.Expiry(); err == nil {
		m["exp"] = exp.Unix()
	}
	if iat, err := claims.Issued(); err == nil {
		m["iat"] = iat.Unix()
	}
	if claims.UserID != "" {
		m["userId"] = claims.UserID
	}
	if claims.Email != "" {
		m["email"] = claims.Email
	}
	if claims.FullName != "" {
		m["name"] = claims.FullName
	}
	if len(claims.Roles) > 0 {
		m["roles"] = claims.Roles
	}
	return m
}
