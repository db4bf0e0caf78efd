package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/dev-gonzo/system-rpg-backend-sub000/internal/auth/domain"
	"github.com/dev-gonzo/system-rpg-backend-sub000/internal/auth/store"
	"github.com/dev-gonzo/system-rpg-backend-sub000/pkg/cryptox"
	"github.com/dev-gonzo/system-rpg-backend-sub000/pkg/idx"
	"github.com/dev-gonzo/system-rpg-backend-sub000/pkg/jwtx"
	"github.com/dev-gonzo/system-rpg-backend-sub000/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidToken       = errors.New("invalid_token")
)

// AuthService owns the token lifecycle: it mints pairs on login, rotates
// them on refresh, and blacklists them on logout.
type AuthService struct {
	Codec      *jwtx.Codec
	Users      store.Users
	Revoked    store.RevokedTokens
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Login verifies the password and issues a fresh token pair. Credential
// failures are indistinguishable on purpose: an unknown username and a
// wrong password both come back as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	l := slogx.FromContext(ctx)
	username = strings.TrimSpace(username)

	user, err := s.Users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("login failed, unknown username", slog.String("username", username))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		l.Info("login rejected, account disabled", slog.String("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("login failed, bad password", slog.String("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.Users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		// Not worth failing the login over.
		l.Warn("failed to stamp last login", "error", err)
	}

	result, err := s.issuePair(user, now)
	if err != nil {
		return nil, err
	}

	l.Info("user logged in", slog.String("user_id", user.ID))
	return result, nil
}

// Refresh redeems a refresh token for a new pair. The presented refresh
// token is blacklisted so each one is single-use, and the caller's old
// access token (when provided) is blacklisted best-effort alongside it.
func (s *AuthService) Refresh(ctx context.Context, refreshToken, oldAccessToken string) (*domain.AuthResult, error) {
	l := slogx.FromContext(ctx)
	now := time.Now().UTC()

	claims, err := s.verifyUsable(ctx, refreshToken, jwtx.KindRefresh)
	if err != nil {
		return nil, err
	}

	user, err := s.Users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidToken
	}

	// Rotate: the presented refresh token must never work twice.
	if err := s.revoke(ctx, refreshToken, claims, domain.RevokeReasonSuperseded); err != nil {
		return nil, err
	}

	// The old access token dies with its refresh token. Best effort: a
	// malformed or missing access token does not fail the rotation.
	if oldAccessToken != "" {
		if accessClaims, err := s.Codec.Decode(oldAccessToken); err == nil {
			if err := s.revoke(ctx, oldAccessToken, accessClaims, domain.RevokeReasonSuperseded); err != nil {
				l.Warn("failed to blacklist superseded access token", "error", err)
			}
		}
	}

	result, err := s.issuePair(user, now)
	if err != nil {
		return nil, err
	}

	l.Info("token pair rotated", slog.String("user_id", user.ID))
	return result, nil
}

// Logout blacklists the presented access token until its natural expiry.
// The token must still verify: expired or otherwise invalid tokens are
// rejected with ErrInvalidToken.
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	l := slogx.FromContext(ctx)

	claims, err := s.Codec.Decode(accessToken)
	if err != nil {
		return ErrInvalidToken
	}

	if err := s.revoke(ctx, accessToken, claims, domain.RevokeReasonLogout); err != nil {
		return err
	}

	l.Info("user logged out", slog.String("user_id", claims.UserID))
	return nil
}

// verifyUsable decodes the token, checks the kind, and consults the
// blacklist. Everything but store failures collapses to ErrInvalidToken.
func (s *AuthService) verifyUsable(ctx context.Context, token string, kind jwtx.TokenKind) (*jwtx.Claims, error) {
	claims, err := s.Codec.Decode(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Kind != kind {
		return nil, ErrInvalidToken
	}

	revoked, err := s.Revoked.IsRevoked(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) revoke(ctx context.Context, token string, claims *jwtx.Claims, reason string) error {
	exp, err := claims.Expiry()
	if err != nil {
		return err
	}
	return s.Revoked.Revoke(ctx, domain.RevokedToken{
		ID:          idx.New().String(),
		Fingerprint: cryptox.FingerprintToken(token),
		UserID:      claims.UserID,
		Reason:      reason,
		ExpiresAt:   exp,
		CreatedAt:   time.Now().UTC(),
	})
}

func (s *AuthService) issuePair(user domain.User, now time.Time) (*domain.AuthResult, error) {
	access := jwtx.NewAccessClaims(user.Username, user.ID, user.Email,
		user.FullName(), user.Roles, s.AccessTTL, now)
	accessToken, err := s.Codec.Encode(access)
	if err != nil {
		return nil, err
	}

	refresh := jwtx.NewRefreshClaims(user.Username, user.ID, s.RefreshTTL, now)
	refreshToken, err := s.Codec.Encode(refresh)
	if err != nil {
		return nil, err
	}

	expiresAt := now.Add(s.AccessTTL)
	return &domain.AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.AccessTTL.Seconds()),
		ExpiresAt:    expiresAt,
		User:         domain.SummarizeUser(user),
	}, nil
}
