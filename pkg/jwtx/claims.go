package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dev-gonzo/system-rpg-backend-sub000/pkg/idx"
)

// Default token TTLs. Access tokens stay short-lived; refresh tokens are
// long-lived and only ever exchanged for a new pair.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// TokenKind distinguishes access tokens from refresh tokens via the
// "tokenType" claim.
type TokenKind string

const (
	KindAccess  TokenKind = "ACCESS"
	KindRefresh TokenKind = "REFRESH"
)

var (
	ErrMissingSubject  = errors.New("jwtx: missing subject claim")
	ErrMissingUserID   = errors.New("jwtx: missing or malformed userId claim")
	ErrMissingKind     = errors.New("jwtx: missing or unknown tokenType claim")
	ErrMissingExpiry   = errors.New("jwtx: missing exp claim")
	ErrMissingIssuedAt = errors.New("jwtx: missing iat claim")
)

// Claims are the token claims used across the service. The subject carries
// the username; the user's stable UUID travels in the userId claim. Access
// tokens additionally carry email, full name, and role names so downstream
// request authentication never needs a user lookup.
type Claims struct {
	jwt.RegisteredClaims

	UserID   string    `json:"userId,omitempty"`
	Email    string    `json:"email,omitempty"`
	FullName string    `json:"fullName,omitempty"`
	Roles    []string  `json:"roles,omitempty"`
	Kind     TokenKind `json:"tokenType,omitempty"`
}

// NewAccessClaims builds the claims for a freshly issued access token.
func NewAccessClaims(
	username, userID, email, fullName string,
	roles []string,
	ttl time.Duration,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: registered(username, ttl, now),
		UserID:           userID,
		Email:            email,
		FullName:         fullName,
		Roles:            roles,
		Kind:             KindAccess,
	}
}

// NewRefreshClaims builds the claims for a refresh token. Refresh tokens
// deliberately carry only the user identity, nothing else.
func NewRefreshClaims(username, userID string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: registered(username, ttl, now),
		UserID:           userID,
		Kind:             KindRefresh,
	}
}

func registered(subject string, ttl time.Duration, now time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        NewJTI(),
	}
}

// NewJTI returns a ULID for the "jti" claim, sortable by issue time.
func NewJTI() string {
	return idx.New().String()
}

// Username returns the subject, erroring when absent rather than handing
// back an empty string callers could mistake for a real value.
func (c *Claims) Username() (string, error) {
	if c.Subject == "" {
		return "", ErrMissingSubject
	}
	return c.Subject, nil
}

// UserUUID parses the userId claim into a UUID.
func (c *Claims) UserUUID() (uuid.UUID, error) {
	if c.UserID == "" {
		return uuid.Nil, ErrMissingUserID
	}
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return uuid.Nil, ErrMissingUserID
	}
	return id, nil
}

// TokenKind returns the token kind, rejecting unknown or missing values.
func (c *Claims) TokenKind() (TokenKind, error) {
	switch c.Kind {
	case KindAccess, KindRefresh:
		return c.Kind, nil
	default:
		return "", ErrMissingKind
	}
}

// Expiry returns the exp claim as a time.
func (c *Claims) Expiry() (time.Time, error) {
	if c.ExpiresAt == nil {
		return time.Time{}, ErrMissingExpiry
	}
	return c.ExpiresAt.Time, nil
}

// Issued returns the iat claim as a time.
func (c *Claims) Issued() (time.Time, error) {
	if c.IssuedAt == nil {
		return time.Time{}, ErrMissingIssuedAt
	}
	return c.IssuedAt.Time, nil
}

// Expired reports whether the token's expiry is in the past relative to now.
func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresAt == nil || now.After(c.ExpiresAt.Time)
}
