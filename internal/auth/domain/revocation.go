package domain

import "time"

// Revocation reasons recorded alongside blacklisted tokens.
const (
	RevokeReasonLogout     = "logout"
	RevokeReasonSuperseded = "superseded by refresh"
)

// RevokedToken is a blacklist entry for a token that must be rejected
// before its natural expiry. Entries are keyed by the token's SHA-256
// fingerprint so the raw JWT never touches storage.
type RevokedToken struct {
	ID          string
	Fingerprint string
	UserID      string
	Reason      string
	ExpiresAt   time.Time // the token's own exp; entries are purgeable after this
	CreatedAt   time.Time
}
