package store

import (
	"context"
	"errors"
	"time"

	"github.com/dev-gonzo/system-rpg-backend-sub000/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, and
// redis for the revocation set) implement this. Sub-repositories keep
// concerns tidy and individually mockable in tests.
type Store interface {
	Users() Users
	RevokedTokens() RevokedTokens

	ApplyMigrations() error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the backing store is still reachable.
	Ping(ctx context.Context) error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app as a UUID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateLastLogin stamps last_login_at and bumps updated_at.
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type RevokedTokens interface {
	// Revoke inserts a blacklist entry. Revoking an already-revoked
	// fingerprint is a no-op, not an error.
	Revoke(ctx context.Context, t domain.RevokedToken) error

	// IsRevoked reports whether the fingerprint is on the blacklist.
	IsRevoked(ctx context.Context, fingerprint string) (bool, error)

	// PurgeExpired removes entries whose tokens expired before now and
	// returns how many were deleted.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
