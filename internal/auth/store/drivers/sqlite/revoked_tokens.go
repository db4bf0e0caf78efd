package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dev-gonzo/system-rpg-backend-sub000/internal/auth/domain"
)

type revokedTokensRepo struct {
	db *sql.DB
}

// Revoke upserts on fingerprint so revoking the same token twice is safe.
// The latest reason and expiry win.
func (r *revokedTokensRepo) Revoke(ctx context.Context, t domain.RevokedToken) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO revoked_tokens (id, fingerprint, user_id, reason, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (fingerprint) DO UPDATE SET
			reason = excluded.reason,
			expires_at = excluded.expires_at`,
		t.ID, t.Fingerprint, t.UserID, t.Reason, t.ExpiresAt.UTC(), t.CreatedAt.UTC(),
	)
	return err
}

func (r *revokedTokensRepo) IsRevoked(ctx context.Context, fingerprint string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM revoked_tokens WHERE fingerprint = ?`, fingerprint).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *revokedTokensRepo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM revoked_tokens WHERE expires_at < ?`, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
