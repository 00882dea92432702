package repository

import (
	"context"
	"errors"
	"time"

	"stayhub/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// RevokedTokenRepository persists logged-out token ids until they would have
// expired anyway; the sweeper purges the rest.
type RevokedTokenRepository struct{}

func NewRevokedTokenRepository() *RevokedTokenRepository {
	return &RevokedTokenRepository{}
}

func (r *RevokedTokenRepository) Revoke(ctx context.Context, tx db.DBTX, jti string, guestID uuid.UUID, expiresAt, now time.Time) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO revoked_tokens (jti, guest_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (jti) DO NOTHING`,
		jti, guestID, expiresAt, now)
	if err != nil {
		return wrapPgErr("failed to revoke token", err)
	}
	return nil
}

func (r *RevokedTokenRepository) IsRevoked(ctx context.Context, tx db.DBTX, jti string) (bool, error) {
	var one int
	err := tx.QueryRow(ctx, `SELECT 1 FROM revoked_tokens WHERE jti = $1`, jti).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, wrapPgErr("failed to check token revocation", err)
	}
	return true, nil
}

func (r *RevokedTokenRepository) PurgeExpired(ctx context.Context, tx db.DBTX, now time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, `DELETE FROM revoked_tokens WHERE expires_at < $1`, now)
	if err != nil {
		return 0, wrapPgErr("failed to purge expired tokens", err)
	}
	return tag.RowsAffected(), nil
}
