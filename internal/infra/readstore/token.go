package readstore

import (
	"context"
	"errors"

	"stayhub/internal/infra"
	"stayhub/internal/infra/db"

	"github.com/jackc/pgx/v5"
)

type TokenReadStore struct {
	db db.DBTX
}

func NewTokenReadStore(dbtx db.DBTX) *TokenReadStore {
	return &TokenReadStore{db: dbtx}
}

func (s *TokenReadStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var one int
	err := s.db.QueryRow(ctx, `SELECT 1 FROM revoked_tokens WHERE jti = $1`, jti).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, infra.WrapRepoErr("failed to check token revocation", err)
	}
	return true, nil
}
