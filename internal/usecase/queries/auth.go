package queries

import (
	"context"

	"stayhub/internal/pkg/errs"
	"stayhub/internal/pkg/jwt"
)

var ErrTokenRevoked = errs.New("token revoked")

type TokenReadStore interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthQueries validates bearer tokens for the request path: signature and
// expiry through the JWT service, then a revocation check against the
// durable blocklist.
type AuthQueries interface {
	ValidateAccessToken(ctx context.Context, rawToken string) (*jwt.Claims, error)
}

type authQueriesImpl struct {
	jwtService *jwt.Service
	tokens     TokenReadStore
}

func NewAuthQueries(jwtService *jwt.Service, tokens TokenReadStore) AuthQueries {
	return &authQueriesImpl{jwtService: jwtService, tokens: tokens}
}

func (q *authQueriesImpl) ValidateAccessToken(ctx context.Context, rawToken string) (*jwt.Claims, error) {
	claims, err := q.jwtService.ValidateToken(rawToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != jwt.TokenTypeAccess {
		return nil, jwt.ErrInvalidToken
	}

	revoked, err := q.tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}
