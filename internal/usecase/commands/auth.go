package commands

import (
	"context"
	"log/slog"

	"stayhub/internal/domain/guest"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/pkg/jwt"
	"stayhub/internal/pkg/password"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrGuestInactive        = errs.New("guest inactive")
	ErrEmailAlreadyTaken    = errs.New("email already taken")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
	ErrTokenValidation      = errs.New("token validation failed")
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type LoginResult struct {
	GuestID   uuid.UUID
	Role      string
	TokenPair *TokenPair
}

type RegisterResult struct {
	GuestID uuid.UUID
	Email   string
}

type AuthCommands interface {
	Register(ctx context.Context, email, name, plainPassword string) (*RegisterResult, error)
	Login(ctx context.Context, email, plainPassword string) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, rawToken string) error
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	jwtService *jwt.Service
	clock      clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		jwtService: jwtService,
		clock:      clk,
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, email, name, plainPassword string) (*RegisterResult, error) {
	addr, err := guest.NewEmail(email)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}
	hashed, err := password.HashPassword(plainPassword)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	g := guest.NewGuest(addr, name, guest.RoleGuest, a.clock.Now())
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Guests().Create(ctx, tx.DB(), g, hashed); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrEmailAlreadyTaken
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &RegisterResult{GuestID: g.ID(), Email: addr.Value()}, nil
}

func (a *authCommandsImpl) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	credentials, err := guest.NewCredentials(email, plainPassword)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	var (
		g      *guest.Guest
		hashed string
	)
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, storedHash, err := tx.Guests().FindByEmail(ctx, tx.DB(), credentials.Email().Value())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrInvalidCredentials
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		g = found
		hashed = storedHash
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !g.IsActive() {
		return nil, ErrGuestInactive
	}
	if err := password.ComparePassword(hashed, credentials.Password()); err != nil {
		return nil, ErrInvalidCredentials
	}

	pair, err := a.issueTokens(g.ID(), g.Role())
	if err != nil {
		return nil, err
	}

	if err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Guests().UpdateLastLogin(ctx, tx.DB(), g.ID(), a.clock.Now())
	}); err != nil {
		// Login already succeeded; the timestamp is informational.
		slog.Warn("failed to update last login", "guest_id", g.ID(), "error", err.Error())
	}

	return &LoginResult{GuestID: g.ID(), Role: g.Role().String(), TokenPair: pair}, nil
}

func (a *authCommandsImpl) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}
	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrTokenValidation
	}

	role, err := guest.NewRole(claims.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}

	var g *guest.Guest
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		revoked, err := tx.RevokedTokens().IsRevoked(ctx, tx.DB(), claims.ID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if revoked {
			return ErrTokenValidation
		}
		found, err := tx.Guests().FindByID(ctx, tx.DB(), claims.GuestID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrGuestNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		g = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !g.IsActive() {
		return nil, ErrGuestInactive
	}

	return a.issueTokens(claims.GuestID, role)
}

// Logout revokes the presented token by its JTI until its natural expiry, so
// a stolen token cannot outlive the session it came from.
func (a *authCommandsImpl) Logout(ctx context.Context, rawToken string) error {
	claims, err := a.jwtService.ValidateToken(rawToken)
	if err != nil {
		return errs.Mark(err, ErrTokenValidation)
	}

	expiresAt := a.clock.Now().Add(a.jwtService.RefreshTokenDuration())
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.RevokedTokens().Revoke(ctx, tx.DB(), claims.ID, claims.GuestID, expiresAt, a.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (a *authCommandsImpl) issueTokens(guestID uuid.UUID, role guest.Role) (*TokenPair, error) {
	accessToken, err := a.jwtService.GenerateAccessToken(guestID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	refreshToken, err := a.jwtService.GenerateRefreshToken(guestID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
