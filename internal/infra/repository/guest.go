package repository

import (
	"context"
	"time"

	"stayhub/internal/domain/guest"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"

	"github.com/google/uuid"
)

type GuestRepository struct{}

func NewGuestRepository() *GuestRepository {
	return &GuestRepository{}
}

func (r *GuestRepository) Create(ctx context.Context, tx db.DBTX, g *guest.Guest, hashedPassword string) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO guests (id, email, name, hashed_password, role, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		g.ID(), g.Email().Value(), g.Name(), hashedPassword, g.Role(), g.IsActive(), g.CreatedAt())
	if err != nil {
		return wrapPgErr("failed to create guest", err)
	}
	return nil
}

// FindByEmail also returns the stored password hash for credential checks.
func (r *GuestRepository) FindByEmail(ctx context.Context, tx db.DBTX, email string) (*guest.Guest, string, error) {
	var (
		id             uuid.UUID
		emailValue     string
		name, hash     string
		role           string
		isActive       bool
		createdAt      time.Time
	)
	err := tx.QueryRow(ctx, `
		SELECT id, email, name, hashed_password, role, is_active, created_at
		FROM guests WHERE email = $1`,
		email).Scan(&id, &emailValue, &name, &hash, &role, &isActive, &createdAt)
	if err != nil {
		return nil, "", wrapPgErr("failed to find guest by email", err)
	}

	g, err := reconstructGuest(id, emailValue, name, role, isActive, createdAt)
	if err != nil {
		return nil, "", infra.WrapRepoErr("corrupted guest row", err)
	}
	return g, hash, nil
}

func (r *GuestRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*guest.Guest, error) {
	var (
		emailValue string
		name       string
		role       string
		isActive   bool
		createdAt  time.Time
	)
	err := tx.QueryRow(ctx, `
		SELECT email, name, role, is_active, created_at FROM guests WHERE id = $1`,
		id).Scan(&emailValue, &name, &role, &isActive, &createdAt)
	if err != nil {
		return nil, wrapPgErr("failed to find guest by id", err)
	}

	g, err := reconstructGuest(id, emailValue, name, role, isActive, createdAt)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupted guest row", err)
	}
	return g, nil
}

func (r *GuestRepository) UpdateLastLogin(ctx context.Context, tx db.DBTX, id uuid.UUID, at time.Time) error {
	_, err := tx.Exec(ctx, `UPDATE guests SET last_login_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return wrapPgErr("failed to update last login", err)
	}
	return nil
}

func reconstructGuest(id uuid.UUID, email, name, roleValue string, isActive bool, createdAt time.Time) (*guest.Guest, error) {
	e, err := guest.NewEmail(email)
	if err != nil {
		return nil, err
	}
	role, err := guest.NewRole(roleValue)
	if err != nil {
		return nil, err
	}
	return guest.ReconstructGuest(id, e, name, role, isActive, createdAt), nil
}
