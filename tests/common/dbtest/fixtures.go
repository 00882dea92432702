//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"stayhub/internal/pkg/password"
)

// TestPassword is the plaintext password every fixture guest can log in with.
const TestPassword = "password123"

func CreateTestGuest(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	guestID := uuid.New()
	ctx := context.Background()

	hashed, err := password.HashPassword(TestPassword)
	require.NoError(t, err)

	tag, err := db.Exec(ctx, "INSERT INTO guests (id, email, name, hashed_password, role, is_active) VALUES ($1, $2, $3, $4, $5, true) ON CONFLICT (email) DO NOTHING",
		guestID, email, "Test Guest", hashed, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM guests WHERE email = $1", email).Scan(&guestID)
	}

	return guestID
}

func CreateTestRoom(t *testing.T, db DBLike, number string, rateCents int64) uuid.UUID {
	t.Helper()

	roomID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO rooms (id, number, nightly_rate_cents, status) VALUES ($1, $2, $3, 'AVAILABLE') ON CONFLICT (number) DO NOTHING",
		roomID, number, rateCents)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM rooms WHERE number = $1", number).Scan(&roomID)
	}

	return roomID
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO rooms (id, number, nightly_rate_cents, status) VALUES
		    (gen_random_uuid(), '101', 10000, 'AVAILABLE'),
		    (gen_random_uuid(), '102', 20000, 'AVAILABLE')
		ON CONFLICT (number) DO NOTHING;
	`)
	return err
}

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, `
		TRUNCATE refunds, payments, bookings, room_blocked_dates,
		         revoked_tokens, rooms, guests
		RESTART IDENTITY CASCADE;
	`)
	if err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
