package repository

import (
	"context"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/room"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"

	"github.com/google/uuid"
)

type RoomRepository struct{}

func NewRoomRepository() *RoomRepository {
	return &RoomRepository{}
}

const roomColumns = `id, number, nightly_rate_cents, status, created_at`

func (r *RoomRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*room.Room, error) {
	return r.scanOne(ctx, tx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id)
}

func (r *RoomRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*room.Room, error) {
	return r.scanOne(ctx, tx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1 FOR UPDATE`, id)
}

// UpdateStatus flips the advisory room flag. The overlap check stays the
// source of truth for availability.
func (r *RoomRepository) UpdateStatus(ctx context.Context, tx db.DBTX, roomID uuid.UUID, status room.Status) error {
	tag, err := tx.Exec(ctx, `UPDATE rooms SET status = $2 WHERE id = $1`, roomID, status)
	if err != nil {
		return wrapPgErr("failed to update room status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found on status update", nil, infra.KindNotFound)
	}
	return nil
}

func (r *RoomRepository) scanOne(ctx context.Context, tx db.DBTX, sql string, args ...any) (*room.Room, error) {
	var (
		id          uuid.UUID
		number      string
		rateCents   int64
		status      string
		createdAt   time.Time
	)
	if err := tx.QueryRow(ctx, sql, args...).Scan(&id, &number, &rateCents, &status, &createdAt); err != nil {
		return nil, wrapPgErr("failed to find room", err)
	}
	return room.ReconstructRoom(id, number, booking.NewMoney(rateCents), room.Status(status), createdAt), nil
}
