package repository

import (
	"context"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/room"
	"stayhub/internal/infra/db"

	"github.com/google/uuid"
)

type BlockedDateRepository struct{}

func NewBlockedDateRepository() *BlockedDateRepository {
	return &BlockedDateRepository{}
}

func (r *BlockedDateRepository) Insert(ctx context.Context, tx db.DBTX, bd *room.BlockedDate) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO room_blocked_dates (room_id, blocked_date, reason, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		bd.RoomID(), bd.Date(), bd.Reason(), bd.CreatedBy(), bd.CreatedAt())
	if err != nil {
		return wrapPgErr("failed to insert blocked date", err)
	}
	return nil
}

func (r *BlockedDateRepository) Delete(ctx context.Context, tx db.DBTX, roomID uuid.UUID, dates []time.Time) (int64, error) {
	normalized := make([]time.Time, len(dates))
	for i, d := range dates {
		normalized[i] = booking.DateOf(d)
	}
	tag, err := tx.Exec(ctx, `
		DELETE FROM room_blocked_dates WHERE room_id = $1 AND blocked_date = ANY($2)`,
		roomID, normalized)
	if err != nil {
		return 0, wrapPgErr("failed to delete blocked dates", err)
	}
	return tag.RowsAffected(), nil
}

// FindDatesInRange returns the blocked dates of a room inside the half-open
// range [from, to).
func (r *BlockedDateRepository) FindDatesInRange(ctx context.Context, tx db.DBTX, roomID uuid.UUID, from, to time.Time) ([]time.Time, error) {
	rows, err := tx.Query(ctx, `
		SELECT blocked_date FROM room_blocked_dates
		WHERE room_id = $1 AND blocked_date >= $2 AND blocked_date < $3
		ORDER BY blocked_date`,
		roomID, booking.DateOf(from), booking.DateOf(to))
	if err != nil {
		return nil, wrapPgErr("failed to find blocked dates", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, wrapPgErr("failed to scan blocked date", err)
		}
		dates = append(dates, booking.DateOf(d))
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to iterate blocked dates", err)
	}
	return dates, nil
}
