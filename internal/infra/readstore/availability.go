package readstore

import (
	"context"
	"errors"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AvailabilityReadStore struct {
	db db.DBTX
}

func NewAvailabilityReadStore(dbtx db.DBTX) *AvailabilityReadStore {
	return &AvailabilityReadStore{db: dbtx}
}

func (s *AvailabilityReadStore) RoomExists(ctx context.Context, roomID uuid.UUID) (bool, error) {
	var one int
	err := s.db.QueryRow(ctx, `SELECT 1 FROM rooms WHERE id = $1`, roomID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, infra.WrapRepoErr("failed to check room existence", err)
	}
	return true, nil
}

// BookedRanges returns the stay ranges of non-cancelled bookings that
// overlap [from, to) for the room, using the half-open overlap predicate.
func (s *AvailabilityReadStore) BookedRanges(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]booking.StayRange, error) {
	rows, err := s.db.Query(ctx, `
		SELECT check_in, check_out FROM bookings
		WHERE room_id = $1
		  AND status <> $2
		  AND check_in < $3
		  AND check_out > $4
		ORDER BY check_in`,
		roomID, booking.StatusCancelled, booking.DateOf(to), booking.DateOf(from))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query booked ranges", err)
	}
	defer rows.Close()

	var ranges []booking.StayRange
	for rows.Next() {
		var checkIn, checkOut time.Time
		if err := rows.Scan(&checkIn, &checkOut); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booked range", err)
		}
		ranges = append(ranges, booking.ReconstructStayRange(checkIn, checkOut))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booked ranges", err)
	}
	return ranges, nil
}

// BlockedDates returns administratively withheld dates inside [from, to).
func (s *AvailabilityReadStore) BlockedDates(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]time.Time, error) {
	rows, err := s.db.Query(ctx, `
		SELECT blocked_date FROM room_blocked_dates
		WHERE room_id = $1 AND blocked_date >= $2 AND blocked_date < $3
		ORDER BY blocked_date`,
		roomID, booking.DateOf(from), booking.DateOf(to))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query blocked dates", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, infra.WrapRepoErr("failed to scan blocked date", err)
		}
		dates = append(dates, booking.DateOf(d))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate blocked dates", err)
	}
	return dates, nil
}
