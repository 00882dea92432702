package repository

import (
	"context"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"

	"github.com/google/uuid"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

const bookingColumns = `id, guest_id, room_id, check_in, check_out, status, total_cents, created_at, updated_at`

// LockOverlapping locks every non-cancelled booking of the room whose range
// overlaps the requested one and returns their ids. Running this inside the
// insert transaction makes the overlap check and the insert atomic; the
// table's exclusion constraint is the backstop.
func (r *BookingRepository) LockOverlapping(ctx context.Context, tx db.DBTX, roomID uuid.UUID, stay booking.StayRange) ([]uuid.UUID, error) {
	rows, err := tx.Query(ctx, `
		SELECT id FROM bookings
		WHERE room_id = $1
		  AND status <> $2
		  AND check_in < $3
		  AND check_out > $4
		FOR UPDATE`,
		roomID, booking.StatusCancelled, stay.CheckOut(), stay.CheckIn())
	if err != nil {
		return nil, wrapPgErr("failed to lock overlapping bookings", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, wrapPgErr("failed to scan overlapping booking id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to iterate overlapping bookings", err)
	}
	return ids, nil
}

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO bookings (id, guest_id, room_id, check_in, check_out, status, total_cents, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		b.ID(), b.GuestID(), b.RoomID(), b.Stay().CheckIn(), b.Stay().CheckOut(),
		b.Status(), b.Total().Cents(), b.CreatedAt(), b.UpdatedAt())
	if err != nil {
		return wrapPgErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	return r.scanOne(ctx, tx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
}

// FindByIDForUpdate takes a row lock so racing writers (payment callback vs
// cancellation) serialize on the booking before either checks its status.
func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	return r.scanOne(ctx, tx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id)
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	tag, err := tx.Exec(ctx, `
		UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1`,
		b.ID(), b.Status(), b.UpdatedAt())
	if err != nil {
		return wrapPgErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found on status update", nil, infra.KindNotFound)
	}
	return nil
}

// FindStaleNoShows locks CONFIRMED bookings whose check-out date has already
// passed, for the sweeper to mark NO_SHOW.
func (r *BookingRepository) FindStaleNoShows(ctx context.Context, tx db.DBTX, today time.Time, limit int32) ([]*booking.Booking, error) {
	rows, err := tx.Query(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE status = $1 AND check_out <= $2
		ORDER BY check_out
		LIMIT $3
		FOR UPDATE SKIP LOCKED`,
		booking.StatusConfirmed, booking.DateOf(today), limit)
	if err != nil {
		return nil, wrapPgErr("failed to find stale confirmed bookings", err)
	}
	defer rows.Close()
	return scanBookings(rows)
}

// DeleteExpiredPending removes abandoned PENDING bookings older than the
// cutoff, together with their never-completed payment attempts. Bookings
// holding a completed payment are left for the reconciler.
func (r *BookingRepository) DeleteExpiredPending(ctx context.Context, tx db.DBTX, cutoff time.Time) (int64, error) {
	_, err := tx.Exec(ctx, `
		DELETE FROM payments p
		USING bookings b
		WHERE p.booking_id = b.id
		  AND b.status = $1
		  AND b.created_at < $2
		  AND p.status <> $3
		  AND NOT EXISTS (
			SELECT 1 FROM payments cp
			WHERE cp.booking_id = b.id AND cp.status = $3
		  )`,
		booking.StatusPending, cutoff, "COMPLETED")
	if err != nil {
		return 0, wrapPgErr("failed to delete payments of expired bookings", err)
	}

	tag, err := tx.Exec(ctx, `
		DELETE FROM bookings b
		WHERE b.status = $1
		  AND b.created_at < $2
		  AND NOT EXISTS (
			SELECT 1 FROM payments p
			WHERE p.booking_id = b.id AND p.status = $3
		  )`,
		booking.StatusPending, cutoff, "COMPLETED")
	if err != nil {
		return 0, wrapPgErr("failed to delete expired pending bookings", err)
	}
	return tag.RowsAffected(), nil
}

func (r *BookingRepository) scanOne(ctx context.Context, tx db.DBTX, sql string, args ...any) (*booking.Booking, error) {
	row := tx.QueryRow(ctx, sql, args...)
	b, err := scanBooking(row.Scan)
	if err != nil {
		return nil, wrapPgErr("failed to find booking", err)
	}
	return b, nil
}

type scanFn func(dest ...any) error

func scanBooking(scan scanFn) (*booking.Booking, error) {
	var (
		id, guestID, roomID  uuid.UUID
		checkIn, checkOut    time.Time
		status               string
		totalCents           int64
		createdAt, updatedAt time.Time
	)
	if err := scan(&id, &guestID, &roomID, &checkIn, &checkOut, &status, &totalCents, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return booking.ReconstructBooking(
		id, guestID, roomID,
		booking.ReconstructStayRange(checkIn, checkOut),
		booking.Status(status),
		booking.NewMoney(totalCents),
		createdAt, updatedAt,
	), nil
}

func scanBookings(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*booking.Booking, error) {
	var result []*booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, wrapPgErr("failed to scan booking row", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to iterate booking rows", err)
	}
	return result, nil
}
