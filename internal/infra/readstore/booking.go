package readstore

import (
	"context"
	"errors"
	"time"

	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const bookingViewSelect = `
	SELECT b.id, b.guest_id, g.email, b.room_id, r.number,
	       b.check_in, b.check_out, b.status, b.total_cents,
	       b.created_at, b.updated_at
	FROM bookings b
	JOIN guests g ON g.id = b.guest_id
	JOIN rooms r ON r.id = b.room_id`

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := s.db.QueryRow(ctx, bookingViewSelect+` WHERE b.id = $1`, id)

	view, err := scanBookingView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking view", err)
	}
	return view, nil
}

func (s *BookingReadStore) ListByGuest(ctx context.Context, guestID uuid.UUID) ([]*queries.BookingListItem, error) {
	rows, err := s.db.Query(ctx, `
		SELECT b.id, b.room_id, r.number, b.check_in, b.check_out, b.status, b.total_cents, b.created_at
		FROM bookings b
		JOIN rooms r ON r.id = b.room_id
		WHERE b.guest_id = $1
		ORDER BY b.created_at DESC`,
		guestID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by guest", err)
	}
	defer rows.Close()
	return scanBookingListItems(rows)
}

func (s *BookingReadStore) ListByStatus(ctx context.Context, status string) ([]*queries.BookingListItem, error) {
	rows, err := s.db.Query(ctx, `
		SELECT b.id, b.room_id, r.number, b.check_in, b.check_out, b.status, b.total_cents, b.created_at
		FROM bookings b
		JOIN rooms r ON r.id = b.room_id
		WHERE b.status = $1
		ORDER BY b.created_at DESC`,
		status)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by status", err)
	}
	defer rows.Close()
	return scanBookingListItems(rows)
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var v queries.BookingView
	err := row.Scan(
		&v.ID, &v.GuestID, &v.GuestEmail, &v.RoomID, &v.RoomNumber,
		&v.CheckIn, &v.CheckOut, &v.Status, &v.TotalCents,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func scanBookingListItems(rows pgx.Rows) ([]*queries.BookingListItem, error) {
	var result []*queries.BookingListItem
	for rows.Next() {
		var (
			item     queries.BookingListItem
			checkIn  time.Time
			checkOut time.Time
		)
		if err := rows.Scan(&item.ID, &item.RoomID, &item.RoomNumber, &checkIn, &checkOut, &item.Status, &item.TotalCents, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list item", err)
		}
		item.CheckIn = checkIn
		item.CheckOut = checkOut
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking list items", err)
	}
	return result, nil
}
