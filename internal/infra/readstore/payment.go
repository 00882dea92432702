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
	"github.com/jinzhu/copier"
)

type PaymentReadStore struct {
	db db.DBTX
}

func NewPaymentReadStore(dbtx db.DBTX) *PaymentReadStore {
	return &PaymentReadStore{db: dbtx}
}

func (s *PaymentReadStore) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*queries.PaymentView, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, booking_id, amount_cents, method, status, paid_at, retry_count, gateway_txn_id, created_at
		FROM payments
		WHERE booking_id = $1
		ORDER BY created_at`,
		bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payments", err)
	}
	defer rows.Close()

	var result []*queries.PaymentView
	for rows.Next() {
		var r paymentRow
		if err := rows.Scan(&r.ID, &r.BookingID, &r.AmountCents, &r.Method, &r.Status, &r.PaidAt, &r.RetryCount, &r.GatewayTxnID, &r.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan payment row", err)
		}
		var v queries.PaymentView
		if err := copier.Copy(&v, &r); err != nil {
			return nil, infra.WrapRepoErr("failed to map payment row", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate payment views", err)
	}
	return result, nil
}

type paymentRow struct {
	ID           uuid.UUID
	BookingID    uuid.UUID
	AmountCents  int64
	Method       string
	Status       string
	PaidAt       *time.Time
	RetryCount   int
	GatewayTxnID *string
	CreatedAt    time.Time
}

// Balance aggregates completed payments against the booking's total in one
// query so the owed figure is internally consistent.
func (s *PaymentReadStore) Balance(ctx context.Context, bookingID uuid.UUID) (*queries.BalanceView, error) {
	var v queries.BalanceView
	err := s.db.QueryRow(ctx, `
		SELECT b.id, b.total_cents,
		       COALESCE(SUM(p.amount_cents) FILTER (WHERE p.status = 'COMPLETED'), 0)
		FROM bookings b
		LEFT JOIN payments p ON p.booking_id = b.id
		WHERE b.id = $1
		GROUP BY b.id, b.total_cents`,
		bookingID).Scan(&v.BookingID, &v.TotalCents, &v.CompletedCents)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to compute booking balance", err)
	}
	v.OwedCents = v.TotalCents - v.CompletedCents
	return &v, nil
}
