package readstore

import (
	"context"

	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type RefundReadStore struct {
	db db.DBTX
}

func NewRefundReadStore(dbtx db.DBTX) *RefundReadStore {
	return &RefundReadStore{db: dbtx}
}

func (s *RefundReadStore) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*queries.RefundView, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, payment_id, booking_id, amount_cents, status, reason, created_at, processed_at
		FROM refunds
		WHERE booking_id = $1
		ORDER BY created_at DESC`,
		bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list refunds", err)
	}
	defer rows.Close()

	var result []*queries.RefundView
	for rows.Next() {
		var v queries.RefundView
		if err := rows.Scan(&v.ID, &v.PaymentID, &v.BookingID, &v.AmountCents, &v.Status, &v.Reason, &v.CreatedAt, &v.ProcessedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan refund view", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate refund views", err)
	}
	return result, nil
}
