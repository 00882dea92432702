package repository

import (
	"context"
	"errors"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/refund"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RefundRepository struct{}

func NewRefundRepository() *RefundRepository {
	return &RefundRepository{}
}

const refundColumns = `id, payment_id, booking_id, amount_cents, status, reason, created_at, processed_at`

func (r *RefundRepository) Create(ctx context.Context, tx db.DBTX, rf *refund.Refund) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO refunds (id, payment_id, booking_id, amount_cents, status, reason, created_at, processed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rf.ID(), rf.PaymentID(), rf.BookingID(), rf.Amount().Cents(),
		rf.Status(), rf.Reason(), rf.CreatedAt(), rf.ProcessedAt())
	if err != nil {
		return wrapPgErr("failed to create refund", err)
	}
	return nil
}

func (r *RefundRepository) Update(ctx context.Context, tx db.DBTX, rf *refund.Refund) error {
	tag, err := tx.Exec(ctx, `
		UPDATE refunds SET status = $2, processed_at = $3 WHERE id = $1`,
		rf.ID(), rf.Status(), rf.ProcessedAt())
	if err != nil {
		return wrapPgErr("failed to update refund", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("refund not found on update", nil, infra.KindNotFound)
	}
	return nil
}

// FindBlockingByBooking returns the refund that forbids a new request
// (PENDING, PROCESSING or COMPLETED), locked, or nil when none exists.
func (r *RefundRepository) FindBlockingByBooking(ctx context.Context, tx db.DBTX, bookingID uuid.UUID) (*refund.Refund, error) {
	row := tx.QueryRow(ctx, `
		SELECT `+refundColumns+` FROM refunds
		WHERE booking_id = $1 AND status = ANY($2)
		LIMIT 1
		FOR UPDATE`,
		bookingID, []string{
			string(refund.StatusPending),
			string(refund.StatusProcessing),
			string(refund.StatusCompleted),
		})
	rf, err := scanRefund(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapPgErr("failed to find blocking refund", err)
	}
	return rf, nil
}

func (r *RefundRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*refund.Refund, error) {
	row := tx.QueryRow(ctx, `SELECT `+refundColumns+` FROM refunds WHERE id = $1`, id)
	rf, err := scanRefund(row.Scan)
	if err != nil {
		return nil, wrapPgErr("failed to find refund", err)
	}
	return rf, nil
}

func scanRefund(scan scanFn) (*refund.Refund, error) {
	var (
		id, paymentID, bookingID uuid.UUID
		amountCents              int64
		status, reason           string
		createdAt                time.Time
		processedAt              *time.Time
	)
	if err := scan(&id, &paymentID, &bookingID, &amountCents, &status, &reason, &createdAt, &processedAt); err != nil {
		return nil, err
	}
	return refund.ReconstructRefund(
		id, paymentID, bookingID,
		booking.NewMoney(amountCents),
		refund.Status(status),
		reason, createdAt, processedAt,
	), nil
}
