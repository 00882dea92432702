package repository

import (
	"context"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/payment"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"

	"github.com/google/uuid"
)

type PaymentRepository struct{}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{}
}

const paymentColumns = `id, booking_id, amount_cents, method, status, paid_at, retry_count, gateway_ref, gateway_txn_id, created_at`

func (r *PaymentRepository) Create(ctx context.Context, tx db.DBTX, p *payment.Payment) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO payments (id, booking_id, amount_cents, method, status, paid_at, retry_count, gateway_ref, gateway_txn_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID(), p.BookingID(), p.Amount().Cents(), p.Method(), p.Status(),
		p.PaidAt(), p.RetryCount(), p.GatewayRef(), p.GatewayTxnID(), p.CreatedAt())
	if err != nil {
		return wrapPgErr("failed to create payment", err)
	}
	return nil
}

func (r *PaymentRepository) Update(ctx context.Context, tx db.DBTX, p *payment.Payment) error {
	tag, err := tx.Exec(ctx, `
		UPDATE payments
		SET amount_cents = $2, status = $3, paid_at = $4, retry_count = $5,
		    gateway_ref = $6, gateway_txn_id = $7
		WHERE id = $1`,
		p.ID(), p.Amount().Cents(), p.Status(), p.PaidAt(), p.RetryCount(),
		p.GatewayRef(), p.GatewayTxnID())
	if err != nil {
		return wrapPgErr("failed to update payment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("payment not found on update", nil, infra.KindNotFound)
	}
	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*payment.Payment, error) {
	row := tx.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
	p, err := scanPayment(row.Scan)
	if err != nil {
		return nil, wrapPgErr("failed to find payment", err)
	}
	return p, nil
}

func (r *PaymentRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*payment.Payment, error) {
	row := tx.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1 FOR UPDATE`, id)
	p, err := scanPayment(row.Scan)
	if err != nil {
		return nil, wrapPgErr("failed to find payment for update", err)
	}
	return p, nil
}

// FindByGatewayRef resolves an asynchronous callback to its payment via the
// durable reference stored at initiation time.
func (r *PaymentRepository) FindByGatewayRef(ctx context.Context, tx db.DBTX, ref string) (*payment.Payment, error) {
	row := tx.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE gateway_ref = $1 FOR UPDATE`, ref)
	p, err := scanPayment(row.Scan)
	if err != nil {
		return nil, wrapPgErr("failed to find payment by gateway ref", err)
	}
	return p, nil
}

// FindByBookingForUpdate locks the booking's whole ledger. The payment
// request path needs a stable view to decide between create, accumulate and
// pay-the-remainder.
func (r *PaymentRepository) FindByBookingForUpdate(ctx context.Context, tx db.DBTX, bookingID uuid.UUID) ([]*payment.Payment, error) {
	rows, err := tx.Query(ctx, `
		SELECT `+paymentColumns+` FROM payments
		WHERE booking_id = $1
		ORDER BY created_at
		FOR UPDATE`,
		bookingID)
	if err != nil {
		return nil, wrapPgErr("failed to find payments for booking", err)
	}
	defer rows.Close()

	var result []*payment.Payment
	for rows.Next() {
		p, err := scanPayment(rows.Scan)
		if err != nil {
			return nil, wrapPgErr("failed to scan payment row", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to iterate payment rows", err)
	}
	return result, nil
}

func scanPayment(scan scanFn) (*payment.Payment, error) {
	var (
		id, bookingID       uuid.UUID
		amountCents         int64
		method, status      string
		paidAt              *time.Time
		retryCount          int
		gatewayRef, txnID   *string
		createdAt           time.Time
	)
	if err := scan(&id, &bookingID, &amountCents, &method, &status, &paidAt, &retryCount, &gatewayRef, &txnID, &createdAt); err != nil {
		return nil, err
	}
	return payment.ReconstructPayment(
		id, bookingID,
		booking.NewMoney(amountCents),
		payment.Method(method),
		payment.Status(status),
		paidAt, retryCount, gatewayRef, txnID, createdAt,
	), nil
}
