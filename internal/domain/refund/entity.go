package refund

import (
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
)

type Refund struct {
	id          uuid.UUID
	paymentID   uuid.UUID
	bookingID   uuid.UUID
	amount      booking.Money
	status      Status
	reason      string
	createdAt   time.Time
	processedAt *time.Time
}

func NewRefund(paymentID, bookingID uuid.UUID, amount booking.Money, reason string, now time.Time) *Refund {
	return &Refund{
		id:        uuid.New(),
		paymentID: paymentID,
		bookingID: bookingID,
		amount:    amount,
		status:    StatusPending,
		reason:    reason,
		createdAt: now,
	}
}

func ReconstructRefund(
	id, paymentID, bookingID uuid.UUID,
	amount booking.Money,
	status Status,
	reason string,
	createdAt time.Time,
	processedAt *time.Time,
) *Refund {
	return &Refund{
		id:          id,
		paymentID:   paymentID,
		bookingID:   bookingID,
		amount:      amount,
		status:      status,
		reason:      reason,
		createdAt:   createdAt,
		processedAt: processedAt,
	}
}

func (r *Refund) ID() uuid.UUID           { return r.id }
func (r *Refund) PaymentID() uuid.UUID    { return r.paymentID }
func (r *Refund) BookingID() uuid.UUID    { return r.bookingID }
func (r *Refund) Amount() booking.Money   { return r.amount }
func (r *Refund) Status() Status          { return r.status }
func (r *Refund) Reason() string          { return r.reason }
func (r *Refund) CreatedAt() time.Time    { return r.createdAt }
func (r *Refund) ProcessedAt() *time.Time { return r.processedAt }

func (r *Refund) MarkProcessing() error {
	if r.status != StatusPending {
		return errs.ErrPaymentAlreadyProcessed
	}
	r.status = StatusProcessing
	return nil
}

func (r *Refund) Complete(now time.Time) error {
	if r.status != StatusPending && r.status != StatusProcessing {
		return errs.ErrPaymentAlreadyProcessed
	}
	r.status = StatusCompleted
	r.processedAt = &now
	return nil
}

func (r *Refund) Fail(now time.Time) error {
	if r.status != StatusPending && r.status != StatusProcessing {
		return errs.ErrPaymentAlreadyProcessed
	}
	r.status = StatusFailed
	r.processedAt = &now
	return nil
}

// Reject records a permanent gateway decline. Unlike Fail, a rejected
// refund is not worth retrying.
func (r *Refund) Reject(now time.Time) error {
	if r.status != StatusPending && r.status != StatusProcessing {
		return errs.ErrPaymentAlreadyProcessed
	}
	r.status = StatusRejected
	r.processedAt = &now
	return nil
}
