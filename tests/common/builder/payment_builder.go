//go:build unit || e2e

package builder

import (
	"time"

	dombooking "stayhub/internal/domain/booking"
	dompayment "stayhub/internal/domain/payment"

	"github.com/google/uuid"
)

type PaymentBuilder struct {
	BookingID    uuid.UUID
	AmountCents  int64
	Method       dompayment.Method
	Status       dompayment.Status
	PaidAt       *time.Time
	GatewayRef   *string
	GatewayTxnID *string
	CreatedAt    time.Time
}

func NewPaymentBuilder() *PaymentBuilder {
	return &PaymentBuilder{
		BookingID:   uuid.New(),
		AmountCents: 15000,
		Method:      dompayment.MethodGateway,
		Status:      dompayment.StatusPending,
		CreatedAt:   time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (p *PaymentBuilder) With(mutate func(*PaymentBuilder)) *PaymentBuilder {
	mutate(p)
	return p
}

func (p *PaymentBuilder) Completed(paidAt time.Time) *PaymentBuilder {
	p.Status = dompayment.StatusCompleted
	p.PaidAt = &paidAt
	return p
}

// BuildDomain reconstructs the record as the repository would, so any status
// can be produced directly.
func (p *PaymentBuilder) BuildDomain() *dompayment.Payment {
	return dompayment.ReconstructPayment(
		uuid.New(),
		p.BookingID,
		dombooking.NewMoney(p.AmountCents),
		p.Method,
		p.Status,
		p.PaidAt,
		0,
		p.GatewayRef,
		p.GatewayTxnID,
		p.CreatedAt,
	)
}
