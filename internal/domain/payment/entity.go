package payment

import (
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
)

type Payment struct {
	id           uuid.UUID
	bookingID    uuid.UUID
	amount       booking.Money
	method       Method
	status       Status
	paidAt       *time.Time
	retryCount   int
	gatewayRef   *string
	gatewayTxnID *string
	createdAt    time.Time
}

func NewPayment(bookingID uuid.UUID, amount booking.Money, method Method, now time.Time) *Payment {
	return &Payment{
		id:        uuid.New(),
		bookingID: bookingID,
		amount:    amount,
		method:    method,
		status:    StatusPending,
		createdAt: now,
	}
}

func ReconstructPayment(
	id, bookingID uuid.UUID,
	amount booking.Money,
	method Method,
	status Status,
	paidAt *time.Time,
	retryCount int,
	gatewayRef, gatewayTxnID *string,
	createdAt time.Time,
) *Payment {
	return &Payment{
		id:           id,
		bookingID:    bookingID,
		amount:       amount,
		method:       method,
		status:       status,
		paidAt:       paidAt,
		retryCount:   retryCount,
		gatewayRef:   gatewayRef,
		gatewayTxnID: gatewayTxnID,
		createdAt:    createdAt,
	}
}

func (p *Payment) ID() uuid.UUID         { return p.id }
func (p *Payment) BookingID() uuid.UUID  { return p.bookingID }
func (p *Payment) Amount() booking.Money { return p.amount }
func (p *Payment) Method() Method        { return p.method }
func (p *Payment) Status() Status        { return p.status }
func (p *Payment) PaidAt() *time.Time    { return p.paidAt }
func (p *Payment) RetryCount() int       { return p.retryCount }
func (p *Payment) GatewayRef() *string   { return p.gatewayRef }
func (p *Payment) GatewayTxnID() *string { return p.gatewayTxnID }
func (p *Payment) CreatedAt() time.Time  { return p.createdAt }

func (p *Payment) IsCompleted() bool {
	return p.status == StatusCompleted
}

// Accumulate folds a new request's amount onto a still-pending record instead
// of creating a duplicate. This mirrors the observed ledger behavior exactly;
// it only ever applies to non-terminal payments.
func (p *Payment) Accumulate(extra booking.Money) error {
	if p.status.IsTerminal() {
		return errs.ErrPaymentAlreadyProcessed
	}
	p.amount = p.amount.Add(extra)
	return nil
}

// AssignGatewayRef stores the outbound transaction reference so the async
// callback can be resolved with a keyed lookup rather than process state.
func (p *Payment) AssignGatewayRef(ref string) error {
	if p.status.IsTerminal() {
		return errs.ErrPaymentAlreadyProcessed
	}
	p.gatewayRef = &ref
	return nil
}

func (p *Payment) Complete(paidAt time.Time, gatewayTxnID *string) error {
	if p.status.IsTerminal() {
		return errs.ErrPaymentAlreadyProcessed
	}
	p.status = StatusCompleted
	p.paidAt = &paidAt
	p.gatewayTxnID = gatewayTxnID
	return nil
}

func (p *Payment) Fail() error {
	if p.status.IsTerminal() {
		return errs.ErrPaymentAlreadyProcessed
	}
	p.status = StatusFailed
	p.retryCount++
	return nil
}

// CompletedTotal sums the completed payments of a booking's ledger.
func CompletedTotal(payments []*Payment) booking.Money {
	total := booking.NewMoney(0)
	for _, p := range payments {
		if p.IsCompleted() {
			total = total.Add(p.Amount())
		}
	}
	return total
}

// LatestCompletedGateway returns the most recent completed gateway payment,
// or nil. Cash payments are never refundable through the gateway.
func LatestCompletedGateway(payments []*Payment) *Payment {
	var latest *Payment
	for _, p := range payments {
		if p.Method() != MethodGateway || !p.IsCompleted() {
			continue
		}
		if latest == nil || p.CreatedAt().After(latest.CreatedAt()) {
			latest = p
		}
	}
	return latest
}
