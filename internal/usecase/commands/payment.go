package commands

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/payment"
	"stayhub/internal/infra"
	"stayhub/internal/infra/gateway"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

// PaymentGateway is the outbound boundary of the settlement engine: building
// signed initiation URLs, validating inbound callbacks, executing refunds.
type PaymentGateway interface {
	BuildPaymentURL(req gateway.PaymentRequest) (gateway.InitiationResult, error)
	ParseCallback(values url.Values) (gateway.CallbackData, error)
	ExecuteRefund(ctx context.Context, txnRef, gatewayTxnID string, amount booking.Money, reason string) error
}

type PaymentResult struct {
	PaymentID   uuid.UUID
	BookingID   uuid.UUID
	AmountCents int64
	Status      string
}

type GatewayInitResult struct {
	PaymentID   uuid.UUID
	BookingID   uuid.UUID
	AmountCents int64
	RedirectURL string
}

type CallbackResult struct {
	PaymentID     uuid.UUID
	BookingID     uuid.UUID
	PaymentStatus string
	BookingStatus string
}

type PaymentCommands interface {
	InitiateGatewayPayment(ctx context.Context, bookingID, guestID uuid.UUID, isAdvance bool, clientIP string) (*GatewayInitResult, error)
	HandleGatewayCallback(ctx context.Context, values url.Values) (*CallbackResult, error)
	RecordCashPayment(ctx context.Context, bookingID uuid.UUID, amountCents int64, staffConfirmed bool) (*PaymentResult, error)
}

type paymentCommandsImpl struct {
	uow     shared.UnitOfWork
	gateway PaymentGateway
	clock   clock.Clock
}

func NewPaymentCommands(uow shared.UnitOfWork, gw PaymentGateway, clk clock.Clock) PaymentCommands {
	return &paymentCommandsImpl{
		uow:     uow,
		gateway: gw,
		clock:   clk,
	}
}

// InitiateGatewayPayment computes the requested amount from the ledger,
// reuses a still-pending record by accumulating onto it, and returns the
// signed redirect URL. The transaction reference lands on the payment row so
// the callback can be resolved by a keyed lookup.
func (p *paymentCommandsImpl) InitiateGatewayPayment(ctx context.Context, bookingID, guestID uuid.UUID, isAdvance bool, clientIP string) (*GatewayInitResult, error) {
	now := p.clock.Now()

	var result *GatewayInitResult
	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := lockBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if !b.IsOwnedBy(guestID) {
			return errs.ErrAccessDenied
		}
		if err := guardPayable(b); err != nil {
			return err
		}

		ledger, err := tx.Payments().FindByBookingForUpdate(ctx, tx.DB(), bookingID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		owed := booking.AmountOwed(b.Total(), payment.CompletedTotal(ledger))
		if owed.Cents() <= 0 {
			return errs.ErrInvalidPaymentAmount
		}

		amount := resolveRequestAmount(b.Total(), ledger, isAdvance)
		record, reused, err := reuseOrCreate(ledger, bookingID, amount, payment.MethodGateway, now)
		if err != nil {
			return err
		}

		init, err := p.gateway.BuildPaymentURL(gateway.PaymentRequest{
			PaymentID: record.ID(),
			Amount:    record.Amount(),
			OrderInfo: "booking " + bookingID.String(),
			ClientIP:  clientIP,
		})
		if err != nil {
			return err
		}
		if err := record.AssignGatewayRef(init.TxnRef); err != nil {
			return err
		}

		if reused {
			err = tx.Payments().Update(ctx, tx.DB(), record)
		} else {
			err = tx.Payments().Create(ctx, tx.DB(), record)
		}
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		result = &GatewayInitResult{
			PaymentID:   record.ID(),
			BookingID:   bookingID,
			AmountCents: record.Amount().Cents(),
			RedirectURL: init.RedirectURL,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// HandleGatewayCallback settles a payment from the asynchronous gateway
// notification. The payment row is looked up by its stored transaction
// reference and locked, so duplicate callbacks serialize on the row and the
// second one fails with PaymentAlreadyProcessed.
func (p *paymentCommandsImpl) HandleGatewayCallback(ctx context.Context, values url.Values) (*CallbackResult, error) {
	data, err := p.gateway.ParseCallback(values)
	if err != nil {
		return nil, err
	}

	var result *CallbackResult
	err = p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		record, err := p.findByRef(ctx, tx, data.TxnRef)
		if err != nil {
			return err
		}
		if record.Status().IsTerminal() {
			return errs.ErrPaymentAlreadyProcessed
		}

		if !data.IsSuccess() {
			if err := record.Fail(); err != nil {
				return err
			}
			if err := tx.Payments().Update(ctx, tx.DB(), record); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			b, err := lockBooking(ctx, tx, record.BookingID())
			if err != nil {
				return err
			}
			result = &CallbackResult{
				PaymentID:     record.ID(),
				BookingID:     record.BookingID(),
				PaymentStatus: record.Status().String(),
				BookingStatus: b.Status().String(),
			}
			return nil
		}

		if data.Amount.Cents() != record.Amount().Cents() {
			slog.Warn("gateway callback amount differs from ledger amount",
				"payment_id", record.ID(),
				"ledger_cents", record.Amount().Cents(),
				"callback_cents", data.Amount.Cents())
		}

		txnNo := data.TransactionNo
		if err := record.Complete(data.PaidAt, &txnNo); err != nil {
			return err
		}
		if err := tx.Payments().Update(ctx, tx.DB(), record); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		b, err := settleBooking(ctx, tx, record.BookingID(), p.clock.Now())
		if err != nil {
			return err
		}

		result = &CallbackResult{
			PaymentID:     record.ID(),
			BookingID:     record.BookingID(),
			PaymentStatus: record.Status().String(),
			BookingStatus: b.Status().String(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RecordCashPayment records and immediately settles a staff-confirmed cash
// payment. The tendered amount may not exceed what is still owed.
func (p *paymentCommandsImpl) RecordCashPayment(ctx context.Context, bookingID uuid.UUID, amountCents int64, staffConfirmed bool) (*PaymentResult, error) {
	if !staffConfirmed {
		return nil, errs.ErrCashConfirmationRequired
	}
	now := p.clock.Now()

	var result *PaymentResult
	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := lockBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if err := guardPayable(b); err != nil {
			return err
		}

		ledger, err := tx.Payments().FindByBookingForUpdate(ctx, tx.DB(), bookingID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		owed := booking.AmountOwed(b.Total(), payment.CompletedTotal(ledger))
		if amountCents <= 0 || amountCents > owed.Cents() {
			return errs.ErrInvalidPaymentAmount
		}

		record, reused, err := reuseOrCreate(ledger, bookingID, booking.NewMoney(amountCents), payment.MethodCash, now)
		if err != nil {
			return err
		}
		if err := record.Complete(now, nil); err != nil {
			return err
		}

		if reused {
			err = tx.Payments().Update(ctx, tx.DB(), record)
		} else {
			err = tx.Payments().Create(ctx, tx.DB(), record)
		}
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if _, err := settleBooking(ctx, tx, bookingID, now); err != nil {
			return err
		}

		result = &PaymentResult{
			PaymentID:   record.ID(),
			BookingID:   bookingID,
			AmountCents: record.Amount().Cents(),
			Status:      record.Status().String(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// findByRef resolves a callback reference to a locked payment row, falling
// back to parsing the payment id prefix for rows written before the
// reference was stored.
func (p *paymentCommandsImpl) findByRef(ctx context.Context, tx shared.Tx, ref string) (*payment.Payment, error) {
	record, err := tx.Payments().FindByGatewayRef(ctx, tx.DB(), ref)
	if err == nil {
		return record, nil
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	paymentID, parseErr := gateway.PaymentIDFromRef(ref)
	if parseErr != nil {
		return nil, errs.Mark(parseErr, errs.ErrPaymentNotFound)
	}
	record, err = tx.Payments().FindByIDForUpdate(ctx, tx.DB(), paymentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrPaymentNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return record, nil
}

// guardPayable rejects payments against terminal bookings with the matching
// terminal-state error so callers can distinguish the cases.
func guardPayable(b *booking.Booking) error {
	switch b.Status() {
	case booking.StatusCancelled:
		return errs.ErrCancelledBookingUpdate
	case booking.StatusCompleted:
		return errs.ErrCompletedBookingUpdate
	default:
		return nil
	}
}

// resolveRequestAmount derives the gateway request amount from ledger state:
// once any payment has completed, a further request always means "pay the
// remainder"; otherwise the advance flag picks 30% or the full price.
func resolveRequestAmount(total booking.Money, ledger []*payment.Payment, isAdvance bool) booking.Money {
	for _, rec := range ledger {
		if rec.IsCompleted() {
			return booking.RemainingAmount(total)
		}
	}
	if isAdvance {
		return booking.AdvanceAmount(total)
	}
	return total
}

// reuseOrCreate applies the ledger's record-reuse rule: a still-pending prior
// payment of the same method absorbs the new request's amount and is reused
// rather than duplicated. Reuse never crosses methods: a cash tender must not
// complete a pending gateway record, or the cash money would look
// gateway-refundable. Failed records are never reused; a retry gets a fresh
// record.
func reuseOrCreate(ledger []*payment.Payment, bookingID uuid.UUID, amount booking.Money, method payment.Method, now time.Time) (*payment.Payment, bool, error) {
	var pending *payment.Payment
	for _, rec := range ledger {
		if rec.Status() != payment.StatusPending || rec.Method() != method {
			continue
		}
		if pending == nil || rec.CreatedAt().After(pending.CreatedAt()) {
			pending = rec
		}
	}
	if pending != nil {
		if err := pending.Accumulate(amount); err != nil {
			return nil, false, err
		}
		return pending, true, nil
	}
	return payment.NewPayment(bookingID, amount, method, now), false, nil
}
