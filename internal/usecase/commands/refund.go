package commands

import (
	"context"
	"log/slog"

	"stayhub/internal/domain/payment"
	"stayhub/internal/domain/refund"
	"stayhub/internal/infra"
	"stayhub/internal/infra/gateway"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

type RefundResult struct {
	RefundID    uuid.UUID
	PaymentID   uuid.UUID
	BookingID   uuid.UUID
	AmountCents int64
	Status      string
}

type RefundCommands interface {
	Request(ctx context.Context, bookingID, requesterID uuid.UUID, reason string) (*RefundResult, error)
}

type refundCommandsImpl struct {
	uow     shared.UnitOfWork
	gateway PaymentGateway
	policy  *refund.Policy
	clock   clock.Clock
}

func NewRefundCommands(uow shared.UnitOfWork, gw PaymentGateway, policy *refund.Policy, clk clock.Clock) RefundCommands {
	return &refundCommandsImpl{
		uow:     uow,
		gateway: gw,
		policy:  policy,
		clock:   clk,
	}
}

// Request evaluates eligibility and creates the refund inside one
// transaction, then executes the gateway refund outside it and persists the
// outcome in a second transaction. The unique refund-per-payment index plus
// the blocking-refund lookup under lock make the create race-safe; the
// gateway call is kept out of the transaction so a slow gateway does not pin
// row locks.
func (r *refundCommandsImpl) Request(ctx context.Context, bookingID, requesterID uuid.UUID, reason string) (*RefundResult, error) {
	now := r.clock.Now()

	var (
		created        *refund.Refund
		refundedRecord *payment.Payment
	)
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := lockBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if !b.IsOwnedBy(requesterID) {
			return errs.ErrAccessDenied
		}

		blocking, err := tx.Refunds().FindBlockingByBooking(ctx, tx.DB(), bookingID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if blocking != nil {
			return errs.ErrRefundAlreadyExists
		}

		ledger, err := tx.Payments().FindByBookingForUpdate(ctx, tx.DB(), bookingID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		eligibility := r.policy.Evaluate(b.Stay(), ledger, now)
		if !eligibility.Eligible {
			return errs.ErrRefundNotEligible
		}

		rf := refund.NewRefund(eligibility.Payment.ID(), bookingID, eligibility.Amount, reason, now)
		// The gateway call starts right after commit, so the row is
		// persisted already in PROCESSING. A crash between the two
		// transactions then leaves a state that says so.
		if err := rf.MarkProcessing(); err != nil {
			return err
		}
		if err := tx.Refunds().Create(ctx, tx.DB(), rf); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.ErrRefundAlreadyExists
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		created = rf
		refundedRecord = eligibility.Payment
		return nil
	})
	if err != nil {
		return nil, err
	}

	status, execErr := r.execute(ctx, created, refundedRecord, reason)
	if execErr != nil {
		slog.Warn("gateway refund execution failed",
			"refund_id", created.ID(), "error", execErr.Error())
	}

	return &RefundResult{
		RefundID:    created.ID(),
		PaymentID:   created.PaymentID(),
		BookingID:   bookingID,
		AmountCents: created.Amount().Cents(),
		Status:      status,
	}, nil
}

// execute moves the money through the gateway and records the terminal
// refund status: COMPLETED on success, REJECTED on a gateway decline, FAILED
// on anything transient. A gateway failure does not fail the request: the
// refund row itself is the audit trail for retries.
func (r *refundCommandsImpl) execute(ctx context.Context, rf *refund.Refund, refunded *payment.Payment, reason string) (string, error) {
	txnRef := ""
	if ref := refunded.GatewayRef(); ref != nil {
		txnRef = *ref
	}
	gatewayTxnID := ""
	if id := refunded.GatewayTxnID(); id != nil {
		gatewayTxnID = *id
	}

	execErr := r.gateway.ExecuteRefund(ctx, txnRef, gatewayTxnID, rf.Amount(), reason)

	now := r.clock.Now()
	persistErr := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		stored, err := tx.Refunds().FindByID(ctx, tx.DB(), rf.ID())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		switch {
		case execErr == nil:
			if err := stored.Complete(now); err != nil {
				return err
			}
		case errs.Is(execErr, gateway.ErrRefundRejected):
			if err := stored.Reject(now); err != nil {
				return err
			}
		default:
			if err := stored.Fail(now); err != nil {
				return err
			}
		}
		rf = stored
		if err := tx.Refunds().Update(ctx, tx.DB(), stored); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if persistErr != nil {
		return rf.Status().String(), persistErr
	}
	if execErr != nil {
		return rf.Status().String(), execErr
	}
	return rf.Status().String(), nil
}
