package queries

import (
	"context"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/guest"
	"stayhub/internal/domain/payment"
	"stayhub/internal/domain/refund"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
)

type RefundReadStore interface {
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*RefundView, error)
}

type RefundQueries interface {
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*RefundView, error)
	CheckEligibility(ctx context.Context, bookingID, requesterID uuid.UUID, requesterRole guest.Role) (*RefundEligibilityView, error)
}

type refundQueriesImpl struct {
	bookings  BookingReadStore
	payments  PaymentReadStore
	refunds   RefundReadStore
	policy    *refund.Policy
	clock     clock.Clock
}

func NewRefundQueries(bookings BookingReadStore, payments PaymentReadStore, refunds RefundReadStore, policy *refund.Policy, clk clock.Clock) RefundQueries {
	return &refundQueriesImpl{
		bookings: bookings,
		payments: payments,
		refunds:  refunds,
		policy:   policy,
		clock:    clk,
	}
}

func (q *refundQueriesImpl) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*RefundView, error) {
	views, err := q.refunds.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}

// CheckEligibility is a read-only preview of what a refund request would
// decide. Refunds are self-service, so guests only see their own bookings;
// staff can look at any.
func (q *refundQueriesImpl) CheckEligibility(ctx context.Context, bookingID, requesterID uuid.UUID, requesterRole guest.Role) (*RefundEligibilityView, error) {
	view, err := q.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrBookingNotFound)
	}
	if !requesterRole.IsStaff() && view.GuestID != requesterID {
		return nil, errs.ErrAccessDenied
	}

	existing, err := q.refunds.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	for _, r := range existing {
		if refund.Status(r.Status).BlocksNewRequest() {
			return &RefundEligibilityView{
				BookingID: bookingID,
				Eligible:  false,
				Reason:    "a refund already exists for this booking",
			}, nil
		}
	}

	paymentViews, err := q.payments.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	stay := booking.ReconstructStayRange(view.CheckIn, view.CheckOut)
	eligibility := q.policy.Evaluate(stay, paymentEntities(paymentViews), q.clock.Now())

	result := &RefundEligibilityView{
		BookingID:         bookingID,
		Eligible:          eligibility.Eligible,
		AmountCents:       eligibility.Amount.Cents(),
		HoursUntilCheckIn: eligibility.HoursUntilCheckIn,
	}
	if !eligibility.Eligible {
		if eligibility.Payment == nil {
			result.Reason = "no completed gateway payment to refund"
		} else {
			result.Reason = "cancellation is within 48 hours of check-in"
		}
	}
	return result, nil
}

func paymentEntities(views []*PaymentView) []*payment.Payment {
	entities := make([]*payment.Payment, 0, len(views))
	for _, v := range views {
		entities = append(entities, payment.ReconstructPayment(
			v.ID, v.BookingID,
			booking.NewMoney(v.AmountCents),
			payment.Method(v.Method),
			payment.Status(v.Status),
			v.PaidAt,
			v.RetryCount,
			nil, v.GatewayTxnID,
			v.CreatedAt,
		))
	}
	return entities
}
