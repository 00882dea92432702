package queries

import (
	"context"

	"stayhub/internal/domain/guest"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
)

type PaymentReadStore interface {
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*PaymentView, error)
	Balance(ctx context.Context, bookingID uuid.UUID) (*BalanceView, error)
}

type PaymentQueries interface {
	History(ctx context.Context, bookingID uuid.UUID) ([]*PaymentView, error)
	Balance(ctx context.Context, bookingID, requesterID uuid.UUID, requesterRole guest.Role) (*BalanceView, error)
}

type paymentQueriesImpl struct {
	bookings  BookingReadStore
	readStore PaymentReadStore
}

func NewPaymentQueries(bookings BookingReadStore, readStore PaymentReadStore) PaymentQueries {
	return &paymentQueriesImpl{bookings: bookings, readStore: readStore}
}

func (q *paymentQueriesImpl) History(ctx context.Context, bookingID uuid.UUID) ([]*PaymentView, error) {
	views, err := q.readStore.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}

// Balance is guest-facing, so like the booking detail it is limited to the
// booking's owner; staff can look at any.
func (q *paymentQueriesImpl) Balance(ctx context.Context, bookingID, requesterID uuid.UUID, requesterRole guest.Role) (*BalanceView, error) {
	view, err := q.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrBookingNotFound)
	}
	if !requesterRole.IsStaff() && view.GuestID != requesterID {
		return nil, errs.ErrAccessDenied
	}

	balance, err := q.readStore.Balance(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return balance, nil
}
