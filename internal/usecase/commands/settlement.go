package commands

import (
	"context"
	"log/slog"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/payment"
	"stayhub/internal/domain/room"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

// settleBooking advances booking status in reaction to a completed payment:
// the first success confirms a PENDING booking, and a fully paid CHECKED_IN
// stay is closed out. Failed payments never move the booking, and a booking
// cancelled while the payment was in flight is never resurrected - the money
// is recorded, the status stays put.
func settleBooking(ctx context.Context, tx shared.Tx, bookingID uuid.UUID, now time.Time) (*booking.Booking, error) {
	b, err := lockBooking(ctx, tx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.Status().IsTerminal() {
		slog.Warn("payment settled against terminal booking, status left untouched",
			"booking_id", bookingID, "status", b.Status().String())
		return b, nil
	}

	ledger, err := tx.Payments().FindByBookingForUpdate(ctx, tx.DB(), bookingID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	paid := payment.CompletedTotal(ledger)

	switch b.Status() {
	case booking.StatusPending:
		if err := b.Confirm(now); err != nil {
			return nil, err
		}
		if err := tx.Bookings().UpdateStatus(ctx, tx.DB(), b); err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	case booking.StatusCheckedIn:
		if booking.AmountOwed(b.Total(), paid).Cents() > 0 {
			return b, nil
		}
		if err := b.CheckOut(now, paid); err != nil {
			return nil, err
		}
		if err := tx.Bookings().UpdateStatus(ctx, tx.DB(), b); err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.Rooms().UpdateStatus(ctx, tx.DB(), b.RoomID(), room.StatusAvailable); err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	}
	return b, nil
}
