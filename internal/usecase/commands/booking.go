package commands

import (
	"context"
	"log/slog"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/guest"
	"stayhub/internal/domain/payment"
	"stayhub/internal/domain/room"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateBookingResult struct {
	BookingID      uuid.UUID
	Status         string
	TotalCents     int64
	AdvanceCents   int64
	RemainingCents int64
}

// TransitionResult carries the soft warning alongside the new status. Early
// check-in hour and late checkout never block, they only get reported.
type TransitionResult struct {
	BookingID uuid.UUID
	Status    string
	Warning   string
}

type BookingCommands interface {
	Create(ctx context.Context, guestID, roomID uuid.UUID, checkIn, checkOut time.Time) (*CreateBookingResult, error)
	CheckIn(ctx context.Context, bookingID uuid.UUID) (*TransitionResult, error)
	CheckOut(ctx context.Context, bookingID uuid.UUID) (*TransitionResult, error)
	Cancel(ctx context.Context, bookingID, requesterID uuid.UUID, requesterRole guest.Role) error
}

type bookingCommandsImpl struct {
	uow        shared.UnitOfWork
	calculator booking.PriceCalculator
	clock      clock.Clock
}

func NewBookingCommands(uow shared.UnitOfWork, calculator booking.PriceCalculator, clk clock.Clock) BookingCommands {
	return &bookingCommandsImpl{
		uow:        uow,
		calculator: calculator,
		clock:      clk,
	}
}

// Create runs the overlap check and the insert in one transaction, holding
// row locks on every overlap candidate so two racing requests for the same
// nights cannot both pass validation. The exclusion constraint on bookings
// is the backstop if they somehow do.
func (c *bookingCommandsImpl) Create(ctx context.Context, guestID, roomID uuid.UUID, checkIn, checkOut time.Time) (*CreateBookingResult, error) {
	now := c.clock.Now()
	stay, err := booking.NewStayRange(checkIn, checkOut, now)
	if err != nil {
		return nil, err
	}

	var result *CreateBookingResult
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Lock the room row so a concurrent block insert for the same night
		// cannot land between the availability check and our insert.
		rm, err := tx.Rooms().FindByIDForUpdate(ctx, tx.DB(), roomID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrRoomNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := ensureStayFree(ctx, tx, roomID, stay); err != nil {
			return err
		}

		total := c.calculator.TotalPrice(rm.NightlyRate(), stay)
		b := booking.NewBooking(guestID, roomID, stay, total, now)
		if err := tx.Bookings().Create(ctx, tx.DB(), b); err != nil {
			if infra.IsKind(err, infra.KindConflict) || infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.ErrRoomNotAvailable
			}
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return errs.ErrGuestNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		result = &CreateBookingResult{
			BookingID:      b.ID(),
			Status:         b.Status().String(),
			TotalCents:     total.Cents(),
			AdvanceCents:   booking.AdvanceAmount(total).Cents(),
			RemainingCents: booking.RemainingAmount(total).Cents(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *bookingCommandsImpl) CheckIn(ctx context.Context, bookingID uuid.UUID) (*TransitionResult, error) {
	now := c.clock.Now()

	var result *TransitionResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := lockBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		if err := b.CheckIn(now); err != nil {
			return err
		}

		warning := ""
		if b.IsBeforeCheckInHour(now) {
			warning = "check-in before standard check-in hour"
			slog.Warn("early check-in before standard hour",
				"booking_id", bookingID, "hour", now.UTC().Hour())
		}

		if err := tx.Bookings().UpdateStatus(ctx, tx.DB(), b); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.Rooms().UpdateStatus(ctx, tx.DB(), b.RoomID(), room.StatusOccupied); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		result = &TransitionResult{BookingID: bookingID, Status: b.Status().String(), Warning: warning}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *bookingCommandsImpl) CheckOut(ctx context.Context, bookingID uuid.UUID) (*TransitionResult, error) {
	now := c.clock.Now()

	var result *TransitionResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := lockBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		ledger, err := tx.Payments().FindByBookingForUpdate(ctx, tx.DB(), bookingID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		paid := payment.CompletedTotal(ledger)

		if err := b.CheckOut(now, paid); err != nil {
			return err
		}

		warning := ""
		if b.IsLateCheckOut(now) {
			warning = "late checkout"
			slog.Warn("late checkout",
				"booking_id", bookingID, "check_out", b.Stay().CheckOut())
		}

		if err := tx.Bookings().UpdateStatus(ctx, tx.DB(), b); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.Rooms().UpdateStatus(ctx, tx.DB(), b.RoomID(), room.StatusAvailable); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		result = &TransitionResult{BookingID: bookingID, Status: b.Status().String(), Warning: warning}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Cancel releases the room's advisory status in the same transaction. The
// overlap check already excludes cancelled bookings, so the flip is a
// convenience signal, not the source of truth.
func (c *bookingCommandsImpl) Cancel(ctx context.Context, bookingID, requesterID uuid.UUID, requesterRole guest.Role) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := lockBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if !requesterRole.IsStaff() && !b.IsOwnedBy(requesterID) {
			return errs.ErrAccessDenied
		}

		if err := b.Cancel(now); err != nil {
			return err
		}

		if err := tx.Bookings().UpdateStatus(ctx, tx.DB(), b); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.Rooms().UpdateStatus(ctx, tx.DB(), b.RoomID(), room.StatusAvailable); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func lockBooking(ctx context.Context, tx shared.Tx, bookingID uuid.UUID) (*booking.Booking, error) {
	b, err := tx.Bookings().FindByIDForUpdate(ctx, tx.DB(), bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return b, nil
}

// ensureStayFree locks overlap candidates and verifies no booked range and no
// blocked date intersects the requested stay.
func ensureStayFree(ctx context.Context, tx shared.Tx, roomID uuid.UUID, stay booking.StayRange) error {
	conflicting, err := tx.Bookings().LockOverlapping(ctx, tx.DB(), roomID, stay)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if len(conflicting) > 0 {
		return errs.ErrRoomNotAvailable
	}

	blocked, err := tx.BlockedDates().FindDatesInRange(ctx, tx.DB(), roomID, stay.CheckIn(), stay.CheckOut())
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if len(blocked) > 0 {
		return errs.ErrRoomNotAvailable
	}
	return nil
}
