package booking

import (
	"time"

	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
)

type Booking struct {
	id        uuid.UUID
	guestID   uuid.UUID
	roomID    uuid.UUID
	stay      StayRange
	status    Status
	total     Money
	createdAt time.Time
	updatedAt time.Time
}

func NewBooking(guestID, roomID uuid.UUID, stay StayRange, total Money, now time.Time) *Booking {
	return &Booking{
		id:        uuid.New(),
		guestID:   guestID,
		roomID:    roomID,
		stay:      stay,
		status:    StatusPending,
		total:     total,
		createdAt: now,
		updatedAt: now,
	}
}

func ReconstructBooking(
	id, guestID, roomID uuid.UUID,
	stay StayRange,
	status Status,
	total Money,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		guestID:   guestID,
		roomID:    roomID,
		stay:      stay,
		status:    status,
		total:     total,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) GuestID() uuid.UUID   { return b.guestID }
func (b *Booking) RoomID() uuid.UUID    { return b.roomID }
func (b *Booking) Stay() StayRange      { return b.stay }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) Total() Money         { return b.total }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

func (b *Booking) IsOwnedBy(guestID uuid.UUID) bool {
	return b.guestID == guestID
}

// guardTransition distinguishes mutation of a terminal booking from a merely
// illegal transition so callers can react differently to each.
func (b *Booking) guardTransition(target Status) error {
	switch b.status {
	case StatusCompleted:
		return errs.ErrCompletedBookingUpdate
	case StatusCancelled:
		return errs.ErrCancelledBookingUpdate
	}
	if !b.status.CanTransitionTo(target) {
		return errs.ErrInvalidStatusTransition
	}
	return nil
}

func (b *Booking) Confirm(now time.Time) error {
	if err := b.guardTransition(StatusConfirmed); err != nil {
		return err
	}
	b.setStatus(StatusConfirmed, now)
	return nil
}

// CheckIn rejects arrival before the booked check-in date. Arrival on the
// right date but before the standard check-in hour is the caller's soft
// warning, surfaced via IsBeforeCheckInHour.
func (b *Booking) CheckIn(now time.Time) error {
	if err := b.guardTransition(StatusCheckedIn); err != nil {
		return err
	}
	if DateOf(now).Before(b.stay.CheckIn()) {
		return errs.ErrEarlyCheckIn
	}
	b.setStatus(StatusCheckedIn, now)
	return nil
}

// CheckOut requires the booking to be fully paid. Leaving after the booked
// check-out date or past the standard check-out hour is only a late-checkout
// warning, surfaced via IsLateCheckOut.
func (b *Booking) CheckOut(now time.Time, paid Money) error {
	if err := b.guardTransition(StatusCompleted); err != nil {
		return err
	}
	if paid.Cents() < b.total.Cents() {
		return errs.ErrIncompletePayment
	}
	if DateOf(now).Before(b.stay.CheckIn()) {
		return errs.ErrInvalidCheckOut
	}
	b.setStatus(StatusCompleted, now)
	return nil
}

func (b *Booking) Cancel(now time.Time) error {
	if err := b.guardTransition(StatusCancelled); err != nil {
		return err
	}
	b.setStatus(StatusCancelled, now)
	return nil
}

// MarkNoShow is only reachable from CONFIRMED once the check-out date has
// passed with no check-in recorded.
func (b *Booking) MarkNoShow(now time.Time) error {
	if err := b.guardTransition(StatusNoShow); err != nil {
		return err
	}
	if DateOf(now).Before(b.stay.CheckOut()) {
		return errs.ErrInvalidStatusTransition
	}
	b.setStatus(StatusNoShow, now)
	return nil
}

func (b *Booking) IsBeforeCheckInHour(now time.Time) bool {
	return DateOf(now).Equal(b.stay.CheckIn()) && now.UTC().Hour() < CheckInHour
}

func (b *Booking) IsLateCheckOut(now time.Time) bool {
	if DateOf(now).After(b.stay.CheckOut()) {
		return true
	}
	return DateOf(now).Equal(b.stay.CheckOut()) && now.UTC().Hour() >= CheckOutHour
}

func (b *Booking) setStatus(s Status, now time.Time) {
	b.status = s
	b.updatedAt = now
}
