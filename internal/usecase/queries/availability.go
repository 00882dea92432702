package queries

import (
	"context"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
)

type AvailabilityReadStore interface {
	RoomExists(ctx context.Context, roomID uuid.UUID) (bool, error)
	BookedRanges(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]booking.StayRange, error)
	BlockedDates(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]time.Time, error)
}

type AvailabilityQueries interface {
	IsAvailable(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (bool, error)
	AvailableDates(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]time.Time, error)
	Calendar(ctx context.Context, roomID uuid.UUID, from, to time.Time) (*RoomCalendar, error)
}

type availabilityQueriesImpl struct {
	readStore AvailabilityReadStore
}

func NewAvailabilityQueries(readStore AvailabilityReadStore) AvailabilityQueries {
	return &availabilityQueriesImpl{readStore: readStore}
}

// IsAvailable reports whether every night of [checkIn, checkOut) is free of
// non-cancelled bookings and blocked dates. Only the ordering of the range
// is validated: whether a past stay could still be booked is the booking
// command's concern, not the query's.
func (q *availabilityQueriesImpl) IsAvailable(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (bool, error) {
	first := booking.DateOf(checkIn)
	last := booking.DateOf(checkOut)
	if !last.After(first) {
		return false, errs.ErrInvalidDateRange
	}
	stay := booking.ReconstructStayRange(first, last)
	if err := q.ensureRoom(ctx, roomID); err != nil {
		return false, err
	}

	ranges, err := q.readStore.BookedRanges(ctx, roomID, stay.CheckIn(), stay.CheckOut())
	if err != nil {
		return false, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if len(ranges) > 0 {
		return false, nil
	}

	blocked, err := q.readStore.BlockedDates(ctx, roomID, stay.CheckIn(), stay.CheckOut())
	if err != nil {
		return false, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return len(blocked) == 0, nil
}

// AvailableDates returns the nights in [from, to] (inclusive of both
// endpoints) on which a stay could start, i.e. dates neither booked nor
// blocked.
func (q *availabilityQueriesImpl) AvailableDates(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]time.Time, error) {
	first := booking.DateOf(from)
	last := booking.DateOf(to)
	if last.Before(first) {
		return nil, errs.ErrInvalidDateRange
	}
	if err := q.ensureRoom(ctx, roomID); err != nil {
		return nil, err
	}

	// Half-open window that covers the inclusive last date.
	end := last.AddDate(0, 0, 1)
	unavailable, err := q.unavailableSet(ctx, roomID, first, end)
	if err != nil {
		return nil, err
	}

	available := make([]time.Time, 0)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if !unavailable[d] {
			available = append(available, d)
		}
	}
	return available, nil
}

// Calendar returns booked and blocked dates of [from, to] separately so a
// caller can distinguish guest demand from administrative withholding.
func (q *availabilityQueriesImpl) Calendar(ctx context.Context, roomID uuid.UUID, from, to time.Time) (*RoomCalendar, error) {
	first := booking.DateOf(from)
	last := booking.DateOf(to)
	if last.Before(first) {
		return nil, errs.ErrInvalidDateRange
	}
	if err := q.ensureRoom(ctx, roomID); err != nil {
		return nil, err
	}

	end := last.AddDate(0, 0, 1)
	ranges, err := q.readStore.BookedRanges(ctx, roomID, first, end)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	blocked, err := q.readStore.BlockedDates(ctx, roomID, first, end)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	booked := make([]time.Time, 0)
	seen := make(map[time.Time]struct{})
	for _, r := range ranges {
		for d := booking.DateOf(r.CheckIn()); d.Before(r.CheckOut()); d = d.AddDate(0, 0, 1) {
			if d.Before(first) || d.After(last) {
				continue
			}
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			booked = append(booked, d)
		}
	}

	return &RoomCalendar{
		RoomID:       roomID,
		From:         first,
		To:           last,
		BookedDates:  booked,
		BlockedDates: blocked,
	}, nil
}

func (q *availabilityQueriesImpl) ensureRoom(ctx context.Context, roomID uuid.UUID) error {
	exists, err := q.readStore.RoomExists(ctx, roomID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !exists {
		return errs.ErrRoomNotFound
	}
	return nil
}

func (q *availabilityQueriesImpl) unavailableSet(ctx context.Context, roomID uuid.UUID, from, to time.Time) (map[time.Time]bool, error) {
	ranges, err := q.readStore.BookedRanges(ctx, roomID, from, to)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	blocked, err := q.readStore.BlockedDates(ctx, roomID, from, to)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	set := make(map[time.Time]bool)
	for _, r := range ranges {
		for d := booking.DateOf(r.CheckIn()); d.Before(r.CheckOut()); d = d.AddDate(0, 0, 1) {
			set[d] = true
		}
	}
	for _, d := range blocked {
		set[d] = true
	}
	return set, nil
}
