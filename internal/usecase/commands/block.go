package commands

import (
	"context"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/room"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

type BlockCommands interface {
	BlockDates(ctx context.Context, roomID uuid.UUID, dates []time.Time, reason string, createdBy uuid.UUID) (int, error)
	UnblockDates(ctx context.Context, roomID uuid.UUID, dates []time.Time) (int64, error)
}

type blockCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewBlockCommands(uow shared.UnitOfWork, clk clock.Clock) BlockCommands {
	return &blockCommandsImpl{uow: uow, clock: clk}
}

// BlockDates withholds dates for maintenance. A date a guest already holds
// cannot be blocked: each date runs the same overlap check bookings do, under
// the same locks. Past dates are rejected outright; dates already blocked are
// skipped. Returns the number of newly blocked dates.
func (c *blockCommandsImpl) BlockDates(ctx context.Context, roomID uuid.UUID, dates []time.Time, reason string, createdBy uuid.UUID) (int, error) {
	if len(dates) == 0 {
		return 0, errs.ErrInvalidDateRange
	}
	now := c.clock.Now()
	today := booking.DateOf(now)

	normalized := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		date := booking.DateOf(d)
		if date.Before(today) {
			return 0, errs.ErrInvalidDateRange
		}
		normalized = append(normalized, date)
	}

	inserted := 0
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		inserted = 0
		// New bookings lock the same room row, so block-vs-book races
		// serialize here instead of both committing under ReadCommitted.
		if _, err := tx.Rooms().FindByIDForUpdate(ctx, tx.DB(), roomID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrRoomNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		// A failed insert aborts the whole transaction, so already-blocked
		// dates are skipped up front instead of being caught on conflict.
		first, last := normalized[0], normalized[0]
		for _, date := range normalized[1:] {
			if date.Before(first) {
				first = date
			}
			if date.After(last) {
				last = date
			}
		}
		existing, err := tx.BlockedDates().FindDatesInRange(ctx, tx.DB(), roomID, first, last.AddDate(0, 0, 1))
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		alreadyBlocked := make(map[time.Time]struct{}, len(existing))
		for _, date := range existing {
			alreadyBlocked[date] = struct{}{}
		}

		for _, date := range normalized {
			if _, ok := alreadyBlocked[date]; ok {
				continue
			}
			night := booking.ReconstructStayRange(date, date.AddDate(0, 0, 1))
			conflicting, err := tx.Bookings().LockOverlapping(ctx, tx.DB(), roomID, night)
			if err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			if len(conflicting) > 0 {
				return errs.ErrRoomNotAvailable
			}

			bd := room.NewBlockedDate(roomID, date, reason, createdBy, now)
			if err := tx.BlockedDates().Insert(ctx, tx.DB(), bd); err != nil {
				if infra.IsKind(err, infra.KindDuplicateKey) {
					return errs.ErrRoomNotAvailable
				}
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			alreadyBlocked[date] = struct{}{}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (c *blockCommandsImpl) UnblockDates(ctx context.Context, roomID uuid.UUID, dates []time.Time) (int64, error) {
	if len(dates) == 0 {
		return 0, errs.ErrInvalidDateRange
	}
	normalized := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		normalized = append(normalized, booking.DateOf(d))
	}

	var removed int64
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Rooms().FindByID(ctx, tx.DB(), roomID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrRoomNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		n, err := tx.BlockedDates().Delete(ctx, tx.DB(), roomID, normalized)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		removed = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
