package jobs

import (
	"context"
	"log/slog"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/config"
	"stayhub/internal/usecase/shared"
)

const noShowBatchSize = 100

// Sweeper is the periodic cleanup pass: abandoned PENDING bookings are
// deleted after their TTL, stale CONFIRMED bookings past check-out are
// marked NO_SHOW, and expired revoked tokens are purged. Every sweep runs
// under the same transactional discipline as interactive traffic, so a
// booking that is concurrently being paid for cannot be swept out from
// under the payment.
type Sweeper struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	cfg   config.SweeperConfig

	done chan struct{}
}

func NewSweeper(uow shared.UnitOfWork, clk clock.Clock, cfg config.SweeperConfig) *Sweeper {
	return &Sweeper{
		uow:   uow,
		clock: clk,
		cfg:   cfg,
		done:  make(chan struct{}),
	}
}

func (s *Sweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Sweeper) Stop() {
	close(s.done)
}

func (s *Sweeper) run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs a single pass. Exported so tests and operational tooling can
// trigger it without waiting on the ticker.
func (s *Sweeper) Sweep(ctx context.Context) {
	now := s.clock.Now()

	if err := s.expirePendingBookings(ctx, now); err != nil {
		slog.Error("failed to expire pending bookings", "error", err.Error())
	}
	if err := s.markNoShows(ctx, now); err != nil {
		slog.Error("failed to mark no-shows", "error", err.Error())
	}
	if err := s.purgeRevokedTokens(ctx, now); err != nil {
		slog.Error("failed to purge revoked tokens", "error", err.Error())
	}
}

func (s *Sweeper) expirePendingBookings(ctx context.Context, now time.Time) error {
	cutoff := now.Add(-s.cfg.PendingBookingTTL)

	return s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		deleted, err := tx.Bookings().DeleteExpiredPending(ctx, tx.DB(), cutoff)
		if err != nil {
			return err
		}
		if deleted > 0 {
			slog.Info("expired abandoned pending bookings", "count", deleted, "cutoff", cutoff)
		}
		return nil
	})
}

// markNoShows closes out CONFIRMED bookings whose check-out date has passed
// without a check-in. SKIP LOCKED on the candidate query keeps the sweep from
// stalling behind interactive transactions.
func (s *Sweeper) markNoShows(ctx context.Context, now time.Time) error {
	return s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		stale, err := tx.Bookings().FindStaleNoShows(ctx, tx.DB(), booking.DateOf(now), noShowBatchSize)
		if err != nil {
			return err
		}

		for _, b := range stale {
			if err := b.MarkNoShow(now); err != nil {
				slog.Warn("skipping no-show candidate", "booking_id", b.ID(), "error", err.Error())
				continue
			}
			if err := tx.Bookings().UpdateStatus(ctx, tx.DB(), b); err != nil {
				return err
			}
			slog.Info("marked booking as no-show", "booking_id", b.ID(), "check_out", b.Stay().CheckOut())
		}
		return nil
	})
}

func (s *Sweeper) purgeRevokedTokens(ctx context.Context, now time.Time) error {
	return s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		purged, err := tx.RevokedTokens().PurgeExpired(ctx, tx.DB(), now)
		if err != nil {
			return err
		}
		if purged > 0 {
			slog.Info("purged expired revoked tokens", "count", purged)
		}
		return nil
	})
}
