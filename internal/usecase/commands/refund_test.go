//go:build unit

package commands

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/refund"
	"stayhub/internal/infra/db"
	"stayhub/internal/infra/gateway"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/usecase/shared"
	"stayhub/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory stand-ins for the transaction boundary, enough to drive the
// post-commit half of a refund request.

type stubRefundRepo struct {
	stored *refund.Refund
}

func (s *stubRefundRepo) Create(_ context.Context, _ db.DBTX, rf *refund.Refund) error {
	s.stored = rf
	return nil
}

func (s *stubRefundRepo) Update(_ context.Context, _ db.DBTX, rf *refund.Refund) error {
	s.stored = rf
	return nil
}

func (s *stubRefundRepo) FindByID(_ context.Context, _ db.DBTX, _ uuid.UUID) (*refund.Refund, error) {
	return s.stored, nil
}

func (s *stubRefundRepo) FindBlockingByBooking(_ context.Context, _ db.DBTX, _ uuid.UUID) (*refund.Refund, error) {
	return nil, nil
}

type stubTx struct {
	refunds *stubRefundRepo
}

func (t *stubTx) Bookings() shared.BookingRepository           { return nil }
func (t *stubTx) Payments() shared.PaymentRepository           { return nil }
func (t *stubTx) Refunds() shared.RefundRepository             { return t.refunds }
func (t *stubTx) Rooms() shared.RoomRepository                 { return nil }
func (t *stubTx) BlockedDates() shared.BlockedDateRepository   { return nil }
func (t *stubTx) Guests() shared.GuestRepository               { return nil }
func (t *stubTx) RevokedTokens() shared.RevokedTokenRepository { return nil }
func (t *stubTx) DB() db.DBTX                                  { return nil }

type stubUow struct {
	tx *stubTx
}

func (u *stubUow) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

func (u *stubUow) WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, nil)
}

type stubGateway struct {
	refundErr error
}

func (g *stubGateway) BuildPaymentURL(gateway.PaymentRequest) (gateway.InitiationResult, error) {
	return gateway.InitiationResult{}, nil
}

func (g *stubGateway) ParseCallback(url.Values) (gateway.CallbackData, error) {
	return gateway.CallbackData{}, nil
}

func (g *stubGateway) ExecuteRefund(context.Context, string, string, booking.Money, string) error {
	return g.refundErr
}

func TestRefundExecute(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	newProcessingRefund := func(t *testing.T) *refund.Refund {
		t.Helper()
		rf := refund.NewRefund(uuid.New(), uuid.New(), booking.NewMoney(7500), "change of plans", now)
		require.NoError(t, rf.MarkProcessing())
		return rf
	}

	run := func(t *testing.T, gatewayErr error) (*refund.Refund, string, error) {
		t.Helper()
		repo := &stubRefundRepo{}
		impl := &refundCommandsImpl{
			uow:     &stubUow{tx: &stubTx{refunds: repo}},
			gateway: &stubGateway{refundErr: gatewayErr},
			clock:   clock.NewMockClock(now),
		}

		rf := newProcessingRefund(t)
		repo.stored = rf
		refunded := builder.NewPaymentBuilder().Completed(now).BuildDomain()

		status, err := impl.execute(context.Background(), rf, refunded, "change of plans")
		return repo.stored, status, err
	}

	t.Run("gateway success completes the refund", func(t *testing.T) {
		stored, status, err := run(t, nil)
		require.NoError(t, err)
		assert.Equal(t, "COMPLETED", status)
		assert.Equal(t, refund.StatusCompleted, stored.Status())
		require.NotNil(t, stored.ProcessedAt())
	})

	t.Run("gateway decline rejects the refund", func(t *testing.T) {
		declined := gateway.ErrRefundRejected
		stored, status, err := run(t, declined)
		require.ErrorIs(t, err, declined)
		assert.Equal(t, "REJECTED", status)
		assert.Equal(t, refund.StatusRejected, stored.Status())
		// A rejected refund no longer blocks a later request.
		assert.False(t, stored.Status().BlocksNewRequest())
	})

	t.Run("transient gateway failure marks the refund failed", func(t *testing.T) {
		stored, status, err := run(t, errors.New("gateway timeout"))
		require.Error(t, err)
		assert.Equal(t, "FAILED", status)
		assert.Equal(t, refund.StatusFailed, stored.Status())
	})
}
