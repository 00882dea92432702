//go:build unit

package commands

import (
	"testing"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/payment"
	"stayhub/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReuseOrCreate(t *testing.T) {
	now := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)

	t.Run("cash tender never reuses a pending gateway record", func(t *testing.T) {
		bookingID := uuid.New()
		pendingGateway := builder.NewPaymentBuilder().
			With(func(b *builder.PaymentBuilder) {
				b.BookingID = bookingID
				b.AmountCents = 30000
			}).
			BuildDomain()
		ledger := []*payment.Payment{pendingGateway}

		rec, reused, err := reuseOrCreate(ledger, bookingID, booking.NewMoney(100000), payment.MethodCash, now)
		require.NoError(t, err)

		assert.False(t, reused)
		assert.Equal(t, payment.MethodCash, rec.Method())
		assert.Equal(t, int64(100000), rec.Amount().Cents())

		// The gateway record stays pending and untouched.
		assert.Equal(t, payment.StatusPending, pendingGateway.Status())
		assert.Equal(t, int64(30000), pendingGateway.Amount().Cents())

		// Completing the cash record must not make its money gateway-refundable.
		require.NoError(t, rec.Complete(now, nil))
		assert.Nil(t, payment.LatestCompletedGateway(append(ledger, rec)))
	})

	t.Run("gateway request reuses the latest pending gateway record", func(t *testing.T) {
		bookingID := uuid.New()
		older := builder.NewPaymentBuilder().
			With(func(b *builder.PaymentBuilder) {
				b.BookingID = bookingID
				b.AmountCents = 6000
			}).
			BuildDomain()
		newer := builder.NewPaymentBuilder().
			With(func(b *builder.PaymentBuilder) {
				b.BookingID = bookingID
				b.AmountCents = 5000
				b.CreatedAt = older.CreatedAt().Add(time.Hour)
			}).
			BuildDomain()

		rec, reused, err := reuseOrCreate([]*payment.Payment{older, newer}, bookingID, booking.NewMoney(9000), payment.MethodGateway, now)
		require.NoError(t, err)

		assert.True(t, reused)
		assert.Equal(t, newer.ID(), rec.ID())
		assert.Equal(t, int64(14000), rec.Amount().Cents())
		assert.Equal(t, int64(6000), older.Amount().Cents())
	})

	t.Run("failed record is never reused", func(t *testing.T) {
		bookingID := uuid.New()
		failed := builder.NewPaymentBuilder().
			With(func(b *builder.PaymentBuilder) {
				b.BookingID = bookingID
				b.Status = payment.StatusFailed
			}).
			BuildDomain()

		rec, reused, err := reuseOrCreate([]*payment.Payment{failed}, bookingID, booking.NewMoney(4500), payment.MethodGateway, now)
		require.NoError(t, err)

		assert.False(t, reused)
		assert.NotEqual(t, failed.ID(), rec.ID())
		assert.Equal(t, payment.StatusPending, rec.Status())
	})
}
