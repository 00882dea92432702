//go:build unit

package refund_test

import (
	"testing"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/refund"
	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRefund() *refund.Refund {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	return refund.NewRefund(uuid.New(), uuid.New(), booking.NewMoney(7500), "change of plans", now)
}

func TestRefund_Transitions(t *testing.T) {
	processedAt := time.Date(2025, 6, 10, 9, 5, 0, 0, time.UTC)

	t.Run("pending to processing to completed", func(t *testing.T) {
		r := newTestRefund()
		assert.Equal(t, refund.StatusPending, r.Status())

		require.NoError(t, r.MarkProcessing())
		require.NoError(t, r.Complete(processedAt))
		assert.Equal(t, refund.StatusCompleted, r.Status())
		require.NotNil(t, r.ProcessedAt())
		assert.Equal(t, processedAt, *r.ProcessedAt())
	})

	t.Run("pending straight to failed", func(t *testing.T) {
		r := newTestRefund()
		require.NoError(t, r.Fail(processedAt))
		assert.Equal(t, refund.StatusFailed, r.Status())
	})

	t.Run("completed refund is immutable", func(t *testing.T) {
		r := newTestRefund()
		require.NoError(t, r.Complete(processedAt))

		require.ErrorIs(t, r.Complete(processedAt), errs.ErrPaymentAlreadyProcessed)
		require.ErrorIs(t, r.Fail(processedAt), errs.ErrPaymentAlreadyProcessed)
		require.ErrorIs(t, r.MarkProcessing(), errs.ErrPaymentAlreadyProcessed)
	})

	t.Run("processing to rejected on gateway decline", func(t *testing.T) {
		r := newTestRefund()
		require.NoError(t, r.MarkProcessing())
		require.NoError(t, r.Reject(processedAt))
		assert.Equal(t, refund.StatusRejected, r.Status())
		require.NotNil(t, r.ProcessedAt())
	})

	t.Run("terminal refund cannot be rejected", func(t *testing.T) {
		r := newTestRefund()
		require.NoError(t, r.Fail(processedAt))
		require.ErrorIs(t, r.Reject(processedAt), errs.ErrPaymentAlreadyProcessed)
	})
}

func TestStatus_BlocksNewRequest(t *testing.T) {
	cases := []struct {
		status refund.Status
		blocks bool
	}{
		{refund.StatusPending, true},
		{refund.StatusProcessing, true},
		{refund.StatusCompleted, true},
		{refund.StatusFailed, false},
		{refund.StatusRejected, false},
	}

	for _, c := range cases {
		assert.Equal(t, c.blocks, c.status.BlocksNewRequest(), "status %s", c.status)
	}
}
