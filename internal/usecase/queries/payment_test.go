//go:build unit

package queries_test

import (
	"context"
	"testing"

	"stayhub/internal/domain/guest"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingStore struct {
	view *queries.BookingView
	err  error
}

func (f *fakeBookingStore) FindByID(context.Context, uuid.UUID) (*queries.BookingView, error) {
	return f.view, f.err
}

func (f *fakeBookingStore) ListByGuest(context.Context, uuid.UUID) ([]*queries.BookingListItem, error) {
	return nil, nil
}

func (f *fakeBookingStore) ListByStatus(context.Context, string) ([]*queries.BookingListItem, error) {
	return nil, nil
}

type fakePaymentStore struct {
	balance *queries.BalanceView
}

func (f *fakePaymentStore) ListByBooking(context.Context, uuid.UUID) ([]*queries.PaymentView, error) {
	return nil, nil
}

func (f *fakePaymentStore) Balance(context.Context, uuid.UUID) (*queries.BalanceView, error) {
	return f.balance, nil
}

func TestPaymentQueries_Balance(t *testing.T) {
	ctx := context.Background()
	bookingID := uuid.New()
	ownerID := uuid.New()

	newQueries := func() queries.PaymentQueries {
		return queries.NewPaymentQueries(
			&fakeBookingStore{view: &queries.BookingView{ID: bookingID, GuestID: ownerID}},
			&fakePaymentStore{balance: &queries.BalanceView{BookingID: bookingID, TotalCents: 20000, CompletedCents: 6000, OwedCents: 14000}},
		)
	}

	t.Run("owner reads own balance OK", func(t *testing.T) {
		balance, err := newQueries().Balance(ctx, bookingID, ownerID, guest.RoleGuest)
		require.NoError(t, err)
		assert.Equal(t, int64(14000), balance.OwedCents)
	})

	t.Run("staff reads any balance OK", func(t *testing.T) {
		balance, err := newQueries().Balance(ctx, bookingID, uuid.New(), guest.RoleStaff)
		require.NoError(t, err)
		assert.Equal(t, int64(14000), balance.OwedCents)
	})

	t.Run("other guest NG", func(t *testing.T) {
		_, err := newQueries().Balance(ctx, bookingID, uuid.New(), guest.RoleGuest)
		require.ErrorIs(t, err, errs.ErrAccessDenied)
	})
}
