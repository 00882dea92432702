//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAvailabilityStore struct {
	exists  bool
	booked  []booking.StayRange
	blocked []time.Time
}

func (f *fakeAvailabilityStore) RoomExists(context.Context, uuid.UUID) (bool, error) {
	return f.exists, nil
}

func (f *fakeAvailabilityStore) BookedRanges(context.Context, uuid.UUID, time.Time, time.Time) ([]booking.StayRange, error) {
	return f.booked, nil
}

func (f *fakeAvailabilityStore) BlockedDates(context.Context, uuid.UUID, time.Time, time.Time) ([]time.Time, error) {
	return f.blocked, nil
}

func TestAvailabilityQueries_IsAvailable(t *testing.T) {
	ctx := context.Background()
	roomID := uuid.New()
	day := func(d int) time.Time { return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC) }

	t.Run("free range OK", func(t *testing.T) {
		q := queries.NewAvailabilityQueries(&fakeAvailabilityStore{exists: true})

		free, err := q.IsAvailable(ctx, roomID, day(10), day(12))
		require.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("booked range is unavailable", func(t *testing.T) {
		q := queries.NewAvailabilityQueries(&fakeAvailabilityStore{
			exists: true,
			booked: []booking.StayRange{booking.ReconstructStayRange(day(10), day(11))},
		})

		free, err := q.IsAvailable(ctx, roomID, day(10), day(12))
		require.NoError(t, err)
		assert.False(t, free)
	})

	t.Run("blocked date is unavailable", func(t *testing.T) {
		q := queries.NewAvailabilityQueries(&fakeAvailabilityStore{
			exists:  true,
			blocked: []time.Time{day(11)},
		})

		free, err := q.IsAvailable(ctx, roomID, day(10), day(12))
		require.NoError(t, err)
		assert.False(t, free)
	})

	t.Run("past range still gets an answer", func(t *testing.T) {
		q := queries.NewAvailabilityQueries(&fakeAvailabilityStore{exists: true})

		// Long over, but the query reports occupancy, it does not gatekeep.
		free, err := q.IsAvailable(ctx, roomID, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2000, 1, 3, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("inverted range NG", func(t *testing.T) {
		q := queries.NewAvailabilityQueries(&fakeAvailabilityStore{exists: true})

		_, err := q.IsAvailable(ctx, roomID, day(12), day(10))
		require.ErrorIs(t, err, errs.ErrInvalidDateRange)
	})

	t.Run("unknown room NG", func(t *testing.T) {
		q := queries.NewAvailabilityQueries(&fakeAvailabilityStore{exists: false})

		_, err := q.IsAvailable(ctx, roomID, day(10), day(12))
		require.ErrorIs(t, err, errs.ErrRoomNotFound)
	})
}
