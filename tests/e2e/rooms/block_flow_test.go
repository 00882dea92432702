//go:build e2e

package rooms_test

import (
	"net/http"
	"testing"
	"time"

	"stayhub/internal/domain/guest"
	"stayhub/internal/handler/dto/request"
	"stayhub/internal/handler/dto/response"
	"stayhub/tests/common/authtest"
	"stayhub/tests/common/dbtest"
	"stayhub/tests/common/httptest"
	"stayhub/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const bookingsURL = "/api/bookings"

type RoomBlockSuite struct {
	e2e.SharedSuite
}

func TestRoomBlockSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(RoomBlockSuite))
}

func blockedDatesURL(roomID uuid.UUID) string {
	return "/api/rooms/" + roomID.String() + "/blocked-dates"
}

func dateString(t time.Time) string {
	return t.Format("2006-01-02")
}

func (s *RoomBlockSuite) blockDates(t *testing.T, staffToken string, roomID uuid.UUID, dates []string) response.BlockDatesResponse {
	t.Helper()

	req := request.BlockDatesRequest{Dates: dates, Reason: "deep cleaning"}
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, blockedDatesURL(roomID), req, staffToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var blocked response.BlockDatesResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &blocked))
	return blocked
}

func (s *RoomBlockSuite) requestBooking(t *testing.T, token string, roomID uuid.UUID, checkIn, checkOut time.Time) int {
	t.Helper()

	req := request.CreateBookingRequest{
		RoomID:   roomID,
		CheckIn:  dateString(checkIn),
		CheckOut: dateString(checkOut),
	}
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, req, token)
	return w.Code
}

// =============================================================================
// TestBlockVsBook - blocked dates and bookings exclude each other
// =============================================================================

func (s *RoomBlockSuite) TestBlockVsBook() {
	s.Run("Normal case: a blocked date rejects a stay covering it", func() {
		t := s.T()

		roomID := dbtest.CreateTestRoom(t, s.DB, "301", 10000)
		staffToken := authtest.CreateAndLogin(t, s.DB, s.Router, "ops@example.com", string(guest.RoleStaff))
		guestToken := authtest.CreateAndLogin(t, s.DB, s.Router, "walkup@example.com", string(guest.RoleGuest))

		checkIn := time.Now().AddDate(0, 0, 7)
		blocked := s.blockDates(t, staffToken, roomID, []string{dateString(checkIn.AddDate(0, 0, 1))})
		require.Equal(t, 1, blocked.Blocked)

		// The stay spans the blocked night, so the booking is refused.
		require.Equal(t, http.StatusConflict, s.requestBooking(t, guestToken, roomID, checkIn, checkIn.AddDate(0, 0, 3)))

		// A stay ending before the blocked night is unaffected.
		require.Equal(t, http.StatusCreated, s.requestBooking(t, guestToken, roomID, checkIn, checkIn.AddDate(0, 0, 1)))
	})

	s.Run("Normal case: a booked night cannot be blocked until the booking is gone", func() {
		t := s.T()

		roomID := dbtest.CreateTestRoom(t, s.DB, "302", 10000)
		staffToken := authtest.CreateAndLogin(t, s.DB, s.Router, "ops@example.com", string(guest.RoleStaff))
		guestToken := authtest.CreateAndLogin(t, s.DB, s.Router, "incumbent@example.com", string(guest.RoleGuest))

		checkIn := time.Now().AddDate(0, 0, 7)
		require.Equal(t, http.StatusCreated, s.requestBooking(t, guestToken, roomID, checkIn, checkIn.AddDate(0, 0, 2)))

		// Nobody's existing stay may be blocked out from under them.
		night := dateString(checkIn)
		req := request.BlockDatesRequest{Dates: []string{night}, Reason: "deep cleaning"}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, blockedDatesURL(roomID), req, staffToken)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Normal case: unblocking frees the dates again", func() {
		t := s.T()

		roomID := dbtest.CreateTestRoom(t, s.DB, "303", 10000)
		staffToken := authtest.CreateAndLogin(t, s.DB, s.Router, "ops@example.com", string(guest.RoleStaff))
		guestToken := authtest.CreateAndLogin(t, s.DB, s.Router, "patient@example.com", string(guest.RoleGuest))

		checkIn := time.Now().AddDate(0, 0, 7)
		night := dateString(checkIn)
		s.blockDates(t, staffToken, roomID, []string{night})
		require.Equal(t, http.StatusConflict, s.requestBooking(t, guestToken, roomID, checkIn, checkIn.AddDate(0, 0, 1)))

		unblockReq := request.UnblockDatesRequest{Dates: []string{night}}
		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, blockedDatesURL(roomID), unblockReq, staffToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var unblocked response.UnblockDatesResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &unblocked))
		require.Equal(t, int64(1), unblocked.Unblocked)

		require.Equal(t, http.StatusCreated, s.requestBooking(t, guestToken, roomID, checkIn, checkIn.AddDate(0, 0, 1)))
	})

	s.Run("Error case: guests cannot manage blocked dates", func() {
		t := s.T()

		roomID := dbtest.CreateTestRoom(t, s.DB, "304", 10000)
		guestToken := authtest.CreateAndLogin(t, s.DB, s.Router, "curious@example.com", string(guest.RoleGuest))

		req := request.BlockDatesRequest{Dates: []string{dateString(time.Now().AddDate(0, 0, 7))}, Reason: "deep cleaning"}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, blockedDatesURL(roomID), req, guestToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})
}
