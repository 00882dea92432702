//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"stayhub/internal/domain/guest"
	"stayhub/internal/handler/api"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"
	"stayhub/tests/common/builder"
	"stayhub/tests/common/httptest"
	"stayhub/tests/common/testutil"
	commandsmock "stayhub/tests/mock/commands"
	queriesmock "stayhub/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler

	guestID uuid.UUID
	role    guest.Role
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	s.guestID = uuid.New()
	s.role = guest.RoleGuest

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("guest_id", s.guestID)
		c.Set("guest_role", s.role)
		c.Next()
	}

	// Setup routes
	s.router.POST("/bookings", authMiddleware, s.handler.Create)
	s.router.GET("/bookings", authMiddleware, s.handler.ListMine)
	s.router.GET("/bookings/by-status", authMiddleware, s.handler.ListByStatus)
	s.router.GET("/bookings/:id", authMiddleware, s.handler.Get)
	s.router.POST("/bookings/:id/cancel", authMiddleware, s.handler.Cancel)
	s.router.POST("/bookings/:id/check-in", authMiddleware, s.handler.CheckIn)
	s.router.POST("/bookings/:id/check-out", authMiddleware, s.handler.CheckOut)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings"
	reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()

	expectedResult := &commands.CreateBookingResult{
		BookingID:      uuid.New(),
		Status:         "PENDING",
		TotalCents:     50000,
		AdvanceCents:   15000,
		RemainingCents: 35000,
	}

	s.Run("success: returns 201 Created with the payment split", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), s.guestID, reqBody.RoomID, gomock.Any(), gomock.Any()).
			Return(expectedResult, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.CreateBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(expectedResult.BookingID, body.ID)
		s.Equal(int64(15000), body.AdvanceCents)
		s.Equal(int64(35000), body.RemainingCents)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: room_id", mutate: testutil.Field("room_id", nil)},
			{name: "missing field: check_in", mutate: testutil.Field("check_in", nil)},
			{name: "missing field: check_out", mutate: testutil.Field("check_out", nil)},
			{name: "wrong date format", mutate: testutil.Field("check_in", "2025/06/20")},
			{name: "non-uuid room id", mutate: testutil.Field("room_id", "room-1")},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		cases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "room not found", commandsError: errs.ErrRoomNotFound, expectedStatus: http.StatusNotFound, expectedMsg: "Room not found"},
			{name: "invalid date range", commandsError: errs.ErrInvalidDateRange, expectedStatus: http.StatusBadRequest, expectedMsg: "Invalid date range"},
			{name: "dates taken", commandsError: errs.ErrRoomNotAvailable, expectedStatus: http.StatusConflict, expectedMsg: "not available"},
			{name: "internal error", commandsError: errors.New("connection reset"), expectedStatus: http.StatusInternalServerError, expectedMsg: "Internal server error"},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	s.Run("success: owner reads own booking", func() {
		view := builder.NewBookingBuilder().
			With(func(b *builder.BookingBuilder) { b.GuestID = s.guestID }).
			BuildView()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String(), nil, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.ID)
		s.Equal("2025-06-20", body.CheckIn)
		s.Equal("2025-06-25", body.CheckOut)
	})

	s.Run("error: 403 for someone else's booking", func() {
		view := builder.NewBookingBuilder().BuildView() // random guest id
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Access denied")
	})

	s.Run("success: staff reads any booking", func() {
		s.role = guest.RoleStaff
		defer func() { s.role = guest.RoleGuest }()

		view := builder.NewBookingBuilder().BuildView()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String(), nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 404 when booking does not exist", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(nil, errs.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+id.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking id")
	})
}

// ================================================================================
// TestCheckIn / TestCheckOut
// ================================================================================

func (s *BookingHandlerTestSuite) TestCheckIn() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/check-in"

	s.Run("success: returns the new status and the early-hour warning", func() {
		s.mockCommands.EXPECT().CheckIn(gomock.Any(), bookingID).
			Return(&commands.TransitionResult{BookingID: bookingID, Status: "CHECKED_IN", Warning: "check-in before 14:00"}, nil).
			Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var body resdto.TransitionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("CHECKED_IN", body.Status)
		s.Equal("check-in before 14:00", body.Warning)
	})

	s.Run("error: maps transition errors to proper statuses", func() {
		cases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "booking not found", commandsError: errs.ErrBookingNotFound, expectedStatus: http.StatusNotFound},
			{name: "not confirmed yet", commandsError: errs.ErrInvalidStatusTransition, expectedStatus: http.StatusConflict},
			{name: "cancelled booking", commandsError: errs.ErrCancelledBookingUpdate, expectedStatus: http.StatusConflict},
			{name: "before booked date", commandsError: errs.ErrEarlyCheckIn, expectedStatus: http.StatusUnprocessableEntity},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CheckIn(gomock.Any(), bookingID).Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

func (s *BookingHandlerTestSuite) TestCheckOut() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/check-out"

	s.Run("success: completes the booking", func() {
		s.mockCommands.EXPECT().CheckOut(gomock.Any(), bookingID).
			Return(&commands.TransitionResult{BookingID: bookingID, Status: "COMPLETED"}, nil).
			Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var body resdto.TransitionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("COMPLETED", body.Status)
		s.Empty(body.Warning)
	})

	s.Run("error: 422 when the booking is not fully paid", func() {
		s.mockCommands.EXPECT().CheckOut(gomock.Any(), bookingID).Return(nil, errs.ErrIncompletePayment).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "not fully paid")
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancel() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/cancel"

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), bookingID, s.guestID, guest.RoleGuest).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		cases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "not the owner", commandsError: errs.ErrAccessDenied, expectedStatus: http.StatusForbidden},
			{name: "already cancelled", commandsError: errs.ErrCancelledBookingUpdate, expectedStatus: http.StatusConflict},
			{name: "already completed", commandsError: errs.ErrCompletedBookingUpdate, expectedStatus: http.StatusConflict},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Cancel(gomock.Any(), bookingID, s.guestID, guest.RoleGuest).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

// ================================================================================
// TestListMine
// ================================================================================

func (s *BookingHandlerTestSuite) TestListMine() {
	s.Run("success: returns the guest's bookings", func() {
		view := builder.NewBookingBuilder().BuildView()
		item := &queries.BookingListItem{
			ID:         view.ID,
			RoomID:     view.RoomID,
			RoomNumber: view.RoomNumber,
			CheckIn:    view.CheckIn,
			CheckOut:   view.CheckOut,
			Status:     view.Status,
			TotalCents: view.TotalCents,
			CreatedAt:  view.CreatedAt,
		}
		s.mockQueries.EXPECT().ListByGuest(gomock.Any(), s.guestID).
			Return([]*queries.BookingListItem{item}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "bearer-token")

		var body []resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
		s.Equal(view.ID, body[0].ID)
	})

	s.Run("success: empty list stays a JSON array", func() {
		s.mockQueries.EXPECT().ListByGuest(gomock.Any(), s.guestID).Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		s.JSONEq("[]", rec.Body.String())
	})
}
