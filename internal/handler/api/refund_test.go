//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"stayhub/internal/domain/guest"
	"stayhub/internal/handler/api"
	reqdto "stayhub/internal/handler/dto/request"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"
	"stayhub/tests/common/httptest"
	"stayhub/tests/common/testutil"
	commandsmock "stayhub/tests/mock/commands"
	queriesmock "stayhub/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RefundHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockRefundCommands
	mockQueries  *queriesmock.MockRefundQueries
	handler      *api.RefundHandler

	guestID uuid.UUID
	role    guest.Role
}

func (s *RefundHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockRefundCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockRefundQueries(s.mockCtrl)
	s.handler = api.NewRefundHandler(s.mockCommands, s.mockQueries)

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
	s.router.POST("/refunds", authMiddleware, s.handler.Request)
	s.router.GET("/bookings/:id/refund-eligibility", authMiddleware, s.handler.CheckEligibility)
	s.router.GET("/bookings/:id/refunds", authMiddleware, s.handler.ListByBooking)
}

func (s *RefundHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRefundHandlerSuite(t *testing.T) {
	suite.Run(t, new(RefundHandlerTestSuite))
}

// ================================================================================
// TestRequest
// ================================================================================

func (s *RefundHandlerTestSuite) TestRequest() {
	url := "/refunds"
	bookingID := uuid.New()
	reqBody := reqdto.RefundRequest{
		BookingID: bookingID,
		Reason:    "trip cancelled",
	}

	expectedResult := &commands.RefundResult{
		RefundID:    uuid.New(),
		PaymentID:   uuid.New(),
		BookingID:   bookingID,
		AmountCents: 7500,
		Status:      "PENDING",
	}

	s.Run("success: returns 201 Created with the refund record", func() {
		s.mockCommands.EXPECT().Request(gomock.Any(), bookingID, s.guestID, "trip cancelled").
			Return(expectedResult, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.RefundResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(expectedResult.RefundID, body.RefundID)
		s.Equal(expectedResult.PaymentID, body.PaymentID)
		s.Equal(int64(7500), body.AmountCents)
		s.Equal("PENDING", body.Status)
	})

	s.Run("success: reason is trimmed before reaching the engine", func() {
		s.mockCommands.EXPECT().Request(gomock.Any(), bookingID, s.guestID, "changed plans").
			Return(expectedResult, nil).Times(1)

		padded := reqdto.RefundRequest{BookingID: bookingID, Reason: "  changed plans  "}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, padded, "bearer-token")
		s.Equal(http.StatusCreated, rec.Code)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: booking_id", mutate: testutil.Field("booking_id", nil)},
			{name: "non-uuid booking id", mutate: testutil.Field("booking_id", "booking-1")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: 401 Unauthorized without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("error: engine errors map to status codes", func() {
		cases := []struct {
			name       string
			err        error
			wantStatus int
			wantMsg    string
		}{
			{name: "booking not found", err: errs.ErrBookingNotFound, wantStatus: http.StatusNotFound, wantMsg: "Booking not found"},
			{name: "not the owner", err: errs.ErrAccessDenied, wantStatus: http.StatusForbidden, wantMsg: "Access denied"},
			{name: "refund already exists", err: errs.ErrRefundAlreadyExists, wantStatus: http.StatusConflict, wantMsg: "already exists"},
			{name: "not eligible", err: errs.ErrRefundNotEligible, wantStatus: http.StatusUnprocessableEntity, wantMsg: "not eligible"},
			{name: "unexpected failure", err: errors.New("db down"), wantStatus: http.StatusInternalServerError, wantMsg: "Internal server error"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Request(gomock.Any(), bookingID, s.guestID, gomock.Any()).
					Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.wantStatus, tc.wantMsg)
			})
		}
	})
}

// ================================================================================
// TestCheckEligibility
// ================================================================================

func (s *RefundHandlerTestSuite) TestCheckEligibility() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/refund-eligibility"

	s.Run("success: returns the eligibility verdict", func() {
		view := &queries.RefundEligibilityView{
			BookingID:         bookingID,
			Eligible:          true,
			AmountCents:       7500,
			HoursUntilCheckIn: 76,
		}
		s.mockQueries.EXPECT().CheckEligibility(gomock.Any(), bookingID, s.guestID, guest.RoleGuest).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body resdto.RefundEligibilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Eligible)
		s.Equal(int64(7500), body.AmountCents)
		s.InDelta(76.0, body.HoursUntilCheckIn, 0.01)
		s.Empty(body.Reason)
	})

	s.Run("success: ineligible verdict carries the reason", func() {
		view := &queries.RefundEligibilityView{
			BookingID:         bookingID,
			Eligible:          false,
			AmountCents:       0,
			HoursUntilCheckIn: 24,
			Reason:            "less than 48 hours before check-in",
		}
		s.mockQueries.EXPECT().CheckEligibility(gomock.Any(), bookingID, s.guestID, guest.RoleGuest).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body resdto.RefundEligibilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.False(body.Eligible)
		s.Zero(body.AmountCents)
		s.NotEmpty(body.Reason)
	})

	s.Run("error: 400 Bad Request on malformed booking id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid/refund-eligibility", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking id")
	})

	s.Run("error: 403 Forbidden for another guest's booking", func() {
		s.mockQueries.EXPECT().CheckEligibility(gomock.Any(), bookingID, s.guestID, guest.RoleGuest).
			Return(nil, errs.ErrAccessDenied).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Access denied")
	})

	s.Run("error: 404 Not Found for an unknown booking", func() {
		s.mockQueries.EXPECT().CheckEligibility(gomock.Any(), bookingID, s.guestID, guest.RoleGuest).
			Return(nil, errs.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})
}

// ================================================================================
// TestListByBooking
// ================================================================================

func (s *RefundHandlerTestSuite) TestListByBooking() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/refunds"

	s.Run("success: returns the booking's refunds", func() {
		processedAt := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)
		views := []*queries.RefundView{
			{
				ID:          uuid.New(),
				PaymentID:   uuid.New(),
				BookingID:   bookingID,
				AmountCents: 7500,
				Status:      "COMPLETED",
				Reason:      "trip cancelled",
				CreatedAt:   time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
				ProcessedAt: &processedAt,
			},
		}
		s.mockQueries.EXPECT().ListByBooking(gomock.Any(), bookingID).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body []*resdto.RefundListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
		s.Equal(views[0].ID, body[0].ID)
		s.Equal("COMPLETED", body[0].Status)
		s.NotNil(body[0].ProcessedAt)
	})

	s.Run("success: empty history serializes as an empty array", func() {
		s.mockQueries.EXPECT().ListByBooking(gomock.Any(), bookingID).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq("[]", rec.Body.String())
	})

	s.Run("error: 400 Bad Request on malformed booking id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid/refunds", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking id")
	})
}
