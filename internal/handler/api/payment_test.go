//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"stayhub/internal/domain/guest"
	"stayhub/internal/handler/api"
	reqdto "stayhub/internal/handler/dto/request"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/infra/gateway"
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

type PaymentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockPaymentCommands
	mockQueries  *queriesmock.MockPaymentQueries
	handler      *api.PaymentHandler

	guestID uuid.UUID
}

func (s *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockPaymentQueries(s.mockCtrl)
	s.handler = api.NewPaymentHandler(s.mockCommands, s.mockQueries)

	s.guestID = uuid.New()

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("guest_id", s.guestID)
		c.Set("guest_role", guest.RoleGuest)
		c.Next()
	}

	s.router.POST("/payments/gateway", authMiddleware, s.handler.InitiateGateway)
	// The callback authenticates via the gateway signature, not a bearer token.
	s.router.GET("/payments/gateway/callback", s.handler.GatewayCallback)
	s.router.POST("/payments/cash", authMiddleware, s.handler.RecordCash)
	s.router.GET("/bookings/:id/payments", authMiddleware, s.handler.History)
	s.router.GET("/bookings/:id/balance", authMiddleware, s.handler.Balance)
}

func (s *PaymentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

// ================================================================================
// TestInitiateGateway
// ================================================================================

func (s *PaymentHandlerTestSuite) TestInitiateGateway() {
	url := "/payments/gateway"
	bookingID := uuid.New()
	reqBody := reqdto.InitiatePaymentRequest{BookingID: bookingID, IsAdvance: true}

	s.Run("success: returns 201 with the redirect URL", func() {
		expected := &commands.GatewayInitResult{
			PaymentID:   uuid.New(),
			BookingID:   bookingID,
			AmountCents: 15000,
			RedirectURL: "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html?vnp_Amount=15000",
		}
		s.mockCommands.EXPECT().InitiateGatewayPayment(gomock.Any(), bookingID, s.guestID, true, gomock.Any()).
			Return(expected, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.GatewayInitResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(expected.PaymentID, body.PaymentID)
		s.Equal(expected.RedirectURL, body.RedirectURL)
	})

	s.Run("error: 400 when booking id is missing", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("booking_id", nil))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
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
		}{
			{name: "booking not found", commandsError: errs.ErrBookingNotFound, expectedStatus: http.StatusNotFound},
			{name: "not the owner", commandsError: errs.ErrAccessDenied, expectedStatus: http.StatusForbidden},
			{name: "cancelled booking", commandsError: errs.ErrCancelledBookingUpdate, expectedStatus: http.StatusConflict},
			{name: "nothing left to pay", commandsError: errs.ErrInvalidPaymentAmount, expectedStatus: http.StatusBadRequest},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().InitiateGatewayPayment(gomock.Any(), bookingID, s.guestID, true, gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

// ================================================================================
// TestGatewayCallback
// ================================================================================

func (s *PaymentHandlerTestSuite) TestGatewayCallback() {
	url := "/payments/gateway/callback?vnp_TxnRef=abc_123&vnp_ResponseCode=00&vnp_SecureHash=feed"

	s.Run("success: reports payment and booking status", func() {
		expected := &commands.CallbackResult{
			PaymentID:     uuid.New(),
			BookingID:     uuid.New(),
			PaymentStatus: "COMPLETED",
			BookingStatus: "CONFIRMED",
		}
		s.mockCommands.EXPECT().HandleGatewayCallback(gomock.Any(), gomock.Any()).Return(expected, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var body resdto.CallbackResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("COMPLETED", body.PaymentStatus)
		s.Equal("CONFIRMED", body.BookingStatus)
	})

	s.Run("error: maps callback errors to proper statuses", func() {
		cases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "bad signature", commandsError: gateway.ErrInvalidSignature, expectedStatus: http.StatusBadRequest},
			{name: "malformed txn ref", commandsError: gateway.ErrMalformedRef, expectedStatus: http.StatusBadRequest},
			{name: "unknown payment", commandsError: errs.ErrPaymentNotFound, expectedStatus: http.StatusNotFound},
			{name: "duplicate delivery", commandsError: errs.ErrPaymentAlreadyProcessed, expectedStatus: http.StatusConflict},
			// The usecase marks sentinels onto underlying causes rather
			// than wrapping them, so the mapping must see through marks.
			{name: "marked malformed txn ref", commandsError: errs.Mark(errors.New("bad ref prefix"), gateway.ErrMalformedRef), expectedStatus: http.StatusBadRequest},
			{name: "marked unknown payment", commandsError: errs.Mark(errors.New("no stored ref"), errs.ErrPaymentNotFound), expectedStatus: http.StatusNotFound},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().HandleGatewayCallback(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

// ================================================================================
// TestRecordCash
// ================================================================================

func (s *PaymentHandlerTestSuite) TestRecordCash() {
	url := "/payments/cash"
	bookingID := uuid.New()
	reqBody := reqdto.CashPaymentRequest{BookingID: bookingID, AmountCents: 35000, StaffConfirmed: true}

	s.Run("success: returns the completed payment", func() {
		expected := &commands.PaymentResult{
			PaymentID:   uuid.New(),
			BookingID:   bookingID,
			AmountCents: 35000,
			Status:      "COMPLETED",
		}
		s.mockCommands.EXPECT().RecordCashPayment(gomock.Any(), bookingID, int64(35000), true).
			Return(expected, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.PaymentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal("COMPLETED", body.Status)
	})

	s.Run("error: 400 on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing amount", mutate: testutil.Field("amount_cents", nil)},
			{name: "zero amount", mutate: testutil.Field("amount_cents", 0)},
			{name: "negative amount", mutate: testutil.Field("amount_cents", -100)},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 400 without staff confirmation", func() {
		unconfirmed := reqdto.CashPaymentRequest{BookingID: bookingID, AmountCents: 35000}
		s.mockCommands.EXPECT().RecordCashPayment(gomock.Any(), bookingID, int64(35000), false).
			Return(nil, errs.ErrCashConfirmationRequired).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, unconfirmed, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Staff confirmation")
	})

	s.Run("error: 400 when tendered amount exceeds what is owed", func() {
		s.mockCommands.EXPECT().RecordCashPayment(gomock.Any(), bookingID, int64(35000), true).
			Return(nil, errs.ErrInvalidPaymentAmount).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid payment amount")
	})
}

// ================================================================================
// TestBalance
// ================================================================================

func (s *PaymentHandlerTestSuite) TestBalance() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/balance"

	s.Run("success: returns the outstanding amount", func() {
		s.mockQueries.EXPECT().Balance(gomock.Any(), bookingID, s.guestID, guest.RoleGuest).
			Return(&queries.BalanceView{BookingID: bookingID, TotalCents: 50000, CompletedCents: 15000, OwedCents: 35000}, nil).
			Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body resdto.BalanceResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(int64(35000), body.OwedCents)
	})

	s.Run("error: 404 when the booking does not exist", func() {
		s.mockQueries.EXPECT().Balance(gomock.Any(), bookingID, s.guestID, guest.RoleGuest).
			Return(nil, errs.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})

	s.Run("error: 403 when the booking belongs to someone else", func() {
		s.mockQueries.EXPECT().Balance(gomock.Any(), bookingID, s.guestID, guest.RoleGuest).
			Return(nil, errs.ErrAccessDenied).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Access denied")
	})
}
