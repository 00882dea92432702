package api

import (
	"net/http"

	reqdto "stayhub/internal/handler/dto/request"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/handler/httperr"
	"stayhub/internal/handler/middleware"
	"stayhub/internal/infra/gateway"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	paymentCommands commands.PaymentCommands
	paymentQueries  queries.PaymentQueries
}

func NewPaymentHandler(paymentCommands commands.PaymentCommands, paymentQueries queries.PaymentQueries) *PaymentHandler {
	return &PaymentHandler{
		paymentCommands: paymentCommands,
		paymentQueries:  paymentQueries,
	}
}

// @Summary Initiate gateway payment
// @Description Create or reuse a pending payment and return the gateway redirect URL
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.InitiatePaymentRequest true "Payment request"
// @Success 201 {object} resdto.GatewayInitResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /payments/gateway [post]
func (h *PaymentHandler) InitiateGateway(c *gin.Context) {
	guestID, ok := middleware.GetGuestID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	var req reqdto.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.paymentCommands.InitiateGatewayPayment(c.Request.Context(), req.BookingID, guestID, req.IsAdvance, c.ClientIP())
	if err != nil {
		h.respondPaymentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromGatewayInitResult(result))
}

// @Summary Gateway callback
// @Description Settle a payment from the gateway's asynchronous notification
// @Tags payments
// @Produce json
// @Success 200 {object} resdto.CallbackResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /payments/gateway/callback [get]
func (h *PaymentHandler) GatewayCallback(c *gin.Context) {
	result, err := h.paymentCommands.HandleGatewayCallback(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		switch {
		case errs.Is(err, gateway.ErrInvalidSignature):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid callback signature", nil)
		case errs.Is(err, gateway.ErrMalformedRef):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Malformed transaction reference", nil)
		case errs.Is(err, errs.ErrPaymentNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Payment not found", nil)
		case errs.Is(err, errs.ErrPaymentAlreadyProcessed):
			httperr.AbortWithError(c, http.StatusConflict, err, "Payment already processed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromCallbackResult(result))
}

// @Summary Record cash payment
// @Description Record a staff-confirmed cash payment (staff only)
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CashPaymentRequest true "Cash payment"
// @Success 201 {object} resdto.PaymentResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /payments/cash [post]
func (h *PaymentHandler) RecordCash(c *gin.Context) {
	var req reqdto.CashPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.paymentCommands.RecordCashPayment(c.Request.Context(), req.BookingID, req.AmountCents, req.StaffConfirmed)
	if err != nil {
		h.respondPaymentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromPaymentResult(result))
}

// @Summary Payment history
// @Description List all payment records of a booking
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {array} resdto.PaymentHistoryResponse
// @Router /bookings/{id}/payments [get]
func (h *PaymentHandler) History(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking id", nil)
		return
	}

	views, err := h.paymentQueries.History(c.Request.Context(), bookingID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	responses := make([]*resdto.PaymentHistoryResponse, 0, len(views))
	for _, view := range views {
		responses = append(responses, resdto.FromPaymentView(view))
	}
	c.JSON(http.StatusOK, responses)
}

// @Summary Amount owed
// @Description Get the outstanding balance of a booking
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BalanceResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id}/balance [get]
func (h *PaymentHandler) Balance(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking id", nil)
		return
	}
	guestID, ok := middleware.GetGuestID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}
	role, _ := middleware.GetGuestRole(c)

	balance, err := h.paymentQueries.Balance(c.Request.Context(), bookingID, guestID, role)
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errs.Is(err, errs.ErrAccessDenied):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromBalanceView(balance))
}

func (h *PaymentHandler) respondPaymentError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errs.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errs.Is(err, errs.ErrAccessDenied):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied", nil)
	case errs.Is(err, errs.ErrCancelledBookingUpdate):
		httperr.AbortWithError(c, http.StatusConflict, err, "Booking is cancelled", nil)
	case errs.Is(err, errs.ErrCompletedBookingUpdate):
		httperr.AbortWithError(c, http.StatusConflict, err, "Booking is already completed", nil)
	case errs.Is(err, errs.ErrCashConfirmationRequired):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Staff confirmation required for cash payments", nil)
	case errs.Is(err, errs.ErrInvalidPaymentAmount):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid payment amount", nil)
	case errs.Is(err, errs.ErrPaymentAlreadyProcessed):
		httperr.AbortWithError(c, http.StatusConflict, err, "Payment already processed", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
