package api

import (
	"net/http"

	reqdto "stayhub/internal/handler/dto/request"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/handler/httperr"
	"stayhub/internal/handler/middleware"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RefundHandler struct {
	refundCommands commands.RefundCommands
	refundQueries  queries.RefundQueries
}

func NewRefundHandler(refundCommands commands.RefundCommands, refundQueries queries.RefundQueries) *RefundHandler {
	return &RefundHandler{
		refundCommands: refundCommands,
		refundQueries:  refundQueries,
	}
}

// @Summary Request refund
// @Description Request a refund for the authenticated guest's own booking
// @Tags refunds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RefundRequest true "Refund request"
// @Success 201 {object} resdto.RefundResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /refunds [post]
func (h *RefundHandler) Request(c *gin.Context) {
	guestID, ok := middleware.GetGuestID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	var req reqdto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.refundCommands.Request(c.Request.Context(), req.BookingID, guestID, req.TrimmedReason())
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errs.Is(err, errs.ErrAccessDenied):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied", nil)
		case errs.Is(err, errs.ErrRefundAlreadyExists):
			httperr.AbortWithError(c, http.StatusConflict, err, "A refund already exists for this booking", nil)
		case errs.Is(err, errs.ErrRefundNotEligible):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Booking is not eligible for a refund", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusCreated, resdto.FromRefundResult(result))
}

// @Summary Check refund eligibility
// @Description Preview what a refund request for the booking would decide
// @Tags refunds
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.RefundEligibilityResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id}/refund-eligibility [get]
func (h *RefundHandler) CheckEligibility(c *gin.Context) {
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

	view, err := h.refundQueries.CheckEligibility(c.Request.Context(), bookingID, guestID, role)
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
	c.JSON(http.StatusOK, resdto.FromRefundEligibilityView(view))
}

// @Summary List refunds
// @Description List refunds of a booking (staff only)
// @Tags refunds
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {array} resdto.RefundListResponse
// @Router /bookings/{id}/refunds [get]
func (h *RefundHandler) ListByBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking id", nil)
		return
	}

	views, err := h.refundQueries.ListByBooking(c.Request.Context(), bookingID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	responses := make([]*resdto.RefundListResponse, 0, len(views))
	for _, view := range views {
		responses = append(responses, resdto.FromRefundView(view))
	}
	c.JSON(http.StatusOK, responses)
}
