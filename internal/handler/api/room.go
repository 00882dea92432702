package api

import (
	"errors"
	"net/http"
	"time"

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

const dateLayout = "2006-01-02"

type RoomHandler struct {
	blockCommands       commands.BlockCommands
	availabilityQueries queries.AvailabilityQueries
}

func NewRoomHandler(blockCommands commands.BlockCommands, availabilityQueries queries.AvailabilityQueries) *RoomHandler {
	return &RoomHandler{
		blockCommands:       blockCommands,
		availabilityQueries: availabilityQueries,
	}
}

// @Summary Check availability
// @Description Check whether a room is free for a date range
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rooms/{id}/availability [get]
func (h *RoomHandler) Availability(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room id", nil)
		return
	}
	checkIn, err1 := time.Parse(dateLayout, c.Query("check_in"))
	checkOut, err2 := time.Parse(dateLayout, c.Query("check_out"))
	if err1 != nil || err2 != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errors.Join(err1, err2), "Invalid date format, expected YYYY-MM-DD", nil)
		return
	}

	available, err := h.availabilityQueries.IsAvailable(c.Request.Context(), roomID, checkIn, checkOut)
	if err != nil {
		h.respondAvailabilityError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.AvailabilityResponse{
		RoomID:    roomID,
		CheckIn:   checkIn.Format(dateLayout),
		CheckOut:  checkOut.Format(dateLayout),
		Available: available,
	})
}

// @Summary Available dates
// @Description List every free date of a room in an inclusive range
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Param from query string true "First date (YYYY-MM-DD)"
// @Param to query string true "Last date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailableDatesResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rooms/{id}/available-dates [get]
func (h *RoomHandler) AvailableDates(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room id", nil)
		return
	}
	from, err1 := time.Parse(dateLayout, c.Query("from"))
	to, err2 := time.Parse(dateLayout, c.Query("to"))
	if err1 != nil || err2 != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errors.Join(err1, err2), "Invalid date format, expected YYYY-MM-DD", nil)
		return
	}

	dates, err := h.availabilityQueries.AvailableDates(c.Request.Context(), roomID, from, to)
	if err != nil {
		h.respondAvailabilityError(c, err)
		return
	}

	formatted := make([]string, 0, len(dates))
	for _, d := range dates {
		formatted = append(formatted, d.Format(dateLayout))
	}
	c.JSON(http.StatusOK, resdto.AvailableDatesResponse{RoomID: roomID, Dates: formatted})
}

// @Summary Room calendar
// @Description Booked and blocked dates of a room, kept distinguishable
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Param from query string true "First date (YYYY-MM-DD)"
// @Param to query string true "Last date (YYYY-MM-DD)"
// @Success 200 {object} resdto.CalendarResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rooms/{id}/calendar [get]
func (h *RoomHandler) Calendar(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room id", nil)
		return
	}
	from, err1 := time.Parse(dateLayout, c.Query("from"))
	to, err2 := time.Parse(dateLayout, c.Query("to"))
	if err1 != nil || err2 != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errors.Join(err1, err2), "Invalid date format, expected YYYY-MM-DD", nil)
		return
	}

	calendar, err := h.availabilityQueries.Calendar(c.Request.Context(), roomID, from, to)
	if err != nil {
		h.respondAvailabilityError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCalendar(calendar))
}

// @Summary Block dates
// @Description Withhold dates for maintenance (staff only)
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param request body reqdto.BlockDatesRequest true "Dates to block"
// @Success 200 {object} resdto.BlockDatesResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /rooms/{id}/blocked-dates [post]
func (h *RoomHandler) BlockDates(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room id", nil)
		return
	}
	guestID, ok := middleware.GetGuestID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	var req reqdto.BlockDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	dates, err := req.ParsedDates()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format, expected YYYY-MM-DD", nil)
		return
	}

	blocked, err := h.blockCommands.BlockDates(c.Request.Context(), roomID, dates, req.TrimmedReason(), guestID)
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrRoomNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
		case errs.Is(err, errs.ErrInvalidDateRange):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Dates must not be in the past", nil)
		case errs.Is(err, errs.ErrRoomNotAvailable):
			httperr.AbortWithError(c, http.StatusConflict, err, "A booking already holds one of the dates", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.BlockDatesResponse{RoomID: roomID, Blocked: blocked})
}

// @Summary Unblock dates
// @Description Release previously blocked dates (staff only)
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param request body reqdto.UnblockDatesRequest true "Dates to unblock"
// @Success 200 {object} resdto.UnblockDatesResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rooms/{id}/blocked-dates [delete]
func (h *RoomHandler) UnblockDates(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room id", nil)
		return
	}

	var req reqdto.UnblockDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	dates, err := req.ParsedDates()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format, expected YYYY-MM-DD", nil)
		return
	}

	unblocked, err := h.blockCommands.UnblockDates(c.Request.Context(), roomID, dates)
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrRoomNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
		case errs.Is(err, errs.ErrInvalidDateRange):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "At least one date is required", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.UnblockDatesResponse{RoomID: roomID, Unblocked: unblocked})
}

func (h *RoomHandler) respondAvailabilityError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errs.ErrRoomNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
	case errs.Is(err, errs.ErrInvalidDateRange):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date range", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
