package response

import (
	"time"

	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type AvailabilityResponse struct {
	RoomID    uuid.UUID `json:"roomId"`
	CheckIn   string    `json:"checkIn"`
	CheckOut  string    `json:"checkOut"`
	Available bool      `json:"available"`
}

type AvailableDatesResponse struct {
	RoomID uuid.UUID `json:"roomId"`
	Dates  []string  `json:"dates"`
}

type CalendarResponse struct {
	RoomID       uuid.UUID `json:"roomId"`
	From         string    `json:"from"`
	To           string    `json:"to"`
	BookedDates  []string  `json:"bookedDates"`
	BlockedDates []string  `json:"blockedDates"`
}

type BlockDatesResponse struct {
	RoomID  uuid.UUID `json:"roomId"`
	Blocked int       `json:"blocked"`
}

type UnblockDatesResponse struct {
	RoomID    uuid.UUID `json:"roomId"`
	Unblocked int64     `json:"unblocked"`
}

func FromCalendar(calendar *queries.RoomCalendar) *CalendarResponse {
	return &CalendarResponse{
		RoomID:       calendar.RoomID,
		From:         calendar.From.Format(dateLayout),
		To:           calendar.To.Format(dateLayout),
		BookedDates:  formatDates(calendar.BookedDates),
		BlockedDates: formatDates(calendar.BlockedDates),
	}
}

func formatDates(dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format(dateLayout))
	}
	return out
}
