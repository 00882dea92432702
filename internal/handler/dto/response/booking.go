package response

import (
	"time"

	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateBookingResponse struct {
	ID             uuid.UUID `json:"id"`
	Status         string    `json:"status"`
	TotalCents     int64     `json:"totalCents"`
	AdvanceCents   int64     `json:"advanceCents"`
	RemainingCents int64     `json:"remainingCents"`
}

type BookingResponse struct {
	ID         uuid.UUID `json:"id"`
	GuestID    uuid.UUID `json:"guestId"`
	GuestEmail string    `json:"guestEmail"`
	RoomID     uuid.UUID `json:"roomId"`
	RoomNumber string    `json:"roomNumber"`
	CheckIn    string    `json:"checkIn"`
	CheckOut   string    `json:"checkOut"`
	Status     string    `json:"status"`
	TotalCents int64     `json:"totalCents"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type BookingListResponse struct {
	ID         uuid.UUID `json:"id"`
	RoomID     uuid.UUID `json:"roomId"`
	RoomNumber string    `json:"roomNumber"`
	CheckIn    string    `json:"checkIn"`
	CheckOut   string    `json:"checkOut"`
	Status     string    `json:"status"`
	TotalCents int64     `json:"totalCents"`
	CreatedAt  time.Time `json:"createdAt"`
}

type TransitionResponse struct {
	ID      uuid.UUID `json:"id"`
	Status  string    `json:"status"`
	Warning string    `json:"warning,omitempty"`
}

const dateLayout = "2006-01-02"

func FromCreateBookingResult(result *commands.CreateBookingResult) *CreateBookingResponse {
	return &CreateBookingResponse{
		ID:             result.BookingID,
		Status:         result.Status,
		TotalCents:     result.TotalCents,
		AdvanceCents:   result.AdvanceCents,
		RemainingCents: result.RemainingCents,
	}
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:         view.ID,
		GuestID:    view.GuestID,
		GuestEmail: view.GuestEmail,
		RoomID:     view.RoomID,
		RoomNumber: view.RoomNumber,
		CheckIn:    view.CheckIn.Format(dateLayout),
		CheckOut:   view.CheckOut.Format(dateLayout),
		Status:     view.Status,
		TotalCents: view.TotalCents,
		CreatedAt:  view.CreatedAt,
		UpdatedAt:  view.UpdatedAt,
	}
}

func FromBookingListItem(item *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:         item.ID,
		RoomID:     item.RoomID,
		RoomNumber: item.RoomNumber,
		CheckIn:    item.CheckIn.Format(dateLayout),
		CheckOut:   item.CheckOut.Format(dateLayout),
		Status:     item.Status,
		TotalCents: item.TotalCents,
		CreatedAt:  item.CreatedAt,
	}
}

func FromTransitionResult(result *commands.TransitionResult) *TransitionResponse {
	return &TransitionResponse{
		ID:      result.BookingID,
		Status:  result.Status,
		Warning: result.Warning,
	}
}
