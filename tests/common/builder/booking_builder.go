//go:build unit || e2e

package builder

import (
	"time"

	dombooking "stayhub/internal/domain/booking"
	reqdto "stayhub/internal/handler/dto/request"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	GuestID          uuid.UUID
	RoomID           uuid.UUID
	CheckIn          string
	CheckOut         string
	NightlyRateCents int64
	Now              time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		GuestID:          uuid.New(),
		RoomID:           uuid.New(),
		CheckIn:          "2025-06-20",
		CheckOut:         "2025-06-25",
		NightlyRateCents: 10000,
		Now:              time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildStay() (dombooking.StayRange, error) {
	checkIn, err := time.Parse(time.DateOnly, b.CheckIn)
	if err != nil {
		return dombooking.StayRange{}, err
	}
	checkOut, err := time.Parse(time.DateOnly, b.CheckOut)
	if err != nil {
		return dombooking.StayRange{}, err
	}
	return dombooking.NewStayRange(checkIn, checkOut, b.Now)
}

func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	stay, err := b.BuildStay()
	if err != nil {
		return nil, err
	}
	calc := dombooking.NewNightlyPriceCalculator()
	total := calc.TotalPrice(dombooking.NewMoney(b.NightlyRateCents), stay)
	return dombooking.NewBooking(b.GuestID, b.RoomID, stay, total, b.Now), nil
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	checkIn, _ := time.Parse(time.DateOnly, b.CheckIn)
	checkOut, _ := time.Parse(time.DateOnly, b.CheckOut)
	stay := dombooking.ReconstructStayRange(checkIn, checkOut)
	total := int64(stay.Nights()) * b.NightlyRateCents

	return &queries.BookingView{
		ID:         uuid.New(),
		GuestID:    b.GuestID,
		GuestEmail: "guest@example.com",
		RoomID:     b.RoomID,
		RoomNumber: "204",
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Status:     dombooking.StatusPending.String(),
		TotalCents: total,
		CreatedAt:  b.Now,
		UpdatedAt:  b.Now,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		RoomID:   b.RoomID,
		CheckIn:  b.CheckIn,
		CheckOut: b.CheckOut,
	}
}
