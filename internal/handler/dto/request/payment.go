package request

import "github.com/google/uuid"

type InitiatePaymentRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	IsAdvance bool      `json:"is_advance"`
}

type CashPaymentRequest struct {
	BookingID      uuid.UUID `json:"booking_id" binding:"required"`
	AmountCents    int64     `json:"amount_cents" binding:"required,gt=0"`
	StaffConfirmed bool      `json:"staff_confirmed"`
}
