package request

import (
	"strings"

	"github.com/google/uuid"
)

type RefundRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	Reason    string    `json:"reason"`
}

func (r RefundRequest) TrimmedReason() string {
	return strings.TrimSpace(r.Reason)
}
