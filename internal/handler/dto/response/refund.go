package response

import (
	"time"

	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type RefundResponse struct {
	RefundID    uuid.UUID `json:"refundId"`
	PaymentID   uuid.UUID `json:"paymentId"`
	BookingID   uuid.UUID `json:"bookingId"`
	AmountCents int64     `json:"amountCents"`
	Status      string    `json:"status"`
}

type RefundListResponse struct {
	ID          uuid.UUID  `json:"id"`
	PaymentID   uuid.UUID  `json:"paymentId"`
	BookingID   uuid.UUID  `json:"bookingId"`
	AmountCents int64      `json:"amountCents"`
	Status      string     `json:"status"`
	Reason      string     `json:"reason"`
	CreatedAt   time.Time  `json:"createdAt"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
}

type RefundEligibilityResponse struct {
	BookingID         uuid.UUID `json:"bookingId"`
	Eligible          bool      `json:"eligible"`
	AmountCents       int64     `json:"amountCents"`
	HoursUntilCheckIn float64   `json:"hoursUntilCheckIn"`
	Reason            string    `json:"reason,omitempty"`
}

func FromRefundResult(result *commands.RefundResult) *RefundResponse {
	return &RefundResponse{
		RefundID:    result.RefundID,
		PaymentID:   result.PaymentID,
		BookingID:   result.BookingID,
		AmountCents: result.AmountCents,
		Status:      result.Status,
	}
}

func FromRefundView(view *queries.RefundView) *RefundListResponse {
	return &RefundListResponse{
		ID:          view.ID,
		PaymentID:   view.PaymentID,
		BookingID:   view.BookingID,
		AmountCents: view.AmountCents,
		Status:      view.Status,
		Reason:      view.Reason,
		CreatedAt:   view.CreatedAt,
		ProcessedAt: view.ProcessedAt,
	}
}

func FromRefundEligibilityView(view *queries.RefundEligibilityView) *RefundEligibilityResponse {
	return &RefundEligibilityResponse{
		BookingID:         view.BookingID,
		Eligible:          view.Eligible,
		AmountCents:       view.AmountCents,
		HoursUntilCheckIn: view.HoursUntilCheckIn,
		Reason:            view.Reason,
	}
}
