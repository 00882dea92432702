package response

import (
	"time"

	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type GatewayInitResponse struct {
	PaymentID   uuid.UUID `json:"paymentId"`
	BookingID   uuid.UUID `json:"bookingId"`
	AmountCents int64     `json:"amountCents"`
	RedirectURL string    `json:"redirectUrl"`
}

type PaymentResponse struct {
	PaymentID   uuid.UUID `json:"paymentId"`
	BookingID   uuid.UUID `json:"bookingId"`
	AmountCents int64     `json:"amountCents"`
	Status      string    `json:"status"`
}

type CallbackResponse struct {
	PaymentID     uuid.UUID `json:"paymentId"`
	BookingID     uuid.UUID `json:"bookingId"`
	PaymentStatus string    `json:"paymentStatus"`
	BookingStatus string    `json:"bookingStatus"`
}

type PaymentHistoryResponse struct {
	ID           uuid.UUID  `json:"id"`
	BookingID    uuid.UUID  `json:"bookingId"`
	AmountCents  int64      `json:"amountCents"`
	Method       string     `json:"method"`
	Status       string     `json:"status"`
	PaidAt       *time.Time `json:"paidAt,omitempty"`
	RetryCount   int        `json:"retryCount"`
	GatewayTxnID *string    `json:"gatewayTxnId,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type BalanceResponse struct {
	BookingID      uuid.UUID `json:"bookingId"`
	TotalCents     int64     `json:"totalCents"`
	CompletedCents int64     `json:"completedCents"`
	OwedCents      int64     `json:"owedCents"`
}

func FromGatewayInitResult(result *commands.GatewayInitResult) *GatewayInitResponse {
	return &GatewayInitResponse{
		PaymentID:   result.PaymentID,
		BookingID:   result.BookingID,
		AmountCents: result.AmountCents,
		RedirectURL: result.RedirectURL,
	}
}

func FromPaymentResult(result *commands.PaymentResult) *PaymentResponse {
	return &PaymentResponse{
		PaymentID:   result.PaymentID,
		BookingID:   result.BookingID,
		AmountCents: result.AmountCents,
		Status:      result.Status,
	}
}

func FromCallbackResult(result *commands.CallbackResult) *CallbackResponse {
	return &CallbackResponse{
		PaymentID:     result.PaymentID,
		BookingID:     result.BookingID,
		PaymentStatus: result.PaymentStatus,
		BookingStatus: result.BookingStatus,
	}
}

func FromPaymentView(view *queries.PaymentView) *PaymentHistoryResponse {
	return &PaymentHistoryResponse{
		ID:           view.ID,
		BookingID:    view.BookingID,
		AmountCents:  view.AmountCents,
		Method:       view.Method,
		Status:       view.Status,
		PaidAt:       view.PaidAt,
		RetryCount:   view.RetryCount,
		GatewayTxnID: view.GatewayTxnID,
		CreatedAt:    view.CreatedAt,
	}
}

func FromBalanceView(view *queries.BalanceView) *BalanceResponse {
	return &BalanceResponse{
		BookingID:      view.BookingID,
		TotalCents:     view.TotalCents,
		CompletedCents: view.CompletedCents,
		OwedCents:      view.OwedCents,
	}
}
