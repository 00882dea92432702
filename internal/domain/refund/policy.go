package refund

import (
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/payment"
)

const (
	// Cancellations closer than this to check-in get nothing back.
	MinHoursBeforeCheckIn = 48

	// Flat retention policy: 50% back regardless of how early the
	// cancellation comes in, not prorated.
	refundPercent = 50
)

// Policy computes refund eligibility from booking timing and the payment
// ledger. Only gateway payments are refundable through it.
type Policy struct{}

func NewPolicy() *Policy {
	return &Policy{}
}

type Eligibility struct {
	Eligible          bool
	Amount            booking.Money
	Payment           *payment.Payment
	HoursUntilCheckIn float64
}

// Evaluate measures the time from now until the stay's check-in at the
// standard check-in hour. Less than 48 hours out, or no completed gateway
// payment, means no refund.
func (p *Policy) Evaluate(stay booking.StayRange, payments []*payment.Payment, now time.Time) Eligibility {
	checkInAt := stay.CheckIn().Add(booking.CheckInHour * time.Hour)
	hours := checkInAt.Sub(now).Hours()

	gatewayPayment := payment.LatestCompletedGateway(payments)
	if gatewayPayment == nil || hours < MinHoursBeforeCheckIn {
		return Eligibility{
			Eligible:          false,
			Amount:            booking.NewMoney(0),
			Payment:           gatewayPayment,
			HoursUntilCheckIn: hours,
		}
	}

	return Eligibility{
		Eligible:          true,
		Amount:            booking.NewMoney(gatewayPayment.Amount().Cents() * refundPercent / 100),
		Payment:           gatewayPayment,
		HoursUntilCheckIn: hours,
	}
}
