//go:build unit

package booking_test

import (
	"testing"

	"stayhub/internal/domain/booking"

	"github.com/stretchr/testify/assert"
)

func TestNightlyPriceCalculator_TotalPrice(t *testing.T) {
	calc := booking.NewNightlyPriceCalculator()

	cases := []struct {
		name      string
		rateCents int64
		checkIn   string
		checkOut  string
		want      int64
	}{
		{name: "five nights at 100.00", rateCents: 10000, checkIn: "2025-06-20", checkOut: "2025-06-25", want: 50000},
		{name: "one night", rateCents: 25000, checkIn: "2025-06-20", checkOut: "2025-06-21", want: 25000},
		{name: "zero rate", rateCents: 0, checkIn: "2025-06-20", checkOut: "2025-06-25", want: 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			stay := mustStay(t, c.checkIn, c.checkOut)
			total := calc.TotalPrice(booking.NewMoney(c.rateCents), stay)
			assert.Equal(t, c.want, total.Cents())
		})
	}
}

func TestPaymentSplit(t *testing.T) {
	cases := []struct {
		name          string
		totalCents    int64
		wantAdvance   int64
		wantRemaining int64
	}{
		{name: "clean split", totalCents: 1000000, wantAdvance: 300000, wantRemaining: 700000},
		{name: "five nights at 100.00", totalCents: 50000, wantAdvance: 15000, wantRemaining: 35000},
		{name: "truncating split still sums to total", totalCents: 101, wantAdvance: 30, wantRemaining: 71},
		{name: "single cent", totalCents: 1, wantAdvance: 0, wantRemaining: 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			total := booking.NewMoney(c.totalCents)
			advance := booking.AdvanceAmount(total)
			remaining := booking.RemainingAmount(total)

			assert.Equal(t, c.wantAdvance, advance.Cents())
			assert.Equal(t, c.wantRemaining, remaining.Cents())
			assert.Equal(t, c.totalCents, advance.Add(remaining).Cents(), "advance + remaining must equal total")
		})
	}
}

func TestAmountOwed(t *testing.T) {
	total := booking.NewMoney(50000)

	assert.Equal(t, int64(50000), booking.AmountOwed(total, booking.NewMoney(0)).Cents())
	assert.Equal(t, int64(35000), booking.AmountOwed(total, booking.NewMoney(15000)).Cents())
	assert.True(t, booking.AmountOwed(total, total).IsZero())
}
