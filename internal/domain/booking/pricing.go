package booking

// Fixed payment split policy: 30% advance, 70% remaining. These are not
// configurable per booking.
const advancePercent = 30

type PriceCalculator interface {
	TotalPrice(nightlyRate Money, stay StayRange) Money
}

type NightlyPriceCalculator struct{}

func NewNightlyPriceCalculator() *NightlyPriceCalculator {
	return &NightlyPriceCalculator{}
}

func (pc *NightlyPriceCalculator) TotalPrice(nightlyRate Money, stay StayRange) Money {
	return NewMoney(nightlyRate.Cents() * int64(stay.Nights()))
}

func AdvanceAmount(total Money) Money {
	return NewMoney(total.Cents() * advancePercent / 100)
}

// RemainingAmount is defined as the complement of the advance so the two
// always sum back to the total, even when the 30% split truncates.
func RemainingAmount(total Money) Money {
	return total.Sub(AdvanceAmount(total))
}

// AmountOwed is totalPrice minus the sum of completed payments. It can reach
// zero but the ledger never records more than is owed, so a negative result
// indicates corrupted data and is clamped by callers, not here.
func AmountOwed(total Money, completed Money) Money {
	return total.Sub(completed)
}
