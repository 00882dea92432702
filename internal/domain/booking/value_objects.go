package booking

import (
	"fmt"
	"time"

	"stayhub/internal/pkg/errs"
)

// Standard hotel hours. Arriving before CheckInHour or leaving after
// CheckOutHour is a soft warning, never a blocking error.
const (
	CheckInHour  = 14
	CheckOutHour = 12
)

// StayRange is a half-open date interval: the stay occupies the nights
// [checkIn, checkOut). Both endpoints are calendar dates at midnight.
type StayRange struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayRange(checkIn, checkOut, now time.Time) (StayRange, error) {
	checkIn = DateOf(checkIn)
	checkOut = DateOf(checkOut)

	if !checkOut.After(checkIn) {
		return StayRange{}, errs.ErrInvalidDateRange
	}
	if checkIn.Before(DateOf(now)) {
		return StayRange{}, errs.ErrInvalidDateRange
	}

	return StayRange{checkIn: checkIn, checkOut: checkOut}, nil
}

// ReconstructStayRange rebuilds a range from persisted dates without the
// not-in-the-past check, which only applies at creation time.
func ReconstructStayRange(checkIn, checkOut time.Time) StayRange {
	return StayRange{checkIn: DateOf(checkIn), checkOut: DateOf(checkOut)}
}

func (r StayRange) CheckIn() time.Time  { return r.checkIn }
func (r StayRange) CheckOut() time.Time { return r.checkOut }

// Nights bills a stay shorter than one full day as one night.
func (r StayRange) Nights() int {
	hours := r.checkOut.Sub(r.checkIn).Hours()
	nights := int(hours / 24)
	if float64(nights*24) < hours {
		nights++
	}
	if nights < 1 {
		nights = 1
	}
	return nights
}

// Overlaps reports whether two half-open ranges share at least one night:
// a1 < b2 AND b1 < a2.
func (r StayRange) Overlaps(other StayRange) bool {
	return r.checkIn.Before(other.checkOut) && other.checkIn.Before(r.checkOut)
}

// ContainsDate reports whether a calendar date falls inside [checkIn, checkOut).
func (r StayRange) ContainsDate(date time.Time) bool {
	d := DateOf(date)
	return !d.Before(r.checkIn) && d.Before(r.checkOut)
}

func (r StayRange) String() string {
	return fmt.Sprintf("[%s,%s)", r.checkIn.Format(time.DateOnly), r.checkOut.Format(time.DateOnly))
}

// DateOf truncates a timestamp to its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Major() float64 {
	return float64(m.cents) / 100.0
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) Sub(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

func (m Money) IsZero() bool {
	return m.cents == 0
}

func (m Money) IsNegative() bool {
	return m.cents < 0
}
