package queries

import (
	"time"

	"github.com/google/uuid"
)

type BookingView struct {
	ID         uuid.UUID
	GuestID    uuid.UUID
	GuestEmail string
	RoomID     uuid.UUID
	RoomNumber string
	CheckIn    time.Time
	CheckOut   time.Time
	Status     string
	TotalCents int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type BookingListItem struct {
	ID         uuid.UUID
	RoomID     uuid.UUID
	RoomNumber string
	CheckIn    time.Time
	CheckOut   time.Time
	Status     string
	TotalCents int64
	CreatedAt  time.Time
}

type PaymentView struct {
	ID            uuid.UUID
	BookingID     uuid.UUID
	AmountCents   int64
	Method        string
	Status        string
	PaidAt        *time.Time
	RetryCount    int
	GatewayTxnID  *string
	CreatedAt     time.Time
}

type RefundView struct {
	ID          uuid.UUID
	PaymentID   uuid.UUID
	BookingID   uuid.UUID
	AmountCents int64
	Status      string
	Reason      string
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

type BalanceView struct {
	BookingID      uuid.UUID
	TotalCents     int64
	CompletedCents int64
	OwedCents      int64
}

// RoomCalendar keeps booked and blocked dates distinguishable so callers can
// merge both sets but still label the reason.
type RoomCalendar struct {
	RoomID       uuid.UUID
	From         time.Time
	To           time.Time
	BookedDates  []time.Time
	BlockedDates []time.Time
}

type RefundEligibilityView struct {
	BookingID         uuid.UUID
	Eligible          bool
	AmountCents       int64
	HoursUntilCheckIn float64
	Reason            string
}

type GuestView struct {
	ID        uuid.UUID
	Email     string
	Name      string
	Role      string
	IsActive  bool
	CreatedAt time.Time
}
