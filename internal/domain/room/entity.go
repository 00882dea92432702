package room

import (
	"time"

	"stayhub/internal/domain/booking"

	"github.com/google/uuid"
)

// Status is advisory. Availability is always decided by the overlap check
// against bookings and blocked dates, never by this flag alone.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusOccupied  Status = "OCCUPIED"
)

func (s Status) String() string {
	return string(s)
}

type Room struct {
	id          uuid.UUID
	number      string
	nightlyRate booking.Money
	status      Status
	createdAt   time.Time
}

func ReconstructRoom(id uuid.UUID, number string, nightlyRate booking.Money, status Status, createdAt time.Time) *Room {
	return &Room{
		id:          id,
		number:      number,
		nightlyRate: nightlyRate,
		status:      status,
		createdAt:   createdAt,
	}
}

func (r *Room) ID() uuid.UUID             { return r.id }
func (r *Room) Number() string            { return r.number }
func (r *Room) NightlyRate() booking.Money { return r.nightlyRate }
func (r *Room) Status() Status            { return r.status }
func (r *Room) CreatedAt() time.Time      { return r.createdAt }

// BlockedDate withholds a single calendar date for administrative reasons
// (maintenance), independent of any guest booking. Unique per (room, date).
type BlockedDate struct {
	roomID    uuid.UUID
	date      time.Time
	reason    string
	createdBy uuid.UUID
	createdAt time.Time
}

func NewBlockedDate(roomID uuid.UUID, date time.Time, reason string, createdBy uuid.UUID, now time.Time) *BlockedDate {
	return &BlockedDate{
		roomID:    roomID,
		date:      booking.DateOf(date),
		reason:    reason,
		createdBy: createdBy,
		createdAt: now,
	}
}

func ReconstructBlockedDate(roomID uuid.UUID, date time.Time, reason string, createdBy uuid.UUID, createdAt time.Time) *BlockedDate {
	return &BlockedDate{
		roomID:    roomID,
		date:      booking.DateOf(date),
		reason:    reason,
		createdBy: createdBy,
		createdAt: createdAt,
	}
}

func (b *BlockedDate) RoomID() uuid.UUID    { return b.roomID }
func (b *BlockedDate) Date() time.Time      { return b.date }
func (b *BlockedDate) Reason() string       { return b.reason }
func (b *BlockedDate) CreatedBy() uuid.UUID { return b.createdBy }
func (b *BlockedDate) CreatedAt() time.Time { return b.createdAt }
