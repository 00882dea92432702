package shared

import (
	"context"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/guest"
	"stayhub/internal/domain/payment"
	"stayhub/internal/domain/refund"
	"stayhub/internal/domain/room"
	"stayhub/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Payments() PaymentRepository
	Refunds() RefundRepository
	Rooms() RoomRepository
	BlockedDates() BlockedDateRepository
	Guests() GuestRepository
	RevokedTokens() RevokedTokenRepository
	DB() db.DBTX
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) error
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error)
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, b *booking.Booking) error
	LockOverlapping(ctx context.Context, tx db.DBTX, roomID uuid.UUID, stay booking.StayRange) ([]uuid.UUID, error)
	FindStaleNoShows(ctx context.Context, tx db.DBTX, today time.Time, limit int32) ([]*booking.Booking, error)
	DeleteExpiredPending(ctx context.Context, tx db.DBTX, cutoff time.Time) (int64, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, tx db.DBTX, p *payment.Payment) error
	Update(ctx context.Context, tx db.DBTX, p *payment.Payment) error
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*payment.Payment, error)
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*payment.Payment, error)
	FindByGatewayRef(ctx context.Context, tx db.DBTX, ref string) (*payment.Payment, error)
	FindByBookingForUpdate(ctx context.Context, tx db.DBTX, bookingID uuid.UUID) ([]*payment.Payment, error)
}

type RefundRepository interface {
	Create(ctx context.Context, tx db.DBTX, rf *refund.Refund) error
	Update(ctx context.Context, tx db.DBTX, rf *refund.Refund) error
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*refund.Refund, error)
	FindBlockingByBooking(ctx context.Context, tx db.DBTX, bookingID uuid.UUID) (*refund.Refund, error)
}

type RoomRepository interface {
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*room.Room, error)
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*room.Room, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, roomID uuid.UUID, status room.Status) error
}

type BlockedDateRepository interface {
	Insert(ctx context.Context, tx db.DBTX, bd *room.BlockedDate) error
	Delete(ctx context.Context, tx db.DBTX, roomID uuid.UUID, dates []time.Time) (int64, error)
	FindDatesInRange(ctx context.Context, tx db.DBTX, roomID uuid.UUID, from, to time.Time) ([]time.Time, error)
}

type GuestRepository interface {
	Create(ctx context.Context, tx db.DBTX, g *guest.Guest, hashedPassword string) error
	FindByEmail(ctx context.Context, tx db.DBTX, email string) (*guest.Guest, string, error)
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*guest.Guest, error)
	UpdateLastLogin(ctx context.Context, tx db.DBTX, id uuid.UUID, at time.Time) error
}

type RevokedTokenRepository interface {
	Revoke(ctx context.Context, tx db.DBTX, jti string, guestID uuid.UUID, expiresAt, now time.Time) error
	IsRevoked(ctx context.Context, tx db.DBTX, jti string) (bool, error)
	PurgeExpired(ctx context.Context, tx db.DBTX, now time.Time) (int64, error)
}
