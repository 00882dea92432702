package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers.
// Handlers map these to transport status codes; the engine only cares about
// identity via errors.Is.
var (
	// Lookup errors
	ErrRoomNotFound    = errors.New("room not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrPaymentNotFound = errors.New("payment not found")
	ErrGuestNotFound   = errors.New("guest not found")

	// Booking errors
	ErrInvalidDateRange        = errors.New("invalid date range")
	ErrRoomNotAvailable        = errors.New("room not available")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrCompletedBookingUpdate  = errors.New("completed booking cannot be updated")
	ErrCancelledBookingUpdate  = errors.New("cancelled booking cannot be updated")
	ErrEarlyCheckIn            = errors.New("check-in before booking start date")
	ErrInvalidCheckOut         = errors.New("check-out before booking start date")

	// Payment errors
	ErrIncompletePayment        = errors.New("payment incomplete")
	ErrInvalidPaymentAmount     = errors.New("invalid payment amount")
	ErrCashConfirmationRequired = errors.New("cash payment requires staff confirmation")
	ErrPaymentAlreadyProcessed  = errors.New("payment already processed")

	// Refund errors
	ErrRefundNotEligible   = errors.New("refund not eligible")
	ErrRefundAlreadyExists = errors.New("refund already exists")

	// Authorization errors
	ErrAccessDenied = errors.New("access denied")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
