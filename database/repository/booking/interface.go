package bookingRepo

import (
	"context"
	"time"

	"github.com/sekharpasem/YouCanStyle-Api/models"
)

// BookingRepository is the persistence contract for booking lifecycle rows.
//
// All status-changing operations are conditional updates keyed on the
// expected current status, so concurrent transitions on the same booking
// resolve to exactly one winner.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	Patch(ctx context.Context, bookingID string, set map[string]interface{}) error

	// UpdateIfStatus applies set iff the booking's current status is one of
	// expect. Returns false when the document exists but the guard did not
	// match (the caller classifies NotFound vs InvalidState).
	UpdateIfStatus(ctx context.Context, bookingID string, expect []models.BookingStatus, set map[string]interface{}) (bool, error)

	// StartSession atomically matches status=confirmed, the stored OTP code,
	// an unconsumed OTP and a live expiry, then moves the booking to
	// inProgress and marks the code consumed.
	StartSession(ctx context.Context, bookingID, otpCode string, now time.Time) (bool, error)

	// SetPaymentStatus stamps the payment status; when promoteIfPending is
	// set and the booking is still pending it also promotes it to confirmed.
	SetPaymentStatus(ctx context.Context, bookingID string, status models.PaymentState, promoteIfPending bool) error

	FindByIdempotencyKey(ctx context.Context, clientID, key string) (*models.Booking, error)
	ListForStylist(ctx context.Context, stylistID string, filter models.BookingFilter) ([]models.Booking, error)
	ListForClient(ctx context.Context, clientID string, filter models.BookingFilter) ([]models.Booking, error)
}
