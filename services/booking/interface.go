package booking

import (
	"context"

	"github.com/sekharpasem/YouCanStyle-Api/models"
)

// BookingService owns the booking lifecycle state machine:
//
//	pending → confirmed → inProgress → completed
//
// with cancelled, noShow and rescheduled as side branches from any
// non-terminal state. All transitions are conditional single-document
// updates, so concurrent operations on the same booking resolve to exactly
// one winner; the loser receives an InvalidStateError.
type BookingService interface {
	Create(ctx context.Context, in models.BookingCreate, clientID string) (*models.Booking, error)
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	Update(ctx context.Context, bookingID string, patch models.BookingUpdate) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID, reason string) (*models.Booking, error)
	MarkNoShow(ctx context.Context, bookingID string) (*models.Booking, error)
	StartSession(ctx context.Context, bookingID, otpCode string) (*models.Booking, error)
	CompleteSession(ctx context.Context, bookingID string) (*models.Booking, error)
	AddReview(ctx context.Context, bookingID, clientID string, rating int, reviewText string) (*models.Booking, error)
	Reschedule(ctx context.Context, bookingID, date, startTime, endTime, reason string) (*models.Booking, error)
	UpdatePaymentStatus(ctx context.Context, bookingID string, status models.PaymentState) (*models.Booking, error)
	ListForStylist(ctx context.Context, stylistID string, filter models.BookingFilter) ([]models.Booking, error)
	ListForClient(ctx context.Context, clientID string, filter models.BookingFilter) ([]models.Booking, error)
}
