package booking

import (
	"context"
	"fmt"
	"time"

	bookingRepo "github.com/sekharpasem/YouCanStyle-Api/database/repository/booking"
	stylistRepo "github.com/sekharpasem/YouCanStyle-Api/database/repository/stylist"
	userRepo "github.com/sekharpasem/YouCanStyle-Api/database/repository/user"
	"github.com/sekharpasem/YouCanStyle-Api/models"
	"github.com/sekharpasem/YouCanStyle-Api/services/notification"
	"github.com/sekharpasem/YouCanStyle-Api/services/review"

	"go.uber.org/zap"
)

// nonTerminal is the set of states the cancel/noShow/reschedule branches may
// leave from.
var nonTerminal = []models.BookingStatus{
	models.BookingPending,
	models.BookingConfirmed,
	models.BookingInProgress,
	models.BookingRescheduled,
}

// DefaultBookingService is the production implementation of BookingService.
type DefaultBookingService struct {
	Repo     bookingRepo.BookingRepository
	Users    userRepo.UserRepository
	Stylists stylistRepo.StylistRepository
	Reviews  review.ReviewService
	Notifier notification.Notifier
	Logger   *zap.Logger

	OTPTTL          time.Duration
	MeetingLinkBase string
}

// GetByID retrieves a booking.
func (s *DefaultBookingService) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.Repo.GetByID(ctx, bookingID)
}

// ListForStylist returns a stylist's bookings.
func (s *DefaultBookingService) ListForStylist(ctx context.Context, stylistID string, filter models.BookingFilter) ([]models.Booking, error) {
	return s.Repo.ListForStylist(ctx, stylistID, filter)
}

// ListForClient returns a client's bookings.
func (s *DefaultBookingService) ListForClient(ctx context.Context, clientID string, filter models.BookingFilter) ([]models.Booking, error) {
	return s.Repo.ListForClient(ctx, clientID, filter)
}

// Update merges only the explicitly provided fields; omitted fields are
// never reset.
func (s *DefaultBookingService) Update(ctx context.Context, bookingID string, patch models.BookingUpdate) (*models.Booking, error) {
	set := map[string]interface{}{}
	if patch.Date != nil {
		if _, err := time.Parse("2006-01-02", *patch.Date); err != nil {
			return nil, &models.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"}
		}
		set["date"] = *patch.Date
	}
	if patch.StartTime != nil {
		if _, err := time.Parse("15:04", *patch.StartTime); err != nil {
			return nil, &models.ValidationError{Field: "startTime", Message: "must be HH:MM"}
		}
		set["startTime"] = *patch.StartTime
	}
	if patch.EndTime != nil {
		if _, err := time.Parse("15:04", *patch.EndTime); err != nil {
			return nil, &models.ValidationError{Field: "endTime", Message: "must be HH:MM"}
		}
		set["endTime"] = *patch.EndTime
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.Notes != nil {
		set["notes"] = *patch.Notes
	}

	if len(set) > 0 {
		if err := s.Repo.Patch(ctx, bookingID, set); err != nil {
			return nil, err
		}
	}
	return s.Repo.GetByID(ctx, bookingID)
}

// UpdatePaymentStatus stamps the booking's payment status. A completed
// payment on a still-pending booking promotes it to confirmed; this is the
// only automatic cross-field transition.
func (s *DefaultBookingService) UpdatePaymentStatus(ctx context.Context, bookingID string, status models.PaymentState) (*models.Booking, error) {
	promote := status == models.PaymentStateCompleted
	if err := s.Repo.SetPaymentStatus(ctx, bookingID, status, promote); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, bookingID)
}

// classifyTransitionLoss distinguishes a missing booking from a guard miss
// after a conditional update matched nothing.
func (s *DefaultBookingService) classifyTransitionLoss(ctx context.Context, bookingID, op string) error {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	return &models.InvalidStateError{
		Entity:  "booking",
		ID:      bookingID,
		Status:  string(b.Status),
		Message: fmt.Sprintf("cannot %s booking %s in status %q", op, bookingID, b.Status),
	}
}

func (s *DefaultBookingService) notify(ctx context.Context, userID string, typ models.NotificationType, title, message string, b *models.Booking) {
	if s.Notifier == nil {
		return
	}
	s.Notifier.Notify(ctx, userID, typ, title, message, map[string]string{"bookingId": b.ID})
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}
