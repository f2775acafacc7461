package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/sekharpasem/YouCanStyle-Api/models"

	"go.uber.org/zap"
)

// Cancel moves any non-terminal booking to cancelled and stores the reason.
func (s *DefaultBookingService) Cancel(ctx context.Context, bookingID, reason string) (*models.Booking, error) {
	set := map[string]interface{}{"status": models.BookingCancelled}
	if reason != "" {
		set["cancellationReason"] = reason
	}

	ok, err := s.Repo.UpdateIfStatus(ctx, bookingID, nonTerminal, set)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.classifyTransitionLoss(ctx, bookingID, "cancel")
	}

	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, b.StylistID, models.NotifyBookingCancelled,
		"Booking Cancelled",
		fmt.Sprintf("Booking on %s at %s was cancelled", b.Date, b.StartTime), b)
	return b, nil
}

// MarkNoShow moves any non-terminal booking to noShow.
func (s *DefaultBookingService) MarkNoShow(ctx context.Context, bookingID string) (*models.Booking, error) {
	ok, err := s.Repo.UpdateIfStatus(ctx, bookingID, nonTerminal,
		map[string]interface{}{"status": models.BookingNoShow})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.classifyTransitionLoss(ctx, bookingID, "mark no-show on")
	}

	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, b.ClientID, models.NotifyBookingNoShow,
		"Missed Session",
		fmt.Sprintf("You were marked absent for the booking on %s at %s", b.Date, b.StartTime), b)
	return b, nil
}

// StartSession verifies the client-presented OTP and moves a confirmed
// booking to inProgress. The OTP is consumed in the same conditional write
// as the transition, so neither a replayed code nor a concurrent cancel can
// race past it.
func (s *DefaultBookingService) StartSession(ctx context.Context, bookingID, otpCode string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.BookingConfirmed {
		return nil, &models.InvalidStateError{
			Entity: "booking", ID: bookingID, Status: string(b.Status),
			Message: fmt.Sprintf("cannot start session for booking %s in status %q", bookingID, b.Status),
		}
	}

	ok, err := s.Repo.StartSession(ctx, bookingID, otpCode, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !ok {
		// The guard can miss because the code is wrong, already consumed,
		// expired, or because another transition won in between.
		current, err := s.Repo.GetByID(ctx, bookingID)
		if err != nil {
			return nil, err
		}
		if current.Status != models.BookingConfirmed {
			return nil, &models.InvalidStateError{
				Entity: "booking", ID: bookingID, Status: string(current.Status),
				Message: fmt.Sprintf("cannot start session for booking %s in status %q", bookingID, current.Status),
			}
		}
		return nil, &models.AuthFailedError{Message: "session verification code is invalid or expired"}
	}

	updated, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	s.logger().Info("session started", zap.String("bookingId", bookingID))
	s.notify(ctx, updated.ClientID, models.NotifySessionStarted,
		"Session Started",
		fmt.Sprintf("Your session on %s at %s has started", updated.Date, updated.StartTime), updated)
	return updated, nil
}

// CompleteSession moves an inProgress booking to completed. The session was
// already verified at start; no second OTP check is required.
func (s *DefaultBookingService) CompleteSession(ctx context.Context, bookingID string) (*models.Booking, error) {
	ok, err := s.Repo.UpdateIfStatus(ctx, bookingID,
		[]models.BookingStatus{models.BookingInProgress},
		map[string]interface{}{"status": models.BookingCompleted})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.classifyTransitionLoss(ctx, bookingID, "complete")
	}

	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, b.ClientID, models.NotifySessionCompleted,
		"Session Completed",
		"Your session is complete. You can now leave a review.", b)
	return b, nil
}

// Reschedule overwrites the schedule of any non-terminal booking and marks
// it rescheduled. The OTP and meeting link are left untouched.
func (s *DefaultBookingService) Reschedule(ctx context.Context, bookingID, date, startTime, endTime, reason string) (*models.Booking, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, &models.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"}
	}
	if _, err := time.Parse("15:04", startTime); err != nil {
		return nil, &models.ValidationError{Field: "startTime", Message: "must be HH:MM"}
	}
	if _, err := time.Parse("15:04", endTime); err != nil {
		return nil, &models.ValidationError{Field: "endTime", Message: "must be HH:MM"}
	}

	set := map[string]interface{}{
		"date":      date,
		"startTime": startTime,
		"endTime":   endTime,
		"status":    models.BookingRescheduled,
	}
	if reason != "" {
		set["rescheduleReason"] = reason
	}

	ok, err := s.Repo.UpdateIfStatus(ctx, bookingID, nonTerminal, set)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.classifyTransitionLoss(ctx, bookingID, "reschedule")
	}

	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, b.StylistID, models.NotifyRescheduled,
		"Booking Rescheduled",
		fmt.Sprintf("Booking moved to %s at %s", b.Date, b.StartTime), b)
	return b, nil
}

// AddReview attaches a rating/review to a completed booking, inserts the
// canonical review row and synchronously recomputes the stylist aggregate.
// Only the booking's client may review.
func (s *DefaultBookingService) AddReview(ctx context.Context, bookingID, clientID string, rating int, reviewText string) (*models.Booking, error) {
	if rating < 1 || rating > 5 {
		return nil, &models.ValidationError{Field: "rating", Message: "must be between 1 and 5"}
	}

	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.ClientID != clientID {
		return nil, &models.ForbiddenError{Message: "only the booking's client may add a review"}
	}

	ok, err := s.Repo.UpdateIfStatus(ctx, bookingID,
		[]models.BookingStatus{models.BookingCompleted},
		map[string]interface{}{"rating": rating, "review": reviewText})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.classifyTransitionLoss(ctx, bookingID, "review")
	}

	if _, err := s.Reviews.Create(ctx, models.ReviewCreate{
		StylistID: b.StylistID,
		ClientID:  clientID,
		BookingID: bookingID,
		Rating:    rating,
		Text:      reviewText,
	}); err != nil {
		return nil, fmt.Errorf("failed to record review: %w", err)
	}

	return s.Repo.GetByID(ctx, bookingID)
}
