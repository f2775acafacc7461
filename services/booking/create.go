package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/sekharpasem/YouCanStyle-Api/models"
	"github.com/sekharpasem/YouCanStyle-Api/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func validateCreate(in models.BookingCreate) error {
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return &models.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"}
	}
	if _, err := time.Parse("15:04", in.StartTime); err != nil {
		return &models.ValidationError{Field: "startTime", Message: "must be HH:MM"}
	}
	if _, err := time.Parse("15:04", in.EndTime); err != nil {
		return &models.ValidationError{Field: "endTime", Message: "must be HH:MM"}
	}
	if in.Price <= 0 {
		return &models.ValidationError{Field: "price", Message: "must be positive"}
	}
	if in.Duration <= 0 {
		return &models.ValidationError{Field: "duration", Message: "must be positive"}
	}
	if len(in.Services) == 0 {
		return &models.ValidationError{Field: "services", Message: "must not be empty"}
	}
	return nil
}

// Create validates the target stylist, snapshots the client's display
// fields, issues the session OTP (and a meeting link for online sessions)
// and persists the booking as pending/pending.
func (s *DefaultBookingService) Create(ctx context.Context, in models.BookingCreate, clientID string) (*models.Booking, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	if in.IdempotencyKey != "" {
		if existing, err := s.Repo.FindByIdempotencyKey(ctx, clientID, in.IdempotencyKey); err == nil {
			return existing, nil
		} else if !models.IsNotFound(err) {
			return nil, err
		}
	}

	exists, err := s.Stylists.Exists(ctx, in.StylistID)
	if err != nil {
		return nil, fmt.Errorf("failed to check stylist: %w", err)
	}
	if !exists {
		return nil, &models.NotFoundError{Entity: "stylist", ID: in.StylistID}
	}

	client, err := s.Users.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	otp, err := utils.GenerateNumericOTP(4)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session OTP: %w", err)
	}

	now := time.Now().UTC()
	b := &models.Booking{
		ID:              uuid.New().String(),
		StylistID:       in.StylistID,
		ClientID:        clientID,
		ClientName:      client.FullName,
		ClientImage:     client.ProfileImage,
		Date:            in.Date,
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		Services:        in.Services,
		Price:           in.Price,
		Duration:        in.Duration,
		IsOnlineSession: in.IsOnlineSession,
		Location:        in.Location,
		Coordinates:     in.Coordinates,
		Notes:           in.Notes,
		Status:          models.BookingPending,
		PaymentStatus:   models.PaymentStatePending,
		OtpCode:         otp,
		OtpExpiresAt:    now.Add(s.OTPTTL),
		IdempotencyKey:  in.IdempotencyKey,
		CreatedAt:       now,
	}

	if in.IsOnlineSession {
		link, err := utils.GenerateMeetingLink(s.MeetingLinkBase)
		if err != nil {
			return nil, fmt.Errorf("failed to generate meeting link: %w", err)
		}
		b.MeetingLink = link
	}

	created, err := s.Repo.Create(ctx, b)
	if err != nil {
		return nil, err
	}

	s.logger().Info("booking created",
		zap.String("bookingId", created.ID),
		zap.String("stylistId", created.StylistID),
		zap.String("clientId", clientID),
	)
	return created, nil
}
