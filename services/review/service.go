package review

import (
	"context"
	"fmt"
	"math"
	"time"

	stylistRepo "github.com/sekharpasem/YouCanStyle-Api/database/repository/stylist"
	"github.com/sekharpasem/YouCanStyle-Api/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultReviewService is the production implementation of ReviewService.
type DefaultReviewService struct {
	Stylists stylistRepo.StylistRepository
	Logger   *zap.Logger
}

// Create validates and persists a review row, then recomputes the stylist's
// rating aggregate.
func (s *DefaultReviewService) Create(ctx context.Context, in models.ReviewCreate) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, &models.ValidationError{Field: "rating", Message: "must be between 1 and 5"}
	}

	exists, err := s.Stylists.Exists(ctx, in.StylistID)
	if err != nil {
		return nil, fmt.Errorf("failed to check stylist: %w", err)
	}
	if !exists {
		return nil, &models.NotFoundError{Entity: "stylist", ID: in.StylistID}
	}

	rev := &models.Review{
		ID:        uuid.New().String(),
		StylistID: in.StylistID,
		ClientID:  in.ClientID,
		BookingID: in.BookingID,
		Rating:    in.Rating,
		Text:      in.Text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Stylists.InsertReview(ctx, rev); err != nil {
		return nil, err
	}

	if err := s.Recompute(ctx, in.StylistID); err != nil {
		return nil, err
	}
	return rev, nil
}

// ListForStylist returns all review rows for a stylist.
func (s *DefaultReviewService) ListForStylist(ctx context.Context, stylistID string) ([]models.Review, error) {
	return s.Stylists.ListReviews(ctx, stylistID)
}

// Delete removes a review row and recomputes the stylist's rating aggregate.
func (s *DefaultReviewService) Delete(ctx context.Context, reviewID string) error {
	rev, err := s.Stylists.GetReviewByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if err := s.Stylists.DeleteReview(ctx, reviewID); err != nil {
		return err
	}
	return s.Recompute(ctx, rev.StylistID)
}

// Recompute rebuilds averageRating (mean rounded to one decimal) and
// reviewCount from the review rows. Zero reviews resets both to zero rather
// than leaving stale values.
func (s *DefaultReviewService) Recompute(ctx context.Context, stylistID string) error {
	reviews, err := s.Stylists.ListReviews(ctx, stylistID)
	if err != nil {
		return fmt.Errorf("failed to load reviews for recompute: %w", err)
	}

	if len(reviews) == 0 {
		return s.Stylists.SetRating(ctx, stylistID, 0.0, 0)
	}

	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	avg := math.Round(float64(total)/float64(len(reviews))*10) / 10

	s.logger().Debug("recomputed stylist rating",
		zap.String("stylistId", stylistID),
		zap.Float64("averageRating", avg),
		zap.Int("reviewCount", len(reviews)),
	)
	return s.Stylists.SetRating(ctx, stylistID, avg, len(reviews))
}

func (s *DefaultReviewService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}
