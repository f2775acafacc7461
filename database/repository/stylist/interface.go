package stylistRepo

import (
	"context"

	"github.com/sekharpasem/YouCanStyle-Api/models"
)

// StylistRepository is the persistence contract for stylist profiles, their
// service catalog and the canonical review rows.
type StylistRepository interface {
	GetByID(ctx context.Context, stylistID string) (*models.Stylist, error)
	Exists(ctx context.Context, stylistID string) (bool, error)

	// SetRating writes the derived rating aggregate onto the stylist record.
	SetRating(ctx context.Context, stylistID string, averageRating float64, reviewCount int) error
	// SetDisplayedPrice writes the derived catalog price onto the stylist record.
	SetDisplayedPrice(ctx context.Context, stylistID string, price int) error

	AddService(ctx context.Context, stylistID string, svc models.StylistService) error
	UpdateService(ctx context.Context, stylistID string, svc models.StylistService) error
	DeactivateService(ctx context.Context, stylistID, serviceID string) error

	InsertReview(ctx context.Context, review *models.Review) error
	GetReviewByID(ctx context.Context, reviewID string) (*models.Review, error)
	ListReviews(ctx context.Context, stylistID string) ([]models.Review, error)
	DeleteReview(ctx context.Context, reviewID string) error
}
