package review

import (
	"context"

	"github.com/sekharpasem/YouCanStyle-Api/models"
)

// ReviewService owns the canonical review rows and the stylist rating
// aggregate derived from them.
type ReviewService interface {
	Create(ctx context.Context, in models.ReviewCreate) (*models.Review, error)
	ListForStylist(ctx context.Context, stylistID string) ([]models.Review, error)
	Delete(ctx context.Context, reviewID string) error

	// Recompute rebuilds the stylist's averageRating/reviewCount from the
	// review rows. It runs synchronously after every add or delete.
	Recompute(ctx context.Context, stylistID string) error
}
