package stylistRepo

import (
	"context"
	"fmt"

	"github.com/sekharpasem/YouCanStyle-Api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// InsertReview appends a review row. The stylist aggregate is recomputed by
// the review service after every insert or delete.
func (repo *MongoStylistRepo) InsertReview(ctx context.Context, review *models.Review) error {
	ctxWithTimeout, cancel := repo.withTimeout(ctx)
	defer cancel()

	if _, err := repo.reviewColl.InsertOne(ctxWithTimeout, review); err != nil {
		return fmt.Errorf("error inserting review: %w", err)
	}
	return nil
}

// GetReviewByID retrieves a single review row.
func (repo *MongoStylistRepo) GetReviewByID(ctx context.Context, reviewID string) (*models.Review, error) {
	ctxWithTimeout, cancel := repo.withTimeout(ctx)
	defer cancel()

	var review models.Review
	if err := repo.reviewColl.FindOne(ctxWithTimeout, bson.M{"id": reviewID}).Decode(&review); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &models.NotFoundError{Entity: "review", ID: reviewID}
		}
		return nil, fmt.Errorf("error fetching review %s: %w", reviewID, err)
	}
	return &review, nil
}

// ListReviews returns every review row for a stylist.
func (repo *MongoStylistRepo) ListReviews(ctx context.Context, stylistID string) ([]models.Review, error) {
	ctxWithTimeout, cancel := repo.withTimeout(ctx)
	defer cancel()

	cursor, err := repo.reviewColl.Find(ctxWithTimeout, bson.M{"stylistId": stylistID})
	if err != nil {
		return nil, fmt.Errorf("error listing reviews: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var reviews []models.Review
	if err := cursor.All(ctxWithTimeout, &reviews); err != nil {
		return nil, fmt.Errorf("error decoding reviews: %w", err)
	}
	return reviews, nil
}

// DeleteReview removes a review row.
func (repo *MongoStylistRepo) DeleteReview(ctx context.Context, reviewID string) error {
	ctxWithTimeout, cancel := repo.withTimeout(ctx)
	defer cancel()

	res, err := repo.reviewColl.DeleteOne(ctxWithTimeout, bson.M{"id": reviewID})
	if err != nil {
		return fmt.Errorf("error deleting review %s: %w", reviewID, err)
	}
	if res.DeletedCount == 0 {
		return &models.NotFoundError{Entity: "review", ID: reviewID}
	}
	return nil
}
