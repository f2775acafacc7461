package stylistRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/sekharpasem/YouCanStyle-Api/database"
	"github.com/sekharpasem/YouCanStyle-Api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoStylistRepo implements StylistRepository using MongoDB.
type MongoStylistRepo struct {
	stylistColl *mongo.Collection
	reviewColl  *mongo.Collection
}

// NewMongoStylistRepo constructs a new instance of MongoStylistRepo.
func NewMongoStylistRepo() *MongoStylistRepo {
	db := database.DB()
	return &MongoStylistRepo{
		stylistColl: db.Collection("stylists"),
		reviewColl:  db.Collection("stylist_reviews"),
	}
}

func (repo *MongoStylistRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, 5*time.Second)
}

// GetByID retrieves a stylist document by ID.
func (repo *MongoStylistRepo) GetByID(ctx context.Context, stylistID string) (*models.Stylist, error) {
	ctxWithTimeout, cancel := repo.withTimeout(ctx)
	defer cancel()

	var stylist models.Stylist
	if err := repo.stylistColl.FindOne(ctxWithTimeout, bson.M{"id": stylistID}).Decode(&stylist); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &models.NotFoundError{Entity: "stylist", ID: stylistID}
		}
		return nil, fmt.Errorf("error fetching stylist %s: %w", stylistID, err)
	}
	return &stylist, nil
}

// Exists reports whether a stylist document exists, without decoding it.
func (repo *MongoStylistRepo) Exists(ctx context.Context, stylistID string) (bool, error) {
	ctxWithTimeout, cancel := repo.withTimeout(ctx)
	defer cancel()

	count, err := repo.stylistColl.CountDocuments(ctxWithTimeout, bson.M{"id": stylistID})
	if err != nil {
		return false, fmt.Errorf("error checking stylist %s: %w", stylistID, err)
	}
	return count > 0, nil
}

// SetRating writes the derived rating aggregate onto the stylist record.
func (repo *MongoStylistRepo) SetRating(ctx context.Context, stylistID string, averageRating float64, reviewCount int) error {
	ctxWithTimeout, cancel := repo.withTimeout(ctx)
	defer cancel()

	res, err := repo.stylistColl.UpdateOne(ctxWithTimeout,
		bson.M{"id": stylistID},
		bson.M{"$set": bson.M{
			"rating":      averageRating,
			"reviewCount": reviewCount,
			"updatedAt":   time.Now().UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("error updating stylist rating: %w", err)
	}
	if res.MatchedCount == 0 {
		return &models.NotFoundError{Entity: "stylist", ID: stylistID}
	}
	return nil
}

// SetDisplayedPrice writes the derived catalog price onto the stylist record.
func (repo *MongoStylistRepo) SetDisplayedPrice(ctx context.Context, stylistID string, price int) error {
	ctxWithTimeout, cancel := repo.withTimeout(ctx)
	defer cancel()

	res, err := repo.stylistColl.UpdateOne(ctxWithTimeout,
		bson.M{"id": stylistID},
		bson.M{"$set": bson.M{"price": price, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("error updating stylist price: %w", err)
	}
	if res.MatchedCount == 0 {
		return &models.NotFoundError{Entity: "stylist", ID: stylistID}
	}
	return nil
}

// AddService appends a catalog entry to the stylist's service list.
func (repo *MongoStylistRepo) AddService(ctx context.Context, stylistID string, svc models.StylistService) error {
	ctxWithTimeout, cancel := repo.withTimeout(ctx)
	defer cancel()

	res, err := repo.stylistColl.UpdateOne(ctxWithTimeout,
		bson.M{"id": stylistID},
		bson.M{
			"$push": bson.M{"services": svc},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("error adding stylist service: %w", err)
	}
	if res.MatchedCount == 0 {
		return &models.NotFoundError{Entity: "stylist", ID: stylistID}
	}
	return nil
}

// UpdateService replaces a catalog entry in place.
func (repo *MongoStylistRepo) UpdateService(ctx context.Context, stylistID string, svc models.StylistService) error {
	ctxWithTimeout, cancel := repo.withTimeout(ctx)
	defer cancel()

	res, err := repo.stylistColl.UpdateOne(ctxWithTimeout,
		bson.M{"id": stylistID, "services.id": svc.ID},
		bson.M{"$set": bson.M{"services.$": svc, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("error updating stylist service: %w", err)
	}
	if res.MatchedCount == 0 {
		return &models.NotFoundError{Entity: "stylist service", ID: svc.ID}
	}
	return nil
}

// DeactivateService flips a catalog entry inactive without removing it.
func (repo *MongoStylistRepo) DeactivateService(ctx context.Context, stylistID, serviceID string) error {
	ctxWithTimeout, cancel := repo.withTimeout(ctx)
	defer cancel()

	res, err := repo.stylistColl.UpdateOne(ctxWithTimeout,
		bson.M{"id": stylistID, "services.id": serviceID},
		bson.M{"$set": bson.M{"services.$.active": false, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("error deactivating stylist service: %w", err)
	}
	if res.MatchedCount == 0 {
		return &models.NotFoundError{Entity: "stylist service", ID: serviceID}
	}
	return nil
}
