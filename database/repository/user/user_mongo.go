package userRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/sekharpasem/YouCanStyle-Api/database"
	"github.com/sekharpasem/YouCanStyle-Api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository is the read-only directory the booking flows use to
// validate and snapshot client identities. Account management lives with the
// external identity provider.
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	Exists(ctx context.Context, userID string) (bool, error)
}

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	userColl *mongo.Collection
}

// NewMongoUserRepo constructs a new instance of MongoUserRepo.
func NewMongoUserRepo() *MongoUserRepo {
	return &MongoUserRepo{
		userColl: database.DB().Collection("users"),
	}
}

// GetByID retrieves a user document by ID.
func (repo *MongoUserRepo) GetByID(ctx context.Context, userID string) (*models.User, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	if err := repo.userColl.FindOne(ctxWithTimeout, bson.M{"id": userID}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &models.NotFoundError{Entity: "user", ID: userID}
		}
		return nil, fmt.Errorf("error fetching user %s: %w", userID, err)
	}
	return &user, nil
}

// Exists reports whether a user document exists, without decoding it.
func (repo *MongoUserRepo) Exists(ctx context.Context, userID string) (bool, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := repo.userColl.CountDocuments(ctxWithTimeout, bson.M{"id": userID})
	if err != nil {
		return false, fmt.Errorf("error checking user %s: %w", userID, err)
	}
	return count > 0, nil
}
