package ledgerRepo

import (
	"context"
	"fmt"

	"github.com/sekharpasem/YouCanStyle-Api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// InsertPaymentMethod stores a redacted payment instrument. When the new
// method is flagged default, every other method of the user is unset first
// in the same transaction so at most one default survives.
func (repo *MongoLedgerRepo) InsertPaymentMethod(ctx context.Context, method *models.PaymentMethod) error {
	if !method.IsDefault {
		ctxWithTimeout, cancel := repo.withTimeout(ctx)
		defer cancel()
		if _, err := repo.methodColl.InsertOne(ctxWithTimeout, method); err != nil {
			return fmt.Errorf("insert payment method failed: %w", err)
		}
		return nil
	}

	return repo.runTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := repo.methodColl.UpdateMany(sc,
			bson.M{"userId": method.UserID},
			bson.M{"$set": bson.M{"isDefault": false}},
		); err != nil {
			return fmt.Errorf("reset default payment methods failed: %w", err)
		}
		if _, err := repo.methodColl.InsertOne(sc, method); err != nil {
			return fmt.Errorf("insert payment method failed: %w", err)
		}
		return nil
	})
}

// GetPaymentMethodByID retrieves a stored payment method.
func (repo *MongoLedgerRepo) GetPaymentMethodByID(ctx context.Context, methodID string) (*models.PaymentMethod, error) {
	ctxWithTimeout, cancel := repo.withTimeout(ctx)
	defer cancel()

	var method models.PaymentMethod
	if err := repo.methodColl.FindOne(ctxWithTimeout, bson.M{"id": methodID}).Decode(&method); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &models.NotFoundError{Entity: "payment method", ID: methodID}
		}
		return nil, fmt.Errorf("error fetching payment method %s: %w", methodID, err)
	}
	return &method, nil
}

// ListPaymentMethods returns all stored methods for a user.
func (repo *MongoLedgerRepo) ListPaymentMethods(ctx context.Context, userID string) ([]models.PaymentMethod, error) {
	ctxWithTimeout, cancel := repo.withTimeout(ctx)
	defer cancel()

	cursor, err := repo.methodColl.Find(ctxWithTimeout, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("error listing payment methods: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var methods []models.PaymentMethod
	if err := cursor.All(ctxWithTimeout, &methods); err != nil {
		return nil, fmt.Errorf("error decoding payment methods: %w", err)
	}
	return methods, nil
}

// DeletePaymentMethod removes a stored method owned by the user.
func (repo *MongoLedgerRepo) DeletePaymentMethod(ctx context.Context, methodID, userID string) error {
	ctxWithTimeout, cancel := repo.withTimeout(ctx)
	defer cancel()

	res, err := repo.methodColl.DeleteOne(ctxWithTimeout, bson.M{"id": methodID, "userId": userID})
	if err != nil {
		return fmt.Errorf("error deleting payment method %s: %w", methodID, err)
	}
	if res.DeletedCount == 0 {
		return &models.NotFoundError{Entity: "payment method", ID: methodID}
	}
	return nil
}

// SetDefaultPaymentMethod flips the default flag to the given method,
// clearing it everywhere else for the user in the same transaction.
func (repo *MongoLedgerRepo) SetDefaultPaymentMethod(ctx context.Context, methodID, userID string) error {
	return repo.runTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := repo.methodColl.UpdateMany(sc,
			bson.M{"userId": userID},
			bson.M{"$set": bson.M{"isDefault": false}},
		); err != nil {
			return fmt.Errorf("reset default payment methods failed: %w", err)
		}
		res, err := repo.methodColl.UpdateOne(sc,
			bson.M{"id": methodID, "userId": userID},
			bson.M{"$set": bson.M{"isDefault": true}},
		)
		if err != nil {
			return fmt.Errorf("set default payment method failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return &models.NotFoundError{Entity: "payment method", ID: methodID}
		}
		return nil
	})
}
