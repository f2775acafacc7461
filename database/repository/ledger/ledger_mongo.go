package ledgerRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/sekharpasem/YouCanStyle-Api/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoLedgerRepo implements LedgerRepository using MongoDB.
type MongoLedgerRepo struct {
	paymentColl *mongo.Collection
	txnColl     *mongo.Collection
	payoutColl  *mongo.Collection
	methodColl  *mongo.Collection
	bookingColl *mongo.Collection
}

// NewMongoLedgerRepo constructs a new instance of MongoLedgerRepo.
func NewMongoLedgerRepo() *MongoLedgerRepo {
	db := database.DB()
	return &MongoLedgerRepo{
		paymentColl: db.Collection("payments"),
		txnColl:     db.Collection("transactions"),
		payoutColl:  db.Collection("payouts"),
		methodColl:  db.Collection("payment_methods"),
		bookingColl: db.Collection("bookings"),
	}
}

// EnsureIndexes creates indexes for ledger queries and the idempotency
// dedup index on payments.
func (repo *MongoLedgerRepo) EnsureIndexes(ctx context.Context) error {
	_, err := repo.paymentColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "bookingId", Value: 1}}},
		{Keys: bson.D{{Key: "stylistId", Value: 1}, {Key: "status", Value: 1}}},
		{
			Keys: bson.D{{Key: "clientId", Value: 1}, {Key: "idempotencyKey", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(
				bson.M{"idempotencyKey": bson.M{"$exists": true, "$type": "string"}},
			),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create payment indexes: %w", err)
	}

	_, err = repo.txnColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "paymentId", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create transaction indexes: %w", err)
	}

	_, err = repo.payoutColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "stylistId", Value: 1}, {Key: "status", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create payout indexes: %w", err)
	}

	_, err = repo.methodColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create payment method indexes: %w", err)
	}
	return nil
}

func (repo *MongoLedgerRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, 5*time.Second)
}

// runTransaction executes fn inside one Mongo session transaction.
func (repo *MongoLedgerRepo) runTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	client := repo.paymentColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}
	return nil
}
