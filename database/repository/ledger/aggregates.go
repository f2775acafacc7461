package ledgerRepo

import (
	"context"
	"fmt"

	"github.com/sekharpasem/YouCanStyle-Api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func listOpts(skip, limit int64, sort bson.D) *options.FindOptions {
	if limit <= 0 {
		limit = 20
	}
	return options.Find().SetSkip(skip).SetLimit(limit).SetSort(sort)
}

// sumStylistEarnings sums stylistAmount over all completed payments.
func (repo *MongoLedgerRepo) sumStylistEarnings(ctx context.Context, stylistID string) (float64, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"stylistId": stylistID, "status": models.PaymentCompleted}},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$stylistAmount"}}},
	}
	cursor, err := repo.paymentColl.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("error aggregating stylist earnings: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("error decoding earnings aggregate: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

// sumPendingPayouts sums the amount of all pending payouts.
func (repo *MongoLedgerRepo) sumPendingPayouts(ctx context.Context, stylistID string) (float64, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"stylistId": stylistID, "status": models.PaymentPending}},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}},
	}
	cursor, err := repo.payoutColl.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("error aggregating pending payouts: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("error decoding payout aggregate: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

// Statistics aggregates the stylist's ledger position. Always computed from
// the live collections, never cached.
func (repo *MongoLedgerRepo) Statistics(ctx context.Context, stylistID string) (*models.PaymentStatistics, error) {
	ctxWithTimeout, cancel := repo.withTimeout(ctx)
	defer cancel()

	earnings, err := repo.sumStylistEarnings(ctxWithTimeout, stylistID)
	if err != nil {
		return nil, err
	}
	pending, err := repo.sumPendingPayouts(ctxWithTimeout, stylistID)
	if err != nil {
		return nil, err
	}

	total, err := repo.bookingColl.CountDocuments(ctxWithTimeout, bson.M{"stylistId": stylistID})
	if err != nil {
		return nil, fmt.Errorf("error counting bookings: %w", err)
	}
	completed, err := repo.bookingColl.CountDocuments(ctxWithTimeout,
		bson.M{"stylistId": stylistID, "status": models.BookingCompleted})
	if err != nil {
		return nil, fmt.Errorf("error counting completed bookings: %w", err)
	}

	return &models.PaymentStatistics{
		TotalEarnings:     earnings,
		PendingPayouts:    pending,
		TotalBookings:     total,
		CompletedBookings: completed,
	}, nil
}

// ListClientPayments returns payments made by a client, newest first.
func (repo *MongoLedgerRepo) ListClientPayments(ctx context.Context, clientID string, skip, limit int64) ([]models.Payment, error) {
	return repo.listPayments(ctx, bson.M{"clientId": clientID}, skip, limit)
}

// ListStylistPayments returns payments received by a stylist, newest first.
func (repo *MongoLedgerRepo) ListStylistPayments(ctx context.Context, stylistID string, skip, limit int64) ([]models.Payment, error) {
	return repo.listPayments(ctx, bson.M{"stylistId": stylistID}, skip, limit)
}

func (repo *MongoLedgerRepo) listPayments(ctx context.Context, filter bson.M, skip, limit int64) ([]models.Payment, error) {
	ctxWithTimeout, cancel := repo.withTimeout(ctx)
	defer cancel()

	cursor, err := repo.paymentColl.Find(ctxWithTimeout, filter,
		listOpts(skip, limit, bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("error listing payments: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var payments []models.Payment
	if err := cursor.All(ctxWithTimeout, &payments); err != nil {
		return nil, fmt.Errorf("error decoding payments: %w", err)
	}
	return payments, nil
}

// ListUserTransactions returns the ledger rows attributed to a user, newest
// first. Transaction rows are immutable once written.
func (repo *MongoLedgerRepo) ListUserTransactions(ctx context.Context, userID string, skip, limit int64) ([]models.Transaction, error) {
	ctxWithTimeout, cancel := repo.withTimeout(ctx)
	defer cancel()

	cursor, err := repo.txnColl.Find(ctxWithTimeout,
		bson.M{"userId": userID},
		listOpts(skip, limit, bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("error listing transactions: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var txns []models.Transaction
	if err := cursor.All(ctxWithTimeout, &txns); err != nil {
		return nil, fmt.Errorf("error decoding transactions: %w", err)
	}
	return txns, nil
}
