package ledgerRepo

import (
	"context"
	"fmt"

	"github.com/sekharpasem/YouCanStyle-Api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// availableBalance computes completed earnings minus already-pending payouts
// for a stylist, inside the given (possibly session) context.
func (repo *MongoLedgerRepo) availableBalance(ctx context.Context, stylistID string) (float64, error) {
	earnings, err := repo.sumStylistEarnings(ctx, stylistID)
	if err != nil {
		return 0, err
	}
	pending, err := repo.sumPendingPayouts(ctx, stylistID)
	if err != nil {
		return 0, err
	}
	return earnings - pending, nil
}

// CreatePayout verifies the requested amount against the stylist's available
// balance and inserts the payout plus its ledger row in one transaction, so
// two concurrent requests cannot both withdraw the same earnings.
func (repo *MongoLedgerRepo) CreatePayout(ctx context.Context, payout *models.Payout, payoutRow *models.Transaction) error {
	return repo.runTransaction(ctx, func(sc mongo.SessionContext) error {
		available, err := repo.availableBalance(sc, payout.StylistID)
		if err != nil {
			return err
		}
		if payout.Amount > available {
			return &models.InvalidStateError{
				Entity:  "payout",
				ID:      payout.ID,
				Message: fmt.Sprintf("requested amount %.2f exceeds available balance %.2f", payout.Amount, available),
			}
		}

		if _, err := repo.payoutColl.InsertOne(sc, payout); err != nil {
			return fmt.Errorf("insert payout failed: %w", err)
		}
		if _, err := repo.txnColl.InsertOne(sc, payoutRow); err != nil {
			return fmt.Errorf("insert payout transaction failed: %w", err)
		}
		return nil
	})
}

// ListStylistPayouts returns a stylist's payouts, newest first.
func (repo *MongoLedgerRepo) ListStylistPayouts(ctx context.Context, stylistID string, skip, limit int64) ([]models.Payout, error) {
	ctxWithTimeout, cancel := repo.withTimeout(ctx)
	defer cancel()

	cursor, err := repo.payoutColl.Find(ctxWithTimeout,
		bson.M{"stylistId": stylistID},
		listOpts(skip, limit, bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("error listing payouts: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var payouts []models.Payout
	if err := cursor.All(ctxWithTimeout, &payouts); err != nil {
		return nil, fmt.Errorf("error decoding payouts: %w", err)
	}
	return payouts, nil
}
