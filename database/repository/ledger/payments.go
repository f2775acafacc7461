package ledgerRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/sekharpasem/YouCanStyle-Api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CapturePayment persists a completed capture as one logical unit: the
// payment row, both ledger rows, and the booking paymentStatus update with
// the pending→confirmed promotion.
func (repo *MongoLedgerRepo) CapturePayment(ctx context.Context, payment *models.Payment, clientRow, feeRow *models.Transaction) error {
	return repo.runTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := repo.paymentColl.InsertOne(sc, payment); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return &models.InvalidStateError{
					Entity:  "payment",
					ID:      payment.IdempotencyKey,
					Message: "duplicate capture for idempotency key",
				}
			}
			return fmt.Errorf("insert payment failed: %w", err)
		}
		if _, err := repo.txnColl.InsertOne(sc, clientRow); err != nil {
			return fmt.Errorf("insert payment transaction failed: %w", err)
		}
		if _, err := repo.txnColl.InsertOne(sc, feeRow); err != nil {
			return fmt.Errorf("insert fee transaction failed: %w", err)
		}

		now := time.Now().UTC()
		// The promotion is folded into the same conditional write; a booking
		// past pending only gets its paymentStatus stamped.
		res, err := repo.bookingColl.UpdateOne(sc,
			bson.M{"id": payment.BookingID, "status": models.BookingPending},
			bson.M{"$set": bson.M{
				"paymentStatus": models.PaymentStateCompleted,
				"status":        models.BookingConfirmed,
				"updatedAt":     now,
			}},
		)
		if err != nil {
			return fmt.Errorf("update booking payment status failed: %w", err)
		}
		if res.MatchedCount == 0 {
			res, err = repo.bookingColl.UpdateOne(sc,
				bson.M{"id": payment.BookingID},
				bson.M{"$set": bson.M{"paymentStatus": models.PaymentStateCompleted, "updatedAt": now}},
			)
			if err != nil {
				return fmt.Errorf("update booking payment status failed: %w", err)
			}
			if res.MatchedCount == 0 {
				return &models.NotFoundError{Entity: "booking", ID: payment.BookingID}
			}
		}
		return nil
	})
}

// RecordFailedPayment persists the audit row for a failed capture attempt.
// The booking is left untouched so the capture remains retryable.
func (repo *MongoLedgerRepo) RecordFailedPayment(ctx context.Context, payment *models.Payment) error {
	ctxWithTimeout, cancel := repo.withTimeout(ctx)
	defer cancel()

	if _, err := repo.paymentColl.InsertOne(ctxWithTimeout, payment); err != nil {
		return fmt.Errorf("insert failed payment record: %w", err)
	}
	return nil
}

// RefundPayment marks the payment refunded, appends the refund ledger row and
// flips the linked booking to refunded, all in one transaction.
func (repo *MongoLedgerRepo) RefundPayment(ctx context.Context, paymentID, refundTransactionID, reason string, refundRow *models.Transaction) error {
	return repo.runTransaction(ctx, func(sc mongo.SessionContext) error {
		now := time.Now().UTC()
		res, err := repo.paymentColl.UpdateOne(sc,
			bson.M{"id": paymentID, "status": models.PaymentCompleted},
			bson.M{"$set": bson.M{
				"status":              models.PaymentRefunded,
				"refundTransactionId": refundTransactionID,
				"refundReason":        reason,
				"updatedAt":           now,
			}},
		)
		if err != nil {
			return fmt.Errorf("update payment to refunded failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return &models.InvalidStateError{Entity: "payment", ID: paymentID, Message: "payment is not in completed status"}
		}

		if _, err := repo.txnColl.InsertOne(sc, refundRow); err != nil {
			return fmt.Errorf("insert refund transaction failed: %w", err)
		}

		if _, err := repo.bookingColl.UpdateOne(sc,
			bson.M{"id": refundRow.BookingID},
			bson.M{"$set": bson.M{"paymentStatus": models.PaymentStateRefunded, "updatedAt": now}},
		); err != nil {
			return fmt.Errorf("update booking to refunded failed: %w", err)
		}
		return nil
	})
}

// GetPaymentByID retrieves a payment by its ID.
func (repo *MongoLedgerRepo) GetPaymentByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	ctxWithTimeout, cancel := repo.withTimeout(ctx)
	defer cancel()

	var payment models.Payment
	if err := repo.paymentColl.FindOne(ctxWithTimeout, bson.M{"id": paymentID}).Decode(&payment); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &models.NotFoundError{Entity: "payment", ID: paymentID}
		}
		return nil, fmt.Errorf("error fetching payment %s: %w", paymentID, err)
	}
	return &payment, nil
}

// GetBookingPayment retrieves the completed payment linked to a booking.
func (repo *MongoLedgerRepo) GetBookingPayment(ctx context.Context, bookingID string) (*models.Payment, error) {
	ctxWithTimeout, cancel := repo.withTimeout(ctx)
	defer cancel()

	var payment models.Payment
	filter := bson.M{"bookingId": bookingID, "status": bson.M{"$ne": models.PaymentFailed}}
	if err := repo.paymentColl.FindOne(ctxWithTimeout, filter).Decode(&payment); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &models.NotFoundError{Entity: "payment for booking", ID: bookingID}
		}
		return nil, fmt.Errorf("error fetching payment for booking %s: %w", bookingID, err)
	}
	return &payment, nil
}

// FindPaymentByIdempotencyKey looks up a capture previously performed under
// the same client-supplied idempotency key.
func (repo *MongoLedgerRepo) FindPaymentByIdempotencyKey(ctx context.Context, clientID, key string) (*models.Payment, error) {
	ctxWithTimeout, cancel := repo.withTimeout(ctx)
	defer cancel()

	var payment models.Payment
	filter := bson.M{"clientId": clientID, "idempotencyKey": key}
	if err := repo.paymentColl.FindOne(ctxWithTimeout, filter).Decode(&payment); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &models.NotFoundError{Entity: "payment", ID: key}
		}
		return nil, fmt.Errorf("error fetching payment by idempotency key: %w", err)
	}
	return &payment, nil
}
