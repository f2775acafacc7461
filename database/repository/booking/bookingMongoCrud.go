package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/sekharpasem/YouCanStyle-Api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new booking document. If the insert collides on the
// idempotency index, the previously created booking is returned instead.
func (repo *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	ctxWithTimeout, cancel := repo.withTimeout(ctx)
	defer cancel()

	_, err := repo.bookingColl.InsertOne(ctxWithTimeout, booking)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) && booking.IdempotencyKey != "" {
			return repo.FindByIdempotencyKey(ctx, booking.ClientID, booking.IdempotencyKey)
		}
		return nil, fmt.Errorf("error creating booking: %w", err)
	}
	return booking, nil
}

// GetByID retrieves a booking by its ID.
func (repo *MongoBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctxWithTimeout, cancel := repo.withTimeout(ctx)
	defer cancel()

	var booking models.Booking
	err := repo.bookingColl.FindOne(ctxWithTimeout, bson.M{"id": bookingID}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &models.NotFoundError{Entity: "booking", ID: bookingID}
		}
		return nil, fmt.Errorf("error fetching booking %s: %w", bookingID, err)
	}
	return &booking, nil
}

// FindByIdempotencyKey looks up a booking previously created under the same
// client-supplied idempotency key.
func (repo *MongoBookingRepo) FindByIdempotencyKey(ctx context.Context, clientID, key string) (*models.Booking, error) {
	ctxWithTimeout, cancel := repo.withTimeout(ctx)
	defer cancel()

	var booking models.Booking
	filter := bson.M{"clientId": clientID, "idempotencyKey": key}
	if err := repo.bookingColl.FindOne(ctxWithTimeout, filter).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &models.NotFoundError{Entity: "booking", ID: key}
		}
		return nil, fmt.Errorf("error fetching booking by idempotency key: %w", err)
	}
	return &booking, nil
}

// Patch merges the provided fields into the booking document and stamps
// updatedAt. Omitted fields are never touched.
func (repo *MongoBookingRepo) Patch(ctx context.Context, bookingID string, set map[string]interface{}) error {
	ctxWithTimeout, cancel := repo.withTimeout(ctx)
	defer cancel()

	set["updatedAt"] = time.Now().UTC()
	res, err := repo.bookingColl.UpdateOne(ctxWithTimeout, bson.M{"id": bookingID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("error updating booking %s: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return &models.NotFoundError{Entity: "booking", ID: bookingID}
	}
	return nil
}

// UpdateIfStatus applies set only when the booking's status is one of expect.
func (repo *MongoBookingRepo) UpdateIfStatus(ctx context.Context, bookingID string, expect []models.BookingStatus, set map[string]interface{}) (bool, error) {
	ctxWithTimeout, cancel := repo.withTimeout(ctx)
	defer cancel()

	set["updatedAt"] = time.Now().UTC()
	filter := bson.M{
		"id":     bookingID,
		"status": bson.M{"$in": expect},
	}
	res, err := repo.bookingColl.UpdateOne(ctxWithTimeout, filter, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("error transitioning booking %s: %w", bookingID, err)
	}
	return res.MatchedCount > 0, nil
}

// StartSession performs the confirmed→inProgress transition in a single
// conditional update: the stored OTP must match, be unconsumed and unexpired.
// The code is marked consumed in the same write, so a replay can never win.
func (repo *MongoBookingRepo) StartSession(ctx context.Context, bookingID, otpCode string, now time.Time) (bool, error) {
	ctxWithTimeout, cancel := repo.withTimeout(ctx)
	defer cancel()

	filter := bson.M{
		"id":           bookingID,
		"status":       models.BookingConfirmed,
		"otpCode":      otpCode,
		"otpConsumed":  false,
		"otpExpiresAt": bson.M{"$gt": now},
	}
	update := bson.M{"$set": bson.M{
		"status":      models.BookingInProgress,
		"otpConsumed": true,
		"updatedAt":   now,
	}}
	res, err := repo.bookingColl.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return false, fmt.Errorf("error starting session for booking %s: %w", bookingID, err)
	}
	return res.MatchedCount > 0, nil
}

// SetPaymentStatus stamps the booking's payment status. When promoteIfPending
// is set, a still-pending booking is promoted to confirmed in the same write.
func (repo *MongoBookingRepo) SetPaymentStatus(ctx context.Context, bookingID string, status models.PaymentState, promoteIfPending bool) error {
	ctxWithTimeout, cancel := repo.withTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()
	if promoteIfPending {
		filter := bson.M{"id": bookingID, "status": models.BookingPending}
		update := bson.M{"$set": bson.M{
			"paymentStatus": status,
			"status":        models.BookingConfirmed,
			"updatedAt":     now,
		}}
		res, err := repo.bookingColl.UpdateOne(ctxWithTimeout, filter, update)
		if err != nil {
			return fmt.Errorf("error promoting booking %s: %w", bookingID, err)
		}
		if res.MatchedCount > 0 {
			return nil
		}
	}

	res, err := repo.bookingColl.UpdateOne(ctxWithTimeout,
		bson.M{"id": bookingID},
		bson.M{"$set": bson.M{"paymentStatus": status, "updatedAt": now}},
	)
	if err != nil {
		return fmt.Errorf("error setting payment status on booking %s: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return &models.NotFoundError{Entity: "booking", ID: bookingID}
	}
	return nil
}
