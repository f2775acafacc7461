package bookingRepo

import (
	"context"
	"fmt"

	"github.com/sekharpasem/YouCanStyle-Api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func applyFilter(query bson.M, filter models.BookingFilter) bson.M {
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	switch {
	case filter.DateFrom != "" && filter.DateTo != "":
		query["date"] = bson.M{"$gte": filter.DateFrom, "$lte": filter.DateTo}
	case filter.DateFrom != "":
		query["date"] = bson.M{"$gte": filter.DateFrom}
	case filter.DateTo != "":
		query["date"] = bson.M{"$lte": filter.DateTo}
	}
	return query
}

func (repo *MongoBookingRepo) list(ctx context.Context, query bson.M, filter models.BookingFilter, sort bson.D) ([]models.Booking, error) {
	ctxWithTimeout, cancel := repo.withTimeout(ctx)
	defer cancel()

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	opts := options.Find().SetSkip(filter.Skip).SetLimit(limit).SetSort(sort)
	cursor, err := repo.bookingColl.Find(ctxWithTimeout, applyFilter(query, filter), opts)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// ListForStylist returns a stylist's bookings, oldest date first.
func (repo *MongoBookingRepo) ListForStylist(ctx context.Context, stylistID string, filter models.BookingFilter) ([]models.Booking, error) {
	return repo.list(ctx, bson.M{"stylistId": stylistID}, filter, bson.D{{Key: "date", Value: 1}})
}

// ListForClient returns a client's bookings, newest date first.
func (repo *MongoBookingRepo) ListForClient(ctx context.Context, clientID string, filter models.BookingFilter) ([]models.Booking, error) {
	return repo.list(ctx, bson.M{"clientId": clientID}, filter, bson.D{{Key: "date", Value: -1}})
}
