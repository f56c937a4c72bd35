package paymentRepo

import (
	"errors"
	"fmt"
	"time"

	"festoria/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindActiveByBooking returns the booking's non-terminal transaction, if any.
// The unique pending index guarantees at most one exists.
func (r *MongoPaymentTxRepo) FindActiveByBooking(bookingID string) (*models.PaymentTransaction, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"booking_id": bookingID,
		"status":     models.TxPending,
	}
	var tx models.PaymentTransaction
	if err := r.coll.FindOne(ctx, filter).Decode(&tx); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch active transaction for booking %s: %w", bookingID, err)
	}
	return &tx, nil
}

// LatestCompletedByBooking returns the most recent completed transaction for
// the booking, used by refunds.
func (r *MongoPaymentTxRepo) LatestCompletedByBooking(bookingID string) (*models.PaymentTransaction, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"booking_id": bookingID,
		"status":     models.TxCompleted,
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "completed_at", Value: -1}})

	var tx models.PaymentTransaction
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&tx); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch completed transaction for booking %s: %w", bookingID, err)
	}
	return &tx, nil
}
