package bookingRepo

import (
	"errors"
	"fmt"
	"time"

	"festoria/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its unique ID.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	filter := bson.M{"id": id}
	if err := r.coll.FindOne(ctx, filter).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// ApplyTransition performs the compare-and-swap write that serializes
// concurrent transitions on one booking: the update only lands if the status
// field still matches what the caller read.
func (r *MongoBookingRepo) ApplyTransition(id string, expected models.BookingStatus, update bson.M) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": expected}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Booking
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err == nil {
		return &updated, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to update booking with id %s: %w", id, err)
	}

	// No match: either the booking is gone or its status moved under us.
	count, cErr := r.coll.CountDocuments(ctx, bson.M{"id": id})
	if cErr != nil {
		return nil, fmt.Errorf("failed to check booking with id %s: %w", id, cErr)
	}
	if count == 0 {
		return nil, ErrNotFound
	}
	return nil, ErrStatusConflict
}

// SetPaymentStatus updates only the payment_status field of a booking.
func (r *MongoBookingRepo) SetPaymentStatus(id string, status models.PaymentStatus) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{"$set": bson.M{
		"payment_status": status,
		"updated_at":     time.Now(),
	}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update payment status for booking %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
