package bookingRepo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the bookings collection.
func (r *MongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Per-party listings and stats.
		{
			Keys:    bson.D{{Key: "client_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("client_status_idx"),
		},
		{
			Keys:    bson.D{{Key: "provider_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("provider_status_idx"),
		},
		// Sweep queries scan by status + deadline.
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "auto_expiry_date", Value: 1}},
			Options: options.Index().SetName("status_auto_expiry_idx"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "payment_due_date", Value: 1}},
			Options: options.Index().SetName("status_payment_due_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
