package paymentRepo

import (
	"fmt"
	"time"

	"festoria/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the payment_transactions
// collection. The partial unique index enforces at most one pending
// transaction per booking at the storage layer.
func (r *MongoPaymentTxRepo) EnsureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "external_ref", Value: 1}},
			Options: options.Index().SetName("external_ref_idx").SetSparse(true),
		},
		{
			Keys: bson.D{{Key: "booking_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("one_pending_per_booking").
				SetPartialFilterExpression(bson.M{"status": models.TxPending}),
		},
		{
			Keys:    bson.D{{Key: "booking_id", Value: 1}, {Key: "completed_at", Value: -1}},
			Options: options.Index().SetName("booking_completed_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create payment transaction indexes: %w", err)
	}
	return nil
}
