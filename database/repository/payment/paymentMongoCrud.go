package paymentRepo

import (
	"errors"
	"fmt"
	"time"

	"festoria/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new payment transaction document.
func (r *MongoPaymentTxRepo) Create(tx *models.PaymentTransaction) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, tx)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicatePending
		}
		return fmt.Errorf("failed to create payment transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a transaction by its unique ID.
func (r *MongoPaymentTxRepo) GetByID(id string) (*models.PaymentTransaction, error) {
	return r.findOne(bson.M{"id": id})
}

// GetByExternalRef retrieves a transaction by its gateway reference.
func (r *MongoPaymentTxRepo) GetByExternalRef(ref string) (*models.PaymentTransaction, error) {
	return r.findOne(bson.M{"external_ref": ref})
}

func (r *MongoPaymentTxRepo) findOne(filter bson.M) (*models.PaymentTransaction, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var tx models.PaymentTransaction
	if err := r.coll.FindOne(ctx, filter).Decode(&tx); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch payment transaction: %w", err)
	}
	return &tx, nil
}

// MarkCompleted finalizes a transaction after a successful verification.
func (r *MongoPaymentTxRepo) MarkCompleted(id string, gatewayPaymentID string, raw map[string]any) error {
	now := time.Now()
	update := bson.M{"$set": bson.M{
		"status":             models.TxCompleted,
		"gateway_payment_id": gatewayPaymentID,
		"raw_response":       raw,
		"completed_at":       now,
		"updated_at":         now,
	}}
	return r.updateOne(id, update)
}

// MarkFailed records a failed attempt with the gateway's reason.
func (r *MongoPaymentTxRepo) MarkFailed(id string, reason string, raw map[string]any) error {
	update := bson.M{"$set": bson.M{
		"status":         models.TxFailed,
		"failure_reason": reason,
		"raw_response":   raw,
		"updated_at":     time.Now(),
	}}
	return r.updateOne(id, update)
}

// MarkCancelled records a refund-driven cancellation of a completed transaction.
func (r *MongoPaymentTxRepo) MarkCancelled(id string, reason string) error {
	update := bson.M{"$set": bson.M{
		"status":         models.TxCancelled,
		"failure_reason": reason,
		"updated_at":     time.Now(),
	}}
	return r.updateOne(id, update)
}

func (r *MongoPaymentTxRepo) updateOne(id string, update bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update payment transaction %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
