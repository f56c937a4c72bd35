package paymentRepo

import (
	"context"
	"errors"
	"time"

	"festoria/database"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no transaction matches the given lookup.
var ErrNotFound = errors.New("payment transaction not found")

// ErrDuplicatePending is returned when an insert collides with the booking's
// existing pending transaction. The partial unique index on
// (booking_id, status=pending) is what detects the race.
var ErrDuplicatePending = errors.New("booking already has a pending transaction")

// MongoPaymentTxRepo implements PaymentTransactionRepository using MongoDB.
type MongoPaymentTxRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentTxRepo creates a new instance of PaymentTransactionRepository
// using MongoDB.
func NewMongoPaymentTxRepo() PaymentTransactionRepository {
	coll := database.MongoClient.Database("festoria").Collection("payment_transactions")
	return &MongoPaymentTxRepo{coll: coll}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}
