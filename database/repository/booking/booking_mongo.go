package bookingRepo

import (
	"context"
	"errors"
	"time"

	"festoria/database"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no booking matches the given id.
var ErrNotFound = errors.New("booking not found")

// ErrStatusConflict is returned when a conditional status update observed a
// stale status; the caller should re-read and retry.
var ErrStatusConflict = errors.New("booking status changed concurrently")

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	coll := database.MongoClient.Database("festoria").Collection("bookings")
	return &MongoBookingRepo{coll: coll}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}
