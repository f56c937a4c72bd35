package bookingRepo

import (
	"fmt"
	"time"

	"festoria/models"

	"go.mongodb.org/mongo-driver/bson"
)

// FindExpiredPending returns bookings the provider never acted on within the
// auto-expiry window.
func (r *MongoBookingRepo) FindExpiredPending(now time.Time) ([]models.Booking, error) {
	filter := bson.M{
		"status":           models.StatusPendingProviderConfirmation,
		"auto_expiry_date": bson.M{"$lt": now},
	}
	return r.findBookings(filter)
}

// FindPaymentOverdue returns confirmed bookings whose payment deadline passed.
func (r *MongoBookingRepo) FindPaymentOverdue(now time.Time) ([]models.Booking, error) {
	filter := bson.M{
		"status":           models.StatusConfirmedAwaitingPayment,
		"payment_due_date": bson.M{"$lt": now},
	}
	return r.findBookings(filter)
}

func (r *MongoBookingRepo) findBookings(filter bson.M) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// CountByStatus aggregates booking counts by status for the actor's side of
// the marketplace.
func (r *MongoBookingRepo) CountByStatus(actor models.Actor) (map[models.BookingStatus]int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	match := bson.M{}
	switch actor.Role {
	case models.RoleClient:
		match["client_id"] = actor.ID
	case models.RoleProvider:
		match["provider_id"] = actor.ID
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate booking counts: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[models.BookingStatus]int64)
	for cursor.Next(ctx) {
		var row struct {
			Status models.BookingStatus `bson:"_id"`
			Count  int64                `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode booking count row: %w", err)
		}
		counts[row.Status] = row.Count
	}
	return counts, nil
}
