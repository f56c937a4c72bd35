package ratingRepo

import (
	"context"
	"fmt"
	"time"

	"festoria/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProviderRatingRepo implements ProviderRatingRepository using MongoDB.
type MongoProviderRatingRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRatingRepo creates a new instance of ProviderRatingRepository using MongoDB.
func NewMongoProviderRatingRepo() ProviderRatingRepository {
	coll := database.MongoClient.Database("festoria").Collection("provider_ratings")
	return &MongoProviderRatingRepo{coll: coll}
}

// ApplyRating upserts the provider's aggregate rating.
func (r *MongoProviderRatingRepo) ApplyRating(ctx context.Context, providerID string, average float64, count int) error {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"provider_id": providerID}
	update := bson.M{"$set": bson.M{
		"provider_id":    providerID,
		"average_rating": average,
		"rating_count":   count,
		"updated_at":     time.Now(),
	}}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(opCtx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to apply rating for provider %s: %w", providerID, err)
	}
	return nil
}
