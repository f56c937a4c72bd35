package directoryRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"festoria/database"
	"festoria/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no contact record matches the given id.
var ErrNotFound = errors.New("contact record not found")

// MongoDirectoryRepo implements DirectoryRepository using MongoDB.
type MongoDirectoryRepo struct {
	coll *mongo.Collection
}

// NewMongoDirectoryRepo creates a new instance of DirectoryRepository using MongoDB.
func NewMongoDirectoryRepo() DirectoryRepository {
	coll := database.MongoClient.Database("festoria").Collection("directory")
	return &MongoDirectoryRepo{coll: coll}
}

// GetContact retrieves the contact record for a principal id.
func (r *MongoDirectoryRepo) GetContact(id string) (*models.ContactRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var record models.ContactRecord
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&record); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch contact record %s: %w", id, err)
	}
	return &record, nil
}

// UpsertContact creates or refreshes a contact record.
func (r *MongoDirectoryRepo) UpsertContact(record *models.ContactRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"id": record.ID}
	update := bson.M{"$set": record}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert contact record %s: %w", record.ID, err)
	}
	return nil
}
