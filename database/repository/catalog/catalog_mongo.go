package catalogRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"festoria/database"
	"festoria/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no active package matches the given id.
var ErrNotFound = errors.New("service package not found")

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	coll *mongo.Collection
}

// NewMongoCatalogRepo creates a new instance of CatalogRepository using MongoDB.
func NewMongoCatalogRepo() CatalogRepository {
	coll := database.MongoClient.Database("festoria").Collection("packages")
	return &MongoCatalogRepo{coll: coll}
}

// GetPackageByID retrieves an active service package by its unique ID.
func (r *MongoCatalogRepo) GetPackageByID(id string) (*models.ServicePackage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var pkg models.ServicePackage
	filter := bson.M{"id": id, "active": true}
	if err := r.coll.FindOne(ctx, filter).Decode(&pkg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch service package %s: %w", id, err)
	}
	return &pkg, nil
}
