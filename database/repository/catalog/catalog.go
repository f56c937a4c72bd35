package catalogRepo

import (
	"festoria/models"
)

// CatalogRepository is the read-only view of the package catalog the booking
// engine snapshots from at creation time. The catalog itself is maintained by
// the provider profile services.
type CatalogRepository interface {
	// GetPackageByID retrieves an active service package by its unique ID.
	GetPackageByID(id string) (*models.ServicePackage, error)
}
