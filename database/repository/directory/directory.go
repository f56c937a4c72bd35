package directoryRepo

import (
	"festoria/models"
)

// DirectoryRepository resolves marketplace principals (clients and providers)
// to their contact records. Profile ownership lives in the profile services;
// this store only mirrors what notifications and auth checks need.
type DirectoryRepository interface {
	// GetContact retrieves the contact record for a principal id.
	GetContact(id string) (*models.ContactRecord, error)
	// UpsertContact creates or refreshes a contact record.
	UpsertContact(record *models.ContactRecord) error
}
