package repositories

import "zonelink/internal/models"

// ContactRepository defines the interface for contact edge data access.
// GetByOwner returns edges in no particular order. GetByID returns
// (nil, nil) when the edge does not exist.
type ContactRepository interface {
	Create(contact *models.Contact) error
	GetByOwner(ownerID string) ([]models.Contact, error)
	GetByID(id string) (*models.Contact, error)
	Delete(id string) error
}
