package repositories

import (
	"errors"
	"fmt"
	"time"

	"zonelink/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMContactRepository is a GORM implementation of ContactRepository.
type GORMContactRepository struct {
	db *gorm.DB
}

// NewGORMContactRepository creates a new instance of GORMContactRepository.
func NewGORMContactRepository(db *gorm.DB) *GORMContactRepository {
	return &GORMContactRepository{
		db: db,
	}
}

// Create stores a new contact edge, assigning an ID and AddedAt if unset.
func (r *GORMContactRepository) Create(contact *models.Contact) error {
	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	if contact.AddedAt.IsZero() {
		contact.AddedAt = time.Now()
	}
	if err := r.db.Create(contact).Error; err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

// GetByOwner returns all contact edges owned by ownerID.
func (r *GORMContactRepository) GetByOwner(ownerID string) ([]models.Contact, error) {
	var contacts []models.Contact
	if err := r.db.Find(&contacts, "user_id = ?", ownerID).Error; err != nil {
		return nil, fmt.Errorf("failed to get contacts for user %s: %w", ownerID, err)
	}
	return contacts, nil
}

// GetByID retrieves a contact edge by its own ID, or (nil, nil) if absent.
func (r *GORMContactRepository) GetByID(id string) (*models.Contact, error) {
	var contact models.Contact
	if err := r.db.First(&contact, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get contact by ID %s: %w", id, err)
	}
	return &contact, nil
}

// Delete removes a contact edge by its own ID.
func (r *GORMContactRepository) Delete(id string) error {
	result := r.db.Delete(&models.Contact{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete contact %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("contact with ID %s not found for deletion", id)
	}
	return nil
}
