package repositories

import (
	"fmt"
	"sync"
	"time"

	"zonelink/internal/models"

	"github.com/google/uuid"
)

// MockContactRepository is an in-memory implementation of ContactRepository.
type MockContactRepository struct {
	contacts map[string]models.Contact
	mu       sync.RWMutex
}

// NewMockContactRepository creates a new instance of MockContactRepository.
func NewMockContactRepository() *MockContactRepository {
	return &MockContactRepository{
		contacts: make(map[string]models.Contact),
	}
}

// Create stores a new contact edge.
func (r *MockContactRepository) Create(contact *models.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	if contact.AddedAt.IsZero() {
		contact.AddedAt = time.Now()
	}
	r.contacts[contact.ID] = *contact
	return nil
}

// GetByOwner returns all contact edges owned by ownerID. Map iteration makes
// the order unspecified, same as the backing stores.
func (r *MockContactRepository) GetByOwner(ownerID string) ([]models.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	contactList := make([]models.Contact, 0)
	for _, contact := range r.contacts {
		if contact.UserID == ownerID {
			contactList = append(contactList, contact)
		}
	}
	return contactList, nil
}

// GetByID returns a contact edge by its own ID, or (nil, nil) if absent.
func (r *MockContactRepository) GetByID(id string) (*models.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	contact, ok := r.contacts[id]
	if !ok {
		return nil, nil
	}
	return &contact, nil
}

// Delete removes a contact edge by its own ID.
func (r *MockContactRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.contacts[id]; !ok {
		return fmt.Errorf("contact with ID %s not found for deletion", id)
	}
	delete(r.contacts, id)
	return nil
}
