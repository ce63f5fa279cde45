package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"zonelink/internal/apperrors"
	"zonelink/internal/models"
	"zonelink/internal/repositories"
	"zonelink/pkg/rabbitmq"
	"zonelink/pkg/sharecode"
)

// EventPublisher is the subset of the RabbitMQ client the contact service
// needs. It may be nil when the broker is not configured.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// ContactAddedEvent is the message published when a contact edge is created.
type ContactAddedEvent struct {
	ContactID   string    `json:"contactId"`
	OwnerID     string    `json:"ownerId"`
	TargetID    string    `json:"targetId"`
	TargetEmail string    `json:"targetEmail"`
	AddedAt     time.Time `json:"addedAt"`
}

// ContactService handles business logic for share-code lookups and the
// contact list.
type ContactService struct {
	contactRepo repositories.ContactRepository
	userRepo    repositories.UserRepository
	publisher   EventPublisher
}

// NewContactService creates a new ContactService.
func NewContactService(contactRepo repositories.ContactRepository, userRepo repositories.UserRepository, publisher EventPublisher) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		userRepo:    userRepo,
		publisher:   publisher,
	}
}

// LookupByShareCode finds the user behind a share code. Input is normalized
// to the generator's uppercase alphabet; a miss is (nil, nil), not an error.
func (s *ContactService) LookupByShareCode(code string) (*models.User, error) {
	normalized := sharecode.Normalize(code)
	if normalized == "" {
		return nil, apperrors.ErrEmptyShareCode
	}
	return s.userRepo.GetByShareCode(normalized)
}

// AddContact redeems a share code for the owning user. All checks run before
// any write: the code must resolve, the target must not be the owner, and no
// edge for the pair may already exist. The stored edge carries a snapshot of
// the target profile taken now.
func (s *ContactService) AddContact(ownerID, code string) (*models.Contact, error) {
	target, err := s.LookupByShareCode(code)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, apperrors.ErrShareCodeNotFound
	}
	if target.ID == ownerID {
		return nil, apperrors.ErrSelfContact
	}

	// Read-then-insert; the duplicate check is not atomic with the write,
	// an accepted race at this application's scale.
	existing, err := s.contactRepo.GetByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing contacts: %w", err)
	}
	for _, c := range existing {
		if c.ContactUserID == target.ID {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicateContact, target.Email)
		}
	}

	contact := &models.Contact{
		UserID:             ownerID,
		ContactUserID:      target.ID,
		ContactEmail:       target.Email,
		ContactDisplayName: target.DisplayName,
		ContactTimezone:    target.Timezone,
		AddedAt:            time.Now(),
	}
	if err := s.contactRepo.Create(contact); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	s.publishContactAdded(contact)
	return contact, nil
}

// publishContactAdded emits a contact.added event. Publishing is
// best-effort: the edge is already stored, so a broker failure is logged
// and not surfaced to the caller.
func (s *ContactService) publishContactAdded(contact *models.Contact) {
	if s.publisher == nil {
		return
	}
	event := ContactAddedEvent{
		ContactID:   contact.ID,
		OwnerID:     contact.UserID,
		TargetID:    contact.ContactUserID,
		TargetEmail: contact.ContactEmail,
		AddedAt:     contact.AddedAt,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal contact event: %v", err)
		return
	}
	if err := s.publisher.Publish("", rabbitmq.ContactQueue, body); err != nil {
		log.Printf("Warning: failed to publish contact added event for %s: %v", contact.ID, err)
	}
}

// ListContacts returns all contact edges owned by ownerID, order unspecified.
func (s *ContactService) ListContacts(ownerID string) ([]models.Contact, error) {
	return s.contactRepo.GetByOwner(ownerID)
}

// ContactClock pairs a contact edge with its rendered clock.
type ContactClock struct {
	Contact models.Contact `json:"contact"`
	Clock   ClockView      `json:"clock"`
}

// ListContactClocks renders the current local time for every contact's
// snapshot timezone. An edge whose snapshot zone no longer resolves is
// skipped with a log line rather than failing the whole list.
func (s *ContactService) ListContactClocks(ownerID string) ([]ContactClock, error) {
	contacts, err := s.contactRepo.GetByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	clocks := make([]ContactClock, 0, len(contacts))
	for _, contact := range contacts {
		view, err := buildClockView(contact.ContactTimezone)
		if err != nil {
			log.Printf("Skipping contact %s: cannot render timezone %q: %v", contact.ID, contact.ContactTimezone, err)
			continue
		}
		clocks = append(clocks, ContactClock{Contact: contact, Clock: *view})
	}
	return clocks, nil
}

// RemoveContact deletes a contact edge after verifying the caller owns it.
// A foreign or unknown edge reads as not found, never as someone else's data.
func (s *ContactService) RemoveContact(ownerID, contactID string) error {
	contact, err := s.contactRepo.GetByID(contactID)
	if err != nil {
		return err
	}
	if contact == nil || contact.UserID != ownerID {
		return fmt.Errorf("%w: %s", apperrors.ErrContactNotFound, contactID)
	}
	if err := s.contactRepo.Delete(contactID); err != nil {
		return fmt.Errorf("failed to delete contact %s: %w", contactID, err)
	}
	return nil
}
