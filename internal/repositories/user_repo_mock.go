package repositories

import (
	"fmt"
	"sync"
	"time"

	"zonelink/internal/models"

	"github.com/google/uuid"
)

// MockUserRepository is an in-memory implementation of UserRepository. It
// backs the server when no database DSN is configured, and tests.
type MockUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// Create stores a new user profile.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

// GetByID returns a user by ID, or (nil, nil) if absent.
func (r *MockUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// GetByEmail returns a user by email, or (nil, nil) if absent.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

// GetByShareCode returns a user by exact share code, or (nil, nil) if absent.
func (r *MockUserRepository) GetByShareCode(code string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.ShareCode == code {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

// UpdateTimezone updates a user's timezone and refreshes UpdatedAt.
func (r *MockUserRepository) UpdateTimezone(id string, timezone string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user with ID %s not found for timezone update", id)
	}
	user.Timezone = timezone
	user.UpdatedAt = time.Now()
	r.users[id] = user
	return nil
}
