package repositories

import "zonelink/internal/models"

// UserRepository defines the interface for user profile data access.
// Lookups return (nil, nil) when no record exists; an error always means the
// store itself failed, so callers can tell "absent" from "failed".
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByShareCode(code string) (*models.User, error)
	UpdateTimezone(id string, timezone string) error
}
