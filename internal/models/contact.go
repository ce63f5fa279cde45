package models

import "time"

// Contact is a one-directional edge from the owning user to another user,
// carrying a snapshot of the target profile taken at add-time. The snapshot
// is intentionally not kept in sync with later profile changes.
type Contact struct {
	ID                 string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID             string    `json:"userId" gorm:"index;type:varchar(36)" validate:"required"`
	ContactUserID      string    `json:"contactUserId" gorm:"type:varchar(36)" validate:"required"`
	ContactEmail       string    `json:"contactEmail" gorm:"type:varchar(255)"`
	ContactDisplayName string    `json:"contactDisplayName,omitempty" gorm:"type:varchar(100)"`
	ContactTimezone    string    `json:"contactTimezone" gorm:"type:varchar(64)"`
	AddedAt            time.Time `json:"addedAt"`
}
