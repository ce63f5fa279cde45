package models

import "time"

// User represents a registered profile. The JSON field names are the
// persisted document schema and must stay stable for existing clients.
type User struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email       string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password    string    `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	DisplayName string    `json:"displayName,omitempty" gorm:"type:varchar(100)"`
	Timezone    string    `json:"timezone" gorm:"type:varchar(64)" validate:"required"`
	ShareCode   string    `json:"shareCode" gorm:"index;type:varchar(6)"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
