package models

import "time"

const UserTable = "fld_users"

// User rows exist for display names and activity bookkeeping only;
// authentication happens upstream and arrives as gateway headers.
type User struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	Username    string `gorm:"uniqueIndex;size:255;not null" json:"username"`
	DisplayName string `gorm:"size:255;not null" json:"display_name"`
	IsAdmin     bool   `gorm:"not null;default:false" json:"is_admin"`

	LastSeenAt *time.Time `gorm:"index" json:"last_seen_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return UserTable }
