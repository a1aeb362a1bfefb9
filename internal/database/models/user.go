package models

import (
	"time"
)

// User is an authenticated principal; ID is the identity provider subject (e.g. "github:1234")
type User struct {
	ID              string    `json:"id" gorm:"primaryKey;size:255"`
	Email           *string   `json:"email" gorm:"uniqueIndex;size:255"`
	FirstName       *string   `json:"firstName" gorm:"size:100"`
	LastName        *string   `json:"lastName" gorm:"size:100"`
	ProfileImageURL *string   `json:"profileImageUrl" gorm:"size:500"`
	Role            Role      `json:"role" gorm:"type:varchar(20);not null;default:'user'"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
