package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleViewer UserRole = "viewer"
)

type User struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	Username  string     `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Password  string     `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialized
	Role      UserRole   `gorm:"size:16;default:viewer" json:"role"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`
	FirstName string     `gorm:"size:120" json:"firstName,omitempty"`
	LastName  string     `gorm:"size:120" json:"lastName,omitempty"`
	Email     string     `gorm:"size:150" json:"email,omitempty"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
