package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GuestType string

const (
	GuestTypeAdult GuestType = "adult"
	GuestTypeChild GuestType = "child"
)

type Guest struct {
	ID                 string          `gorm:"primaryKey;size:36" json:"id"`
	FirstName          string          `gorm:"size:255;not null" json:"firstName"`
	LastName           string          `gorm:"size:255;not null" json:"lastName"`
	RegistrationNumber string          `gorm:"uniqueIndex;size:32" json:"registrationNumber"`
	Address            string          `gorm:"size:255" json:"address,omitempty"`
	City               string          `gorm:"size:120" json:"city,omitempty"`
	PostalCode         string          `gorm:"size:20" json:"postalCode,omitempty"`
	Country            string          `gorm:"size:120" json:"country,omitempty"`
	BirthDate          *datatypes.Date `json:"birthDate,omitempty"`
	Nationality        string          `gorm:"size:120" json:"nationality,omitempty"`
	Type               GuestType       `gorm:"size:16;default:adult" json:"type"`
	Notes              string          `gorm:"type:text" json:"notes,omitempty"`
	IsActive           bool            `gorm:"default:true" json:"isActive"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

func (g *Guest) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

func (g *Guest) FullName() string {
	return g.FirstName + " " + g.LastName
}
