package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ServiceType says how a service is charged: per night, per person, or
// once per booking.
type ServiceType string

const (
	ServiceTypeNightly    ServiceType = "nightly"
	ServiceTypePerPerson  ServiceType = "per_person"
	ServiceTypePerBooking ServiceType = "per_booking"
)

type Service struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description string          `gorm:"size:255" json:"description,omitempty"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Type        ServiceType     `gorm:"size:16;default:per_booking" json:"type"`
	IsActive    bool            `gorm:"default:true" json:"isActive"`
	IsRequired  bool            `gorm:"default:false" json:"isRequired"`
	SortOrder   int             `gorm:"default:0" json:"sortOrder"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
