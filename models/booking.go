package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	CheckIn     time.Time       `gorm:"type:date;not null" json:"checkIn"`
	CheckOut    time.Time       `gorm:"type:date;not null" json:"checkOut"`
	Status      BookingStatus   `gorm:"size:16;default:pending" json:"status"`
	Notes       string          `gorm:"type:text" json:"notes,omitempty"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"totalAmount"`
	IsPaid      bool            `gorm:"default:false" json:"isPaid"`
	Currency    string          `gorm:"size:3;default:CHF" json:"currency"`
	PaidAt      *datatypes.Date `json:"paidAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	PrimaryGuestID string `gorm:"size:36;index;not null" json:"primaryGuestId"`
	PrimaryGuest   Guest  `gorm:"foreignKey:PrimaryGuestID" json:"primaryGuest,omitempty"`

	// Services are a snapshot of which services applied when the booking
	// was last written; later price changes do not touch TotalAmount.
	AdditionalGuests []Guest   `gorm:"many2many:booking_additional_guests" json:"additionalGuests"`
	Services         []Service `gorm:"many2many:booking_services" json:"services"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// Reference is the human-facing booking/invoice number derived from the id.
func (b *Booking) Reference() string {
	if len(b.ID) < 8 {
		return strings.ToUpper(b.ID)
	}
	return strings.ToUpper(b.ID[:8])
}
