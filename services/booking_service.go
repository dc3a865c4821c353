package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rustico-backend/apperr"
	"rustico-backend/models"
)

type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

type CreateBookingInput struct {
	CheckIn            string               `json:"checkIn" binding:"required"`
	CheckOut           string               `json:"checkOut" binding:"required"`
	PrimaryGuestID     string               `json:"primaryGuestId" binding:"required"`
	AdditionalGuestIDs []string             `json:"additionalGuestIds"`
	ServiceIDs         []string             `json:"serviceIds"`
	Notes              string               `json:"notes"`
	Status             models.BookingStatus `json:"status"`
	Currency           string               `json:"currency"`
}

// UpdateBookingInput carries exactly the fields a booking PATCH may touch.
// Anything else in the request body is dropped at the JSON binding
// boundary, so no runtime key filtering is needed.
type UpdateBookingInput struct {
	CheckIn            *string               `json:"checkIn"`
	CheckOut           *string               `json:"checkOut"`
	PrimaryGuestID     *string               `json:"primaryGuestId"`
	AdditionalGuestIDs []string              `json:"additionalGuestIds"`
	ServiceIDs         []string              `json:"serviceIds"`
	Notes              *string               `json:"notes"`
	Status             *models.BookingStatus `json:"status"`
	Currency           *string               `json:"currency"`
}

type DashboardStats struct {
	UpcomingBookings  int64 `json:"upcomingBookings"`
	TotalBookings     int64 `json:"totalBookings"`
	CompletedBookings int64 `json:"completedBookings"`
}

func parseBookingDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q", apperr.ErrValidation, value)
}

// resolveGuests loads the guests for the given ids. Ids that do not exist
// are silently dropped, mirroring the service resolution behaviour.
func (s *BookingService) resolveGuests(ids []string) ([]models.Guest, error) {
	if len(ids) == 0 {
		return []models.Guest{}, nil
	}
	var guests []models.Guest
	if err := s.DB.Where("id IN ?", ids).Find(&guests).Error; err != nil {
		return nil, err
	}
	return guests, nil
}

func (s *BookingService) resolveServices(ids []string) ([]models.Service, error) {
	if len(ids) == 0 {
		return []models.Service{}, nil
	}
	var svcs []models.Service
	if err := s.DB.Where("id IN ?", ids).Find(&svcs).Error; err != nil {
		return nil, err
	}
	return svcs, nil
}

func (s *BookingService) Create(in CreateBookingInput) (*models.Booking, error) {
	checkIn, err := parseBookingDate(in.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := parseBookingDate(in.CheckOut)
	if err != nil {
		return nil, err
	}
	if !checkOut.After(checkIn) {
		return nil, fmt.Errorf("%w: check-out must be after check-in", apperr.ErrValidation)
	}

	var primary models.Guest
	if err := s.DB.First(&primary, "id = ?", in.PrimaryGuestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: primary guest %s", apperr.ErrNotFound, in.PrimaryGuestID)
		}
		return nil, err
	}

	additional, err := s.resolveGuests(in.AdditionalGuestIDs)
	if err != nil {
		return nil, err
	}
	svcs, err := s.resolveServices(in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	guestCount := 1 + len(additional)
	total := CalculateTotalAmount(checkIn, checkOut, svcs, guestCount)

	booking := models.Booking{
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		Status:           in.Status,
		Notes:            in.Notes,
		TotalAmount:      total,
		Currency:         in.Currency,
		PrimaryGuestID:   primary.ID,
		AdditionalGuests: additional,
		Services:         svcs,
	}
	if booking.Status == "" {
		booking.Status = models.BookingStatusPending
	}
	if booking.Currency == "" {
		booking.Currency = "CHF"
	}

	if err := s.DB.Create(&booking).Error; err != nil {
		return nil, err
	}
	return s.FindOne(booking.ID)
}

func (s *BookingService) FindAll() ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.
		Preload("PrimaryGuest").
		Preload("AdditionalGuests").
		Preload("Services").
		Order("check_in DESC").
		Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) FindOne(id string) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.
		Preload("PrimaryGuest").
		Preload("AdditionalGuests").
		Preload("Services").
		First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking %s", apperr.ErrNotFound, id)
		}
		return nil, err
	}
	return &booking, nil
}

func (s *BookingService) Update(id string, in UpdateBookingInput) (*models.Booking, error) {
	booking, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}

	checkIn := booking.CheckIn
	checkOut := booking.CheckOut
	if in.CheckIn != nil {
		if checkIn, err = parseBookingDate(*in.CheckIn); err != nil {
			return nil, err
		}
	}
	if in.CheckOut != nil {
		if checkOut, err = parseBookingDate(*in.CheckOut); err != nil {
			return nil, err
		}
	}
	if !checkOut.After(checkIn) {
		return nil, fmt.Errorf("%w: check-out must be after check-in", apperr.ErrValidation)
	}

	if in.PrimaryGuestID != nil {
		var primary models.Guest
		if err := s.DB.First(&primary, "id = ?", *in.PrimaryGuestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: primary guest %s", apperr.ErrNotFound, *in.PrimaryGuestID)
			}
			return nil, err
		}
		booking.PrimaryGuestID = primary.ID
	}

	additional := booking.AdditionalGuests
	if in.AdditionalGuestIDs != nil {
		if additional, err = s.resolveGuests(in.AdditionalGuestIDs); err != nil {
			return nil, err
		}
	}
	svcs := booking.Services
	if in.ServiceIDs != nil {
		if svcs, err = s.resolveServices(in.ServiceIDs); err != nil {
			return nil, err
		}
	}

	booking.CheckIn = checkIn
	booking.CheckOut = checkOut
	if in.Notes != nil {
		booking.Notes = *in.Notes
	}
	if in.Status != nil {
		booking.Status = *in.Status
	}
	if in.Currency != nil && *in.Currency != "" {
		booking.Currency = *in.Currency
	}

	guestCount := 1 + len(additional)
	booking.TotalAmount = CalculateTotalAmount(checkIn, checkOut, svcs, guestCount)

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("AdditionalGuests", "Services", "PrimaryGuest").Save(booking).Error; err != nil {
			return err
		}
		if err := tx.Model(booking).Association("AdditionalGuests").Replace(additional); err != nil {
			return err
		}
		return tx.Model(booking).Association("Services").Replace(svcs)
	})
	if err != nil {
		return nil, err
	}
	return s.FindOne(id)
}

// Remove hard-deletes the booking and its join rows.
func (s *BookingService) Remove(id string) error {
	booking, err := s.FindOne(id)
	if err != nil {
		return err
	}
	return s.DB.Select(clause.Associations).Delete(booking).Error
}

// FindUpcoming lists bookings with a check-in between now and one month
// ahead, earliest first.
func (s *BookingService) FindUpcoming() ([]models.Booking, error) {
	now := time.Now()
	nextMonth := now.AddDate(0, 1, 0)

	var bookings []models.Booking
	err := s.DB.
		Where("check_in BETWEEN ? AND ?", now, nextMonth).
		Preload("PrimaryGuest").
		Order("check_in ASC").
		Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) GetDashboardStats() (*DashboardStats, error) {
	now := time.Now()
	nextMonth := now.AddDate(0, 1, 0)

	var stats DashboardStats
	if err := s.DB.Model(&models.Booking{}).
		Where("check_in BETWEEN ? AND ?", now, nextMonth).
		Count(&stats.UpcomingBookings).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Booking{}).Count(&stats.TotalBookings).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Booking{}).
		Where("status = ?", models.BookingStatusCompleted).
		Count(&stats.CompletedBookings).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
