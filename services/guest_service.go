package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"rustico-backend/apperr"
	"rustico-backend/models"
)

// registrationPrefix is the fixed prefix of Meldeschein numbers,
// format RUST-YYYY-NNNN, sequential per calendar year.
const registrationPrefix = "RUST"

type GuestService struct {
	DB *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

type CreateGuestInput struct {
	FirstName   string           `json:"firstName" binding:"required"`
	LastName    string           `json:"lastName" binding:"required"`
	Address     string           `json:"address"`
	City        string           `json:"city"`
	PostalCode  string           `json:"postalCode"`
	Country     string           `json:"country"`
	BirthDate   *datatypes.Date  `json:"birthDate"`
	Nationality string           `json:"nationality"`
	Type        models.GuestType `json:"type"`
	Notes       string           `json:"notes"`
}

type UpdateGuestInput struct {
	FirstName          *string           `json:"firstName"`
	LastName           *string           `json:"lastName"`
	RegistrationNumber *string           `json:"registrationNumber"`
	Address            *string           `json:"address"`
	City               *string           `json:"city"`
	PostalCode         *string           `json:"postalCode"`
	Country            *string           `json:"country"`
	BirthDate          *datatypes.Date   `json:"birthDate"`
	Nationality        *string           `json:"nationality"`
	Type               *models.GuestType `json:"type"`
	Notes              *string           `json:"notes"`
	IsActive           *bool             `json:"isActive"`
}

// generateRegistrationNumber scans for the highest suffix of the current
// year and increments it. Computed fresh on every call; concurrent creates
// can race to the same number, an accepted limitation (no serialized
// counter, only query ordering).
func (s *GuestService) generateRegistrationNumber() (string, error) {
	prefix := fmt.Sprintf("%s-%d", registrationPrefix, time.Now().Year())

	var last models.Guest
	err := s.DB.
		Where("registration_number LIKE ?", prefix+"-%").
		Order("registration_number DESC").
		First(&last).Error

	next := 1
	switch {
	case err == nil:
		parts := strings.Split(last.RegistrationNumber, "-")
		if len(parts) == 3 {
			if n, convErr := strconv.Atoi(parts[2]); convErr == nil {
				next = n + 1
			}
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// first guest of the year gets 0001
	default:
		return "", err
	}

	return fmt.Sprintf("%s-%04d", prefix, next), nil
}

func (s *GuestService) Create(in CreateGuestInput) (*models.Guest, error) {
	number, err := s.generateRegistrationNumber()
	if err != nil {
		return nil, err
	}

	guest := models.Guest{
		FirstName:          in.FirstName,
		LastName:           in.LastName,
		RegistrationNumber: number,
		Address:            in.Address,
		City:               in.City,
		PostalCode:         in.PostalCode,
		Country:            in.Country,
		BirthDate:          in.BirthDate,
		Nationality:        in.Nationality,
		Type:               in.Type,
		Notes:              in.Notes,
		IsActive:           true,
	}
	if guest.Type == "" {
		guest.Type = models.GuestTypeAdult
	}

	if err := s.DB.Create(&guest).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: registration number %s already exists", apperr.ErrConflict, number)
		}
		return nil, err
	}
	return &guest, nil
}

func (s *GuestService) FindAll() ([]models.Guest, error) {
	var guests []models.Guest
	err := s.DB.Order("created_at DESC").Find(&guests).Error
	return guests, err
}

func (s *GuestService) FindActive() ([]models.Guest, error) {
	var guests []models.Guest
	err := s.DB.Where("is_active = ?", true).Order("created_at DESC").Find(&guests).Error
	return guests, err
}

func (s *GuestService) FindOne(id string) (*models.Guest, error) {
	var guest models.Guest
	if err := s.DB.First(&guest, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: guest %s", apperr.ErrNotFound, id)
		}
		return nil, err
	}
	return &guest, nil
}

func (s *GuestService) FindByRegistrationNumber(number string) (*models.Guest, error) {
	var guest models.Guest
	if err := s.DB.First(&guest, "registration_number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: guest with registration number %s", apperr.ErrNotFound, number)
		}
		return nil, err
	}
	return &guest, nil
}

func (s *GuestService) Update(id string, in UpdateGuestInput) (*models.Guest, error) {
	guest, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}

	// An explicitly supplied registration number must stay unique across
	// all other guests.
	if in.RegistrationNumber != nil && *in.RegistrationNumber != guest.RegistrationNumber {
		var count int64
		if err := s.DB.Model(&models.Guest{}).
			Where("registration_number = ? AND id <> ?", *in.RegistrationNumber, id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, fmt.Errorf("%w: registration number %s already in use", apperr.ErrConflict, *in.RegistrationNumber)
		}
		guest.RegistrationNumber = *in.RegistrationNumber
	}

	if in.FirstName != nil {
		guest.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		guest.LastName = *in.LastName
	}
	if in.Address != nil {
		guest.Address = *in.Address
	}
	if in.City != nil {
		guest.City = *in.City
	}
	if in.PostalCode != nil {
		guest.PostalCode = *in.PostalCode
	}
	if in.Country != nil {
		guest.Country = *in.Country
	}
	if in.BirthDate != nil {
		guest.BirthDate = in.BirthDate
	}
	if in.Nationality != nil {
		guest.Nationality = *in.Nationality
	}
	if in.Type != nil {
		guest.Type = *in.Type
	}
	if in.Notes != nil {
		guest.Notes = *in.Notes
	}
	if in.IsActive != nil {
		guest.IsActive = *in.IsActive
	}

	if err := s.DB.Save(guest).Error; err != nil {
		return nil, err
	}
	return guest, nil
}

// RegenerateRegistrationNumber overwrites the stored number with a freshly
// generated one.
func (s *GuestService) RegenerateRegistrationNumber(id string) (*models.Guest, error) {
	guest, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}
	number, err := s.generateRegistrationNumber()
	if err != nil {
		return nil, err
	}
	guest.RegistrationNumber = number
	if err := s.DB.Save(guest).Error; err != nil {
		return nil, err
	}
	return guest, nil
}

// Remove hard-deletes a guest. Guests still referenced by a booking,
// as primary or additional guest, cannot be deleted.
func (s *GuestService) Remove(id string) error {
	guest, err := s.FindOne(id)
	if err != nil {
		return err
	}

	var refs int64
	if err := s.DB.Model(&models.Booking{}).Where("primary_guest_id = ?", id).Count(&refs).Error; err != nil {
		return err
	}
	if refs == 0 {
		if err := s.DB.Table("booking_additional_guests").Where("guest_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
	}
	if refs > 0 {
		return fmt.Errorf("%w: guest %s is referenced by bookings", apperr.ErrConflict, id)
	}

	return s.DB.Delete(guest).Error
}

// Search matches active guests by case-insensitive substring on first name,
// last name or registration number, ordered by last then first name.
func (s *GuestService) Search(term string) ([]models.Guest, error) {
	like := "%" + strings.ToLower(term) + "%"
	var guests []models.Guest
	err := s.DB.
		Where("is_active = ?", true).
		Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(registration_number) LIKE ?", like, like, like).
		Order("last_name ASC, first_name ASC").
		Find(&guests).Error
	return guests, err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
