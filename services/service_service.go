package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"rustico-backend/apperr"
	"rustico-backend/models"
)

type ServiceService struct {
	DB *gorm.DB
}

func NewServiceService(db *gorm.DB) *ServiceService {
	return &ServiceService{DB: db}
}

type CreateServiceInput struct {
	Name        string             `json:"name" binding:"required"`
	Description string             `json:"description"`
	Price       decimal.Decimal    `json:"price"`
	Type        models.ServiceType `json:"type"`
	IsActive    *bool              `json:"isActive"`
	IsRequired  bool               `json:"isRequired"`
	SortOrder   int                `json:"sortOrder"`
}

type UpdateServiceInput struct {
	Name        *string             `json:"name"`
	Description *string             `json:"description"`
	Price       *decimal.Decimal    `json:"price"`
	Type        *models.ServiceType `json:"type"`
	IsActive    *bool               `json:"isActive"`
	IsRequired  *bool               `json:"isRequired"`
	SortOrder   *int                `json:"sortOrder"`
}

func (s *ServiceService) Create(in CreateServiceInput) (*models.Service, error) {
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", apperr.ErrValidation)
	}

	svc := models.Service{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price.Round(2),
		Type:        in.Type,
		IsActive:    true,
		IsRequired:  in.IsRequired,
		SortOrder:   in.SortOrder,
	}
	if svc.Type == "" {
		svc.Type = models.ServiceTypePerBooking
	}
	if in.IsActive != nil {
		svc.IsActive = *in.IsActive
	}

	if err := s.DB.Create(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (s *ServiceService) FindAll() ([]models.Service, error) {
	var svcs []models.Service
	err := s.DB.Order("sort_order ASC, name ASC").Find(&svcs).Error
	return svcs, err
}

func (s *ServiceService) FindActive() ([]models.Service, error) {
	var svcs []models.Service
	err := s.DB.Where("is_active = ?", true).Order("sort_order ASC, name ASC").Find(&svcs).Error
	return svcs, err
}

func (s *ServiceService) FindOne(id string) (*models.Service, error) {
	var svc models.Service
	if err := s.DB.First(&svc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: service %s", apperr.ErrNotFound, id)
		}
		return nil, err
	}
	return &svc, nil
}

func (s *ServiceService) Update(id string, in UpdateServiceInput) (*models.Service, error) {
	svc, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}

	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price must not be negative", apperr.ErrValidation)
		}
		svc.Price = in.Price.Round(2)
	}
	if in.Name != nil {
		svc.Name = *in.Name
	}
	if in.Description != nil {
		svc.Description = *in.Description
	}
	if in.Type != nil {
		svc.Type = *in.Type
	}
	if in.IsActive != nil {
		svc.IsActive = *in.IsActive
	}
	if in.IsRequired != nil {
		svc.IsRequired = *in.IsRequired
	}
	if in.SortOrder != nil {
		svc.SortOrder = *in.SortOrder
	}

	if err := s.DB.Save(svc).Error; err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *ServiceService) Remove(id string) error {
	svc, err := s.FindOne(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(svc).Error
}
