package services

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"rustico-backend/apperr"
	"rustico-backend/models"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

type CreateUserInput struct {
	Username  string          `json:"username" binding:"required"`
	Password  string          `json:"password" binding:"required"`
	Role      models.UserRole `json:"role"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Email     string          `json:"email"`
}

type UpdateUserInput struct {
	Username    *string          `json:"username"`
	NewPassword *string          `json:"newPassword"`
	Role        *models.UserRole `json:"role"`
	IsActive    *bool            `json:"isActive"`
	FirstName   *string          `json:"firstName"`
	LastName    *string          `json:"lastName"`
	Email       *string          `json:"email"`
}

func (s *UserService) Create(in CreateUserInput) (*models.User, error) {
	var count int64
	if err := s.DB.Model(&models.User{}).Where("username = ?", in.Username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: username %s already taken", apperr.ErrConflict, in.Username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:  in.Username,
		Password:  string(hash),
		Role:      in.Role,
		IsActive:  true,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
	}
	if user.Role == "" {
		user.Role = models.UserRoleViewer
	}

	if err := s.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) FindAll() ([]models.User, error) {
	var users []models.User
	err := s.DB.Order("created_at ASC").Find(&users).Error
	return users, err
}

func (s *UserService) FindOne(id string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", apperr.ErrNotFound, id)
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Update(id string, in UpdateUserInput) (*models.User, error) {
	user, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}

	if in.Username != nil && *in.Username != user.Username {
		var count int64
		if err := s.DB.Model(&models.User{}).
			Where("username = ? AND id <> ?", *in.Username, id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, fmt.Errorf("%w: username %s already taken", apperr.ErrConflict, *in.Username)
		}
		user.Username = *in.Username
	}

	if in.NewPassword != nil && *in.NewPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Email != nil {
		user.Email = *in.Email
	}

	if err := s.DB.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Remove deletes a user. At least one active admin must remain, so
// deleting an admin while only one active admin exists is rejected.
func (s *UserService) Remove(id string) error {
	user, err := s.FindOne(id)
	if err != nil {
		return err
	}

	if user.Role == models.UserRoleAdmin {
		var adminCount int64
		if err := s.DB.Model(&models.User{}).
			Where("role = ? AND is_active = ?", models.UserRoleAdmin, true).
			Count(&adminCount).Error; err != nil {
			return err
		}
		if adminCount <= 1 {
			return fmt.Errorf("%w: the last administrator cannot be deleted", apperr.ErrValidation)
		}
	}

	return s.DB.Delete(user).Error
}

// ValidateCredentials looks up an active user and verifies the password.
// On success the last-login timestamp is stamped.
func (s *UserService) ValidateCredentials(username, password string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "username = ? AND is_active = ?", username, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthorized)
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthorized)
	}

	now := time.Now()
	if err := s.DB.Model(&user).Update("last_login", now).Error; err != nil {
		return nil, err
	}
	user.LastLogin = &now
	return &user, nil
}
