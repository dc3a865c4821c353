package services

import (
	"errors"

	"gorm.io/gorm"

	"rustico-backend/models"
)

// AppSettings is the merged configuration view: fixed defaults overlaid
// with whatever key/value rows have been persisted.
type AppSettings struct {
	CompanyName     string `json:"companyName"`
	Address         string `json:"address"`
	IBAN            string `json:"iban"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Website         string `json:"website"`
	TaxNumber       string `json:"taxNumber"`
	DefaultCurrency string `json:"defaultCurrency"`
	Language        string `json:"language"`
	LogoURL         string `json:"logoUrl"`
}

type SettingsPatch struct {
	CompanyName     *string `json:"companyName"`
	Address         *string `json:"address"`
	IBAN            *string `json:"iban"`
	Phone           *string `json:"phone"`
	Email           *string `json:"email"`
	Website         *string `json:"website"`
	TaxNumber       *string `json:"taxNumber"`
	DefaultCurrency *string `json:"defaultCurrency"`
	Language        *string `json:"language"`
}

type CompanyInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	IBAN    string `json:"iban"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	LogoURL string `json:"logoUrl"`
}

func defaultSettings() AppSettings {
	return AppSettings{
		CompanyName:     "Rustico Tessin",
		Address:         "Musterstrasse 123, 6500 Bellinzona, Schweiz",
		IBAN:            "CH93 0076 2011 6238 5295 7",
		Phone:           "+41 91 123 45 67",
		Email:           "info@rustico-tessin.ch",
		Website:         "https://rustico-tessin.ch",
		TaxNumber:       "CHE-123.456.789",
		DefaultCurrency: "CHF",
		Language:        "de",
	}
}

type SettingsService struct {
	DB    *gorm.DB
	Files *FileService
}

func NewSettingsService(db *gorm.DB, files *FileService) *SettingsService {
	return &SettingsService{DB: db, Files: files}
}

func (s *SettingsService) Get() (AppSettings, error) {
	out := defaultSettings()

	var rows []models.Setting
	if err := s.DB.Find(&rows).Error; err != nil {
		return out, err
	}
	for _, row := range rows {
		switch row.Key {
		case "companyName":
			out.CompanyName = row.Value
		case "address":
			out.Address = row.Value
		case "iban":
			out.IBAN = row.Value
		case "phone":
			out.Phone = row.Value
		case "email":
			out.Email = row.Value
		case "website":
			out.Website = row.Value
		case "taxNumber":
			out.TaxNumber = row.Value
		case "defaultCurrency":
			out.DefaultCurrency = row.Value
		case "language":
			out.Language = row.Value
		case "logoUrl":
			out.LogoURL = row.Value
		}
		// unknown keys keep their row but never surface
	}
	return out, nil
}

func (s *SettingsService) setKey(key, value string) error {
	var row models.Setting
	err := s.DB.First(&row, "`key` = ?", key).Error
	switch {
	case err == nil:
		return s.DB.Model(&row).Update("value", value).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.DB.Create(&models.Setting{Key: key, Value: value}).Error
	default:
		return err
	}
}

// Update upserts each provided key individually and returns the re-read
// merged settings.
func (s *SettingsService) Update(patch SettingsPatch) (AppSettings, error) {
	pairs := map[string]*string{
		"companyName":     patch.CompanyName,
		"address":         patch.Address,
		"iban":            patch.IBAN,
		"phone":           patch.Phone,
		"email":           patch.Email,
		"website":         patch.Website,
		"taxNumber":       patch.TaxNumber,
		"defaultCurrency": patch.DefaultCurrency,
		"language":        patch.Language,
	}
	for key, value := range pairs {
		if value == nil {
			continue
		}
		if err := s.setKey(key, *value); err != nil {
			return AppSettings{}, err
		}
	}
	return s.Get()
}

func (s *SettingsService) GetCompanyInfo() (CompanyInfo, error) {
	settings, err := s.Get()
	if err != nil {
		return CompanyInfo{}, err
	}
	return CompanyInfo{
		Name:    settings.CompanyName,
		Address: settings.Address,
		IBAN:    settings.IBAN,
		Phone:   settings.Phone,
		Email:   settings.Email,
		LogoURL: settings.LogoURL,
	}, nil
}

// UploadLogo replaces any previously stored logo file before persisting
// the new logo URL.
func (s *SettingsService) UploadLogo(filename string, data []byte) (AppSettings, error) {
	current, err := s.Get()
	if err != nil {
		return AppSettings{}, err
	}
	if current.LogoURL != "" {
		if err := s.Files.DeleteLogo(current.LogoURL); err != nil {
			return AppSettings{}, err
		}
	}

	logoURL, err := s.Files.SaveLogo(filename, data)
	if err != nil {
		return AppSettings{}, err
	}
	if err := s.setKey("logoUrl", logoURL); err != nil {
		return AppSettings{}, err
	}
	return s.Get()
}

// DeleteLogo removes the stored logo; deleting when none is set is a no-op.
func (s *SettingsService) DeleteLogo() (AppSettings, error) {
	current, err := s.Get()
	if err != nil {
		return AppSettings{}, err
	}
	if current.LogoURL == "" {
		return current, nil
	}
	if err := s.Files.DeleteLogo(current.LogoURL); err != nil {
		return AppSettings{}, err
	}
	if err := s.setKey("logoUrl", ""); err != nil {
		return AppSettings{}, err
	}
	return s.Get()
}
