package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newSettingsService(t *testing.T) (*SettingsService, string) {
	t.Helper()
	db := openTestDB(t)
	dir := t.TempDir()
	return NewSettingsService(db, NewFileService(dir)), dir
}

func TestSettingsDefaults(t *testing.T) {
	svc, _ := newSettingsService(t)

	settings, err := svc.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if settings.CompanyName != "Rustico Tessin" {
		t.Errorf("companyName = %s", settings.CompanyName)
	}
	if settings.DefaultCurrency != "CHF" || settings.Language != "de" {
		t.Errorf("currency/language defaults wrong: %s/%s", settings.DefaultCurrency, settings.Language)
	}
	if settings.LogoURL != "" {
		t.Errorf("logo should be unset by default")
	}
}

func TestSettingsPartialUpdate(t *testing.T) {
	svc, _ := newSettingsService(t)

	name := "Casa Bella"
	settings, err := svc.Update(SettingsPatch{CompanyName: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if settings.CompanyName != "Casa Bella" {
		t.Errorf("companyName = %s, want Casa Bella", settings.CompanyName)
	}
	// untouched keys keep their defaults
	if settings.IBAN != defaultSettings().IBAN {
		t.Errorf("iban changed unexpectedly: %s", settings.IBAN)
	}

	// a second update overwrites the stored row, not stacks a new one
	name = "Casa Nova"
	settings, err = svc.Update(SettingsPatch{CompanyName: &name})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if settings.CompanyName != "Casa Nova" {
		t.Errorf("companyName = %s, want Casa Nova", settings.CompanyName)
	}
}

func TestCompanyInfo(t *testing.T) {
	svc, _ := newSettingsService(t)

	info, err := svc.GetCompanyInfo()
	if err != nil {
		t.Fatalf("company info: %v", err)
	}
	if info.Name != "Rustico Tessin" || info.IBAN == "" {
		t.Errorf("info = %+v", info)
	}
}

func TestLogoLifecycle(t *testing.T) {
	svc, dir := newSettingsService(t)

	settings, err := svc.UploadLogo("logo.png", []byte("fake-png"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !strings.HasPrefix(settings.LogoURL, "/uploads/logo-") {
		t.Fatalf("logoUrl = %s", settings.LogoURL)
	}
	firstFile := filepath.Join(dir, filepath.Base(settings.LogoURL))
	if _, err := os.Stat(firstFile); err != nil {
		t.Fatalf("logo file missing: %v", err)
	}

	// replacing deletes the old file
	settings, err = svc.UploadLogo("new.jpg", []byte("fake-jpg"))
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if _, err := os.Stat(firstFile); !os.IsNotExist(err) {
		t.Errorf("old logo file should be gone")
	}
	if !strings.HasSuffix(settings.LogoURL, ".jpg") {
		t.Errorf("logoUrl = %s, want .jpg suffix", settings.LogoURL)
	}

	settings, err = svc.DeleteLogo()
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if settings.LogoURL != "" {
		t.Errorf("logoUrl should be cleared, got %s", settings.LogoURL)
	}

	// deleting again is a no-op
	if _, err := svc.DeleteLogo(); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}
