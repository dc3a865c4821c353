package services

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rustico-backend/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Guest{},
		&models.Service{},
		&models.Booking{},
		&models.Setting{},
		&models.User{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createGuest(t *testing.T, db *gorm.DB, first, last string) *models.Guest {
	t.Helper()
	guest, err := NewGuestService(db).Create(CreateGuestInput{
		FirstName: first,
		LastName:  last,
	})
	if err != nil {
		t.Fatalf("create guest %s %s: %v", first, last, err)
	}
	return guest
}

func createService(t *testing.T, db *gorm.DB, name, price string, typ models.ServiceType) *models.Service {
	t.Helper()
	svc, err := NewServiceService(db).Create(CreateServiceInput{
		Name:  name,
		Price: decimal.RequireFromString(price),
		Type:  typ,
	})
	if err != nil {
		t.Fatalf("create service %s: %v", name, err)
	}
	return svc
}
