package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rustico-backend/models"
	"rustico-backend/utils"
)

var DB *gorm.DB

func decimalFromString(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

// resolveMySQLDSN prefers MYSQL_URL / DATABASE_URL, then falls back to the
// individual DB_* variables.
func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := utils.EnvOrDefault("DB_USER", "root")
	pass := utils.EnvOrDefault("DB_PASS", "")
	host := utils.EnvOrDefault("DB_HOST", "127.0.0.1")
	port := utils.EnvOrDefault("DB_PORT", "3306")
	dbName := utils.EnvOrDefault("DB_NAME", "rustico_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return err
	}
	DB = db

	if err := DB.AutoMigrate(
		&models.Guest{},
		&models.Service{},
		&models.Booking{},
		&models.Setting{},
		&models.User{},
	); err != nil {
		return err
	}

	SeedDatabase(DB)
	return nil
}

// SeedDatabase fills empty tables with their initial rows. Idempotent:
// existing rows are never touched.
func SeedDatabase(db *gorm.DB) {
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.User{
				Username: "admin",
				Password: string(hash),
				Role:     models.UserRoleAdmin,
				IsActive: true,
			}
			if err := db.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	var serviceCount int64
	db.Model(&models.Service{}).Count(&serviceCount)
	if serviceCount == 0 {
		defaults := []models.Service{
			{
				Name:        "Übernachtung",
				Description: "Preis pro Nacht",
				Price:       decimalFromString("120.00"),
				Type:        models.ServiceTypeNightly,
				IsActive:    true,
				IsRequired:  true,
				SortOrder:   1,
			},
			{
				Name:        "Holz",
				Description: "Brennholz für den Kamin",
				Price:       decimalFromString("25.00"),
				Type:        models.ServiceTypePerBooking,
				IsActive:    true,
				SortOrder:   2,
			},
			{
				Name:        "Kurtaxe",
				Description: "Kurtaxe pro Person",
				Price:       decimalFromString("3.50"),
				Type:        models.ServiceTypePerPerson,
				IsActive:    true,
				IsRequired:  true,
				SortOrder:   3,
			},
		}
		if err := db.Create(&defaults).Error; err != nil {
			log.Printf("warning: failed to seed default services: %v", err)
		} else {
			log.Println("Default services seeded")
		}
	}
}
