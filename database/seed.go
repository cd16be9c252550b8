package database

import (
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/digiadi/digiadi-backend/models"
	"github.com/digiadi/digiadi-backend/utils"
)

// SeedAdmin creates the first admin account from ADMIN_EMAIL/ADMIN_PASSWORD.
// Skipped silently when the variables are absent or the account exists.
func SeedAdmin(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	pass := os.Getenv("ADMIN_PASSWORD")
	if email == "" || pass == "" {
		utils.InfoLogger.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     "Admin",
		Email:    email,
		Password: string(hash),
		Role:     "admin",
	}
	return db.Create(&admin).Error
}

// SeedCategories inserts the default menu categories once. The catalog is
// read-only through the API, so an empty categories table would leave the
// product listing unusable.
func SeedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []string{"Hot Drinks", "Cold Drinks", "Main Dishes", "Desserts"}
	for _, name := range defaults {
		if err := db.Create(&models.Category{Name: name}).Error; err != nil {
			return err
		}
	}
	utils.InfoLogger.Printf("Seeded %d default categories", len(defaults))
	return nil
}
