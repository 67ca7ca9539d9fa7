package config

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront-admin/internal/hash"
	"github.com/Skotchmaster/storefront-admin/internal/models"
)

// EnsureSuperAdmin creates the initial SUPER_ADMIN account if none exists.
// Dashboard routes are unreachable without one, so this runs on every start.
func EnsureSuperAdmin(db *gorm.DB, c *Config) error {
	var existing models.User
	err := db.Where("role = ?", models.RoleSuperAdmin).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("seed: %w", err)
	}

	if c.ADMIN_EMAIL == "" || c.ADMIN_PASSWORD == "" {
		return fmt.Errorf("seed: no SUPER_ADMIN user and ADMIN_EMAIL/ADMIN_PASSWORD are not set")
	}

	pwHash, err := hash.HashPassword(c.ADMIN_PASSWORD)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	admin := models.User{
		Name:         c.ADMIN_NAME,
		Email:        c.ADMIN_EMAIL,
		PasswordHash: pwHash,
		Role:         models.RoleSuperAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}
