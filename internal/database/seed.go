package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/projectflow/project-management-api/internal/config"
	"github.com/projectflow/project-management-api/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed ensures the default administrator account exists. Roles themselves
// are a closed enumeration (models.AllRoles) and need no rows of their own.
// The routine is idempotent and safe to run on every start.
func Seed(cfg *config.Config, log zerolog.Logger) error {
	if cfg.AdminEmail == "" {
		log.Info().Msg("admin seeding skipped: no admin email configured")
		return nil
	}

	var admin models.User
	err := DB.Where("email = ?", cfg.AdminEmail).First(&admin).Error
	switch {
	case err == nil:
		// Account exists; make sure the role grant does too.
	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if hashErr != nil {
			return fmt.Errorf("failed to hash admin password: %w", hashErr)
		}
		admin = models.User{
			Email:        cfg.AdminEmail,
			Username:     "admin",
			PasswordHash: string(hash),
		}
		if createErr := DB.Create(&admin).Error; createErr != nil {
			return fmt.Errorf("failed to create admin account: %w", createErr)
		}
		log.Info().Str("email", cfg.AdminEmail).Msg("created admin account")
	default:
		return fmt.Errorf("failed to look up admin account: %w", err)
	}

	var grant models.UserRole
	err = DB.Where("user_id = ? AND role = ?", admin.ID, models.RoleAdministrator).First(&grant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		grant = models.UserRole{
			UserID:    admin.ID,
			Role:      models.RoleAdministrator,
			GrantedAt: time.Now(),
		}
		if createErr := DB.Create(&grant).Error; createErr != nil {
			return fmt.Errorf("failed to grant administrator role: %w", createErr)
		}
		log.Info().Str("email", cfg.AdminEmail).Msg("granted administrator role")
	} else if err != nil {
		return fmt.Errorf("failed to look up admin role grant: %w", err)
	}

	return nil
}
