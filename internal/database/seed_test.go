package database

import (
	"testing"

	"github.com/projectflow/project-management-api/internal/config"
	"github.com/projectflow/project-management-api/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.UserRole{}))

	SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func TestSeed_CreatesAdmin(t *testing.T) {
	db := setupSeedTestDB(t)

	cfg := &config.Config{
		AdminEmail:    "admin@example.com",
		AdminPassword: "changeme123",
	}

	require.NoError(t, Seed(cfg, zerolog.Nop()))

	var admin models.User
	require.NoError(t, db.Where("email = ?", cfg.AdminEmail).First(&admin).Error)
	require.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(admin.PasswordHash), []byte(cfg.AdminPassword)))

	var grant models.UserRole
	err := db.Where("user_id = ? AND role = ?", admin.ID, models.RoleAdministrator).
		First(&grant).Error
	require.NoError(t, err)
}

func TestSeed_Idempotent(t *testing.T) {
	db := setupSeedTestDB(t)

	cfg := &config.Config{
		AdminEmail:    "admin@example.com",
		AdminPassword: "changeme123",
	}

	require.NoError(t, Seed(cfg, zerolog.Nop()))
	require.NoError(t, Seed(cfg, zerolog.Nop()))

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.EqualValues(t, 1, users)

	var grants int64
	require.NoError(t, db.Model(&models.UserRole{}).Count(&grants).Error)
	require.EqualValues(t, 1, grants)
}

func TestSeed_SkippedWithoutEmail(t *testing.T) {
	db := setupSeedTestDB(t)

	require.NoError(t, Seed(&config.Config{}, zerolog.Nop()))

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.Zero(t, users)
}
