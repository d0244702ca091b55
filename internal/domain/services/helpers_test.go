package services

import (
	"testing"

	"bnb-ops-service/internal/domain/models"
	"bnb-ops-service/internal/infrastructure/config"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 创建内存数据库并迁移所有表
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Location{},
		&models.Activity{},
		&models.ChecklistItem{},
		&models.Attendance{},
		&models.ActivityTemplate{},
		&models.TemplateStep{},
		&models.Inventory{},
		&models.Notification{},
	))

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey: "test-secret-key",
	}
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		Email:    email,
		Password: "hashed-password",
		Name:     "Test User",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestLocation(t *testing.T, db *gorm.DB, name, qrCode string) *models.Location {
	t.Helper()

	location := &models.Location{
		Name:     name,
		Address:  "Via Roma 1",
		City:     "Milano",
		QRCode:   qrCode,
		IsActive: true,
	}
	require.NoError(t, db.Create(location).Error)
	return location
}

func asActor(u *models.User) ActingUser {
	return ActingUser{ID: u.ID, Role: u.Role}
}
