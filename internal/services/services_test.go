package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"awards-platform/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.AwardConfig{},
		&models.Category{},
		&models.Nominee{},
		&models.SuggestedCategory{},
		&models.SuggestedNominee{},
		&models.Vote{},
		&models.FinalResult{},
		&models.JuryToken{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := models.User{Username: username, DisplayName: username}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return &user
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := models.Category{Name: name, IsMain: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to create category %s: %v", name, err)
	}
	return &category
}

func createTestNominee(t *testing.T, db *gorm.DB, categoryID uint, name string) *models.Nominee {
	t.Helper()

	nominee := models.Nominee{CategoryID: categoryID, Name: name}
	if err := db.Create(&nominee).Error; err != nil {
		t.Fatalf("failed to create nominee %s: %v", name, err)
	}
	return &nominee
}
