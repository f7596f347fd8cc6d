package service

import (
	"fmt"
	"testing"

	"ripple/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Connection{},
		&models.Notification{},
		&models.PostType{},
		&models.Post{},
		&models.RevokedToken{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user := &models.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: string(hash),
		Profile:      &models.Profile{FirstName: "Test", LastName: "User"},
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func createTestPostType(t *testing.T, db *gorm.DB, name string) *models.PostType {
	t.Helper()
	postType := &models.PostType{Name: name}
	if err := db.Create(postType).Error; err != nil {
		t.Fatalf("create post type %s: %v", name, err)
	}
	return postType
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	appErr, ok := err.(*models.AppError)
	if !ok {
		t.Fatalf("expected *models.AppError, got %T (%v)", err, err)
	}
	return appErr.Code
}
