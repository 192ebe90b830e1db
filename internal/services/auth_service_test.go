package services_test

import (
	"errors"
	"testing"

	"github.com/gameshelf/gameshelf/internal/models"
	"github.com/gameshelf/gameshelf/internal/services"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// Keep everything on one connection so the in-memory database is shared
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Videogame{},
		&models.Session{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func TestRegisterUser(t *testing.T) {
	db := setupTestDB(t)

	user, err := services.RegisterUser(db, "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}
	if user.Email != "a@x.com" {
		t.Errorf("Expected email a@x.com, got %s", user.Email)
	}

	// The stored password must be a bcrypt hash of the input, never plaintext
	if user.Password == "pw1" {
		t.Error("Password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("pw1")); err != nil {
		t.Errorf("Stored hash does not verify against the password: %v", err)
	}
}

func TestRegisterUserDuplicate(t *testing.T) {
	db := setupTestDB(t)

	first, err := services.RegisterUser(db, "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}

	_, err = services.RegisterUser(db, "a@x.com", "other")
	if !errors.Is(err, services.ErrUserExists) {
		t.Fatalf("Expected ErrUserExists, got %v", err)
	}

	// No new record created and the existing record unchanged
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 user record, got %d", count)
	}

	var stored models.User
	if err := db.First(&stored, first.ID).Error; err != nil {
		t.Fatalf("Failed to reload user: %v", err)
	}
	if stored.Password != first.Password {
		t.Error("Existing record was modified by duplicate signup")
	}
}

func TestAuthenticateUser(t *testing.T) {
	db := setupTestDB(t)

	if _, err := services.RegisterUser(db, "a@x.com", "pw1"); err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}

	user, err := services.AuthenticateUser(db, "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("AuthenticateUser failed: %v", err)
	}
	if user.Email != "a@x.com" {
		t.Errorf("Expected email a@x.com, got %s", user.Email)
	}
}

func TestAuthenticateUserWrongPassword(t *testing.T) {
	db := setupTestDB(t)

	if _, err := services.RegisterUser(db, "a@x.com", "pw1"); err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}

	_, err := services.AuthenticateUser(db, "a@x.com", "nope")
	if !errors.Is(err, services.ErrWrongPassword) {
		t.Fatalf("Expected ErrWrongPassword, got %v", err)
	}
}

func TestAuthenticateUserUnknown(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.AuthenticateUser(db, "ghost@x.com", "pw1")
	if !errors.Is(err, services.ErrUserNotFound) {
		t.Fatalf("Expected ErrUserNotFound, got %v", err)
	}
}
