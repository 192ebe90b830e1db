package session_test

import (
	"testing"
	"time"

	"github.com/gameshelf/gameshelf/internal/models"
	"github.com/gameshelf/gameshelf/internal/session"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupStorage(t *testing.T) (*session.Storage, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Session{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	storage := session.NewStorage(db)
	t.Cleanup(func() { _ = storage.Close() })
	return storage, db
}

func TestStorageSetGet(t *testing.T) {
	storage, _ := setupStorage(t)

	if err := storage.Set("sid-1", []byte("payload"), time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, err := storage.Get("sid-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(val) != "payload" {
		t.Errorf("Expected payload, got %q", val)
	}
}

func TestStorageGetMissing(t *testing.T) {
	storage, _ := setupStorage(t)

	val, err := storage.Get("nope")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if val != nil {
		t.Errorf("Expected nil for missing key, got %q", val)
	}
}

func TestStorageSetOverwrites(t *testing.T) {
	storage, db := setupStorage(t)

	if err := storage.Set("sid-1", []byte("first"), time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := storage.Set("sid-1", []byte("second"), time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, err := storage.Get("sid-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(val) != "second" {
		t.Errorf("Expected second, got %q", val)
	}

	var count int64
	db.Model(&models.Session{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 session row, got %d", count)
	}
}

func TestStorageExpiry(t *testing.T) {
	storage, _ := setupStorage(t)

	if err := storage.Set("sid-1", []byte("payload"), -time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, err := storage.Get("sid-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if val != nil {
		t.Errorf("Expected nil for expired session, got %q", val)
	}
}

func TestStorageDelete(t *testing.T) {
	storage, _ := setupStorage(t)

	if err := storage.Set("sid-1", []byte("payload"), time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := storage.Delete("sid-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	val, err := storage.Get("sid-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if val != nil {
		t.Errorf("Expected nil after delete, got %q", val)
	}
}

func TestStorageReset(t *testing.T) {
	storage, db := setupStorage(t)

	_ = storage.Set("sid-1", []byte("a"), time.Hour)
	_ = storage.Set("sid-2", []byte("b"), time.Hour)

	if err := storage.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	var count int64
	db.Model(&models.Session{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected 0 session rows after reset, got %d", count)
	}
}
